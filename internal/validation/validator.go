package validation

import (
	"fmt"
	"regexp"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/util"
)

const (
	maxPromptLength = 2000
	maxNameLength   = 200
	maxAnswers      = 100
)

var validSlug = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// fieldErrors collects per-field problems and turns them into one INVALID_INPUT error.
type fieldErrors map[string]string

func (f fieldErrors) add(field, problem string) {
	if _, exists := f[field]; !exists {
		f[field] = problem
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	e := domain.NewInvalidInputError("request validation failed")
	for field, problem := range f {
		e.WithContext(field, problem)
	}
	return e
}

// ValidateID checks that a path identifier is a ULID.
func (v *Validator) ValidateID(field, id string) error {
	errs := fieldErrors{}
	if strings.TrimSpace(id) == "" {
		errs.add(field, "is required")
	} else if !util.IsULID(id) {
		errs.add(field, "must be a valid ID")
	}
	return errs.err()
}

// ValidateSlug checks that a path slug is already in normalized form.
func (v *Validator) ValidateSlug(field, slug string) error {
	errs := fieldErrors{}
	if slug == "" {
		errs.add(field, "is required")
	} else if len(slug) > maxNameLength || !validSlug.MatchString(slug) {
		errs.add(field, "must be a lowercase hyphenated slug")
	}
	return errs.err()
}

// ValidateGenerateRequest validates the generate quiz request
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateQuizRequest) error {
	errs := fieldErrors{}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		errs.add("prompt", "is required")
	} else if len(prompt) > maxPromptLength {
		errs.add("prompt", fmt.Sprintf("must be at most %d characters", maxPromptLength))
	}
	return errs.err()
}

// ValidateCreateCategoryRequest validates the create category request
func (v *Validator) ValidateCreateCategoryRequest(req *dto.CreateCategoryRequest) error {
	errs := fieldErrors{}
	requireName(errs, "name", req.Name)
	if req.Slug != "" && util.Slugify(req.Slug) == "" {
		errs.add("slug", "must contain at least one letter or digit")
	}
	return errs.err()
}

// ValidateCreateQuizRequest validates the create quiz request
func (v *Validator) ValidateCreateQuizRequest(req *dto.CreateQuizRequest) error {
	errs := fieldErrors{}
	requireName(errs, "title", req.Title)
	if strings.TrimSpace(req.CategorySlug) == "" {
		errs.add("category_slug", "is required")
	}
	validateIDList(errs, "question_ids", req.QuestionIDs)
	return errs.err()
}

// ValidateCreateQuestionRequest validates the create question request
func (v *Validator) ValidateCreateQuestionRequest(req *dto.CreateQuestionRequest) error {
	errs := fieldErrors{}
	if strings.TrimSpace(req.Question) == "" {
		errs.add("question", "is required")
	}
	if len(req.Options) != domain.OptionsPerQuestion {
		errs.add("options", fmt.Sprintf("must contain exactly %d entries", domain.OptionsPerQuestion))
	}
	if req.Answer == "" {
		errs.add("answer", "is required")
	} else if !containsExact(req.Options, req.Answer) {
		errs.add("answer", "must match one of the options")
	}
	return errs.err()
}

// ValidateAttachQuestionsRequest validates the attach questions request
func (v *Validator) ValidateAttachQuestionsRequest(req *dto.AttachQuestionsRequest) error {
	errs := fieldErrors{}
	validateIDList(errs, "question_ids", req.QuestionIDs)
	return errs.err()
}

// ValidateSubmitQuizRequest validates the submit quiz request
func (v *Validator) ValidateSubmitQuizRequest(req *dto.SubmitQuizRequest) error {
	errs := fieldErrors{}
	if len(req.Answers) == 0 {
		errs.add("answers", "must not be empty")
	} else if len(req.Answers) > maxAnswers {
		errs.add("answers", fmt.Sprintf("must contain at most %d entries", maxAnswers))
	}
	for i, a := range req.Answers {
		if strings.TrimSpace(a.QuestionID) == "" {
			errs.add(fmt.Sprintf("answers[%d].question_id", i), "is required")
		}
	}
	return errs.err()
}

// ValidateRegisterRequest validates the user registration request
func (v *Validator) ValidateRegisterRequest(req *dto.RegisterUserRequest) error {
	errs := fieldErrors{}
	if strings.TrimSpace(req.ExternalID) == "" {
		errs.add("external_id", "is required")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs.add("email", "is required")
	} else if at := strings.Index(email, "@"); at <= 0 || at == len(email)-1 {
		errs.add("email", "must be a valid email address")
	}
	if len(req.DisplayName) > maxNameLength {
		errs.add("display_name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	return errs.err()
}

func requireName(errs fieldErrors, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.add(field, "is required")
	} else if len(value) > maxNameLength {
		errs.add(field, fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
}

func validateIDList(errs fieldErrors, field string, ids []string) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !util.IsULID(id) {
			errs.add(field, "must contain valid IDs")
			return
		}
		if _, dup := seen[id]; dup {
			errs.add(field, "must not contain duplicates")
			return
		}
		seen[id] = struct{}{}
	}
}
