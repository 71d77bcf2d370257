package validation

import (
	"strings"

	"quiz-forge/internal/domain"
)

// ValidateGeneratedQuiz applies the structural rules in order and reports the
// first violation. A payload with any violation is rejected as a whole.
func ValidateGeneratedQuiz(payload *domain.GeneratedQuiz) error {
	if payload == nil || payload.Category == nil || payload.Quiz == nil || payload.Questions == nil {
		return domain.NewMissingFieldsError("generated quiz must contain category, quiz and questions")
	}

	if len(payload.Questions) != domain.QuestionsPerQuiz {
		return domain.NewWrongQuestionCountError(domain.QuestionsPerQuiz, len(payload.Questions))
	}

	for i, q := range payload.Questions {
		switch {
		case strings.TrimSpace(q.Question) == "":
			return domain.NewMalformedQuestionError(i, "question text is missing")
		case len(q.Options) != domain.OptionsPerQuestion:
			return domain.NewMalformedQuestionError(i, "options must contain exactly 4 entries")
		case q.Answer == "":
			return domain.NewMalformedQuestionError(i, "answer is missing")
		}
	}

	for i, q := range payload.Questions {
		if !containsExact(q.Options, q.Answer) {
			return domain.NewAnswerNotInOptionsError(i)
		}
	}

	return nil
}

func containsExact(options []string, answer string) bool {
	for _, o := range options {
		if o == answer {
			return true
		}
	}
	return false
}
