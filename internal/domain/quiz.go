package domain

import (
	"fmt"
	"strings"
	"time"
)

// OptionsPerQuestion is the fixed number of choices every question carries.
const OptionsPerQuestion = 4

// Category groups quizzes for a single owner. (Slug, UserID) is unique.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	UserID      string
	CreatedAt   time.Time
	Quizzes     []*Quiz
}

// NewCategory creates a new Category instance
func NewCategory(name, slug, description, userID string) *Category {
	return &Category{
		Name:        name,
		Slug:        slug,
		Description: description,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
}

// Validate validates the category
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewInvalidInputError("category name is required")
	}
	if c.Slug == "" {
		return NewInvalidInputError("category slug is required")
	}
	if c.UserID == "" {
		return NewInvalidInputError("category owner is required")
	}
	return nil
}

// Quiz belongs to one category and one owner. (Slug, UserID) is unique.
type Quiz struct {
	ID          string
	Title       string
	Slug        string
	Description string
	CategoryID  string
	UserID      string
	CreatedAt   time.Time
	Category    *Category
	Questions   []*Question
}

// NewQuiz creates a new Quiz instance
func NewQuiz(title, slug, description, categoryID, userID string) *Quiz {
	return &Quiz{
		Title:       title,
		Slug:        slug,
		Description: description,
		CategoryID:  categoryID,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return NewInvalidInputError("quiz title is required")
	}
	if q.Slug == "" {
		return NewInvalidInputError("quiz slug is required")
	}
	if q.CategoryID == "" {
		return NewInvalidInputError("category ID is required")
	}
	if q.UserID == "" {
		return NewInvalidInputError("quiz owner is required")
	}
	return nil
}

// Question is a multiple-choice item owned by a quiz. Position is 1-based;
// zero means the question is detached from the quiz's ordered list.
type Question struct {
	ID        string
	QuizID    string
	Question  string
	Options   []string
	Answer    string
	Position  int
	CreatedAt time.Time
}

// Validate enforces the persisted question shape: text, exactly four options
// and an answer equal to one of them.
func (q *Question) Validate() error {
	if q.QuizID == "" {
		return NewInvalidInputError("quiz ID is required")
	}
	if strings.TrimSpace(q.Question) == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Options) != OptionsPerQuestion {
		return NewInvalidInputError(fmt.Sprintf("question must have exactly %d options, got %d", OptionsPerQuestion, len(q.Options)))
	}
	if q.Answer == "" {
		return NewInvalidInputError("answer is required")
	}
	if !q.HasOption(q.Answer) {
		return NewInvalidInputError("answer must match one of the options")
	}
	return nil
}

// HasOption reports an exact match against the options.
func (q *Question) HasOption(value string) bool {
	for _, option := range q.Options {
		if option == value {
			return true
		}
	}
	return false
}

// SubmittedAnswer is one user answer in a quiz submission.
type SubmittedAnswer struct {
	QuestionID string
	Answer     string
}

// AnswerFeedback reports how a single submitted answer was scored.
type AnswerFeedback struct {
	QuestionID    string
	Answer        string
	CorrectAnswer string
	IsCorrect     bool
}

// QuizResult is the outcome of scoring a submission.
type QuizResult struct {
	QuizID   string
	Score    int
	Total    int
	Feedback []AnswerFeedback
}

// DeleteResult summarises a cascading delete.
type DeleteResult struct {
	DeletedID        string
	DeletedQuizzes   int64
	DeletedQuestions int64
}
