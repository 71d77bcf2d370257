package dto

import "time"

// GenerateQuizRequest is the body of POST /api/generate-quiz
// @Description Prompt describing the desired quiz topic
type GenerateQuizRequest struct {
	Prompt string `json:"prompt"`
	Save   bool   `json:"save"`
}

// CategoryDraft is a category as produced by generation
type CategoryDraft struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// QuizDraft is quiz metadata as produced by generation
type QuizDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QuestionDraft is a single generated multiple-choice question
type QuestionDraft struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// GeneratedQuizResponse is the validated generation payload plus the caller's
// matching category, if one already exists.
// @Description Generated quiz payload
type GeneratedQuizResponse struct {
	Category         CategoryDraft      `json:"category"`
	Quiz             QuizDraft          `json:"quiz"`
	Questions        []QuestionDraft    `json:"questions"`
	ExistingCategory *CategoryResponse  `json:"existing_category"`
	Saved            *SavedQuizResponse `json:"saved,omitempty"`
}

// SaveGeneratedQuizRequest persists a previously generated payload
// @Description Generated payload to persist
type SaveGeneratedQuizRequest struct {
	Category  *CategoryDraft  `json:"category"`
	Quiz      *QuizDraft      `json:"quiz"`
	Questions []QuestionDraft `json:"questions"`
}

// SavedQuizResponse identifies what a save created or reused
type SavedQuizResponse struct {
	CategoryID      string `json:"category_id"`
	CategorySlug    string `json:"category_slug"`
	CategoryCreated bool   `json:"category_created"`
	QuizID          string `json:"quiz_id"`
	QuizSlug        string `json:"quiz_slug"`
	QuestionCount   int    `json:"question_count"`
}

// CategoryResponse represents a category in the API response
// @Description Category information
type CategoryResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Slug        string                `json:"slug"`
	Description string                `json:"description"`
	CreatedAt   time.Time             `json:"created_at"`
	Quizzes     []QuizSummaryResponse `json:"quizzes,omitempty"`
}

// QuizSummaryResponse is a quiz without its questions
type QuizSummaryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CategoryID  string    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// QuizResponse represents a quiz with its category and ordered questions
// @Description Quiz information
type QuizResponse struct {
	QuizSummaryResponse
	Category  *CategoryResponse  `json:"category,omitempty"`
	Questions []QuestionResponse `json:"questions"`
}

// QuestionResponse represents a question in the API response
type QuestionResponse struct {
	ID       string   `json:"id"`
	QuizID   string   `json:"quiz_id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Position int      `json:"position,omitempty"`
}

// CreateCategoryRequest creates a category. Slug defaults to the slugified name.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CreateQuizRequest creates a quiz under the caller's category, optionally
// attaching existing questions in the given order.
type CreateQuizRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	CategorySlug string   `json:"category_slug"`
	QuestionIDs  []string `json:"question_ids"`
}

// CreateQuestionRequest appends a question to a quiz
type CreateQuestionRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// AttachQuestionsRequest replaces a quiz's ordered question list
type AttachQuestionsRequest struct {
	QuestionIDs []string `json:"question_ids"`
}

// SubmittedAnswer is one answer in a submission
type SubmittedAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// SubmitQuizRequest carries the user's answers
// @Description Answers to score
type SubmitQuizRequest struct {
	Answers []SubmittedAnswer `json:"answers"`
}

// AnswerFeedback reports correctness of one answer
type AnswerFeedback struct {
	QuestionID    string `json:"question_id"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// SubmitQuizResponse is the scored submission
type SubmitQuizResponse struct {
	QuizID   string           `json:"quiz_id"`
	Score    int              `json:"score"`
	Total    int              `json:"total"`
	Feedback []AnswerFeedback `json:"feedback"`
}

// DeleteResponse reports a cascading delete
type DeleteResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	DeletedID        string `json:"deleted_id"`
	DeletedQuizzes   int64  `json:"deleted_quizzes"`
	DeletedQuestions int64  `json:"deleted_questions"`
}
