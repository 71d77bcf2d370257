package domain

import "context"

// QuestionsPerQuiz is the exact number of questions a generated quiz must carry.
const QuestionsPerQuiz = 5

// ResponseFormatJSON asks the model backend for a JSON-only answer.
const ResponseFormatJSON = "json"

// CategoryDraft is a category as proposed by classification or generation,
// before it is owned by anyone.
type CategoryDraft struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type QuizDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type QuestionDraft struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// GeneratedQuiz is the accepted shape of a generation result. A nil pointer or
// a nil Questions slice means the field was absent; a non-nil empty Questions
// slice means it was present but not a usable array.
type GeneratedQuiz struct {
	Category  *CategoryDraft  `json:"category"`
	Quiz      *QuizDraft      `json:"quiz"`
	Questions []QuestionDraft `json:"questions"`
}

// CompletionOptions tune a single model call.
type CompletionOptions struct {
	Model          string
	Temperature    float64
	MaxTokens      int
	ResponseFormat string
}

// CompletionClient sends one system instruction and one user prompt to a
// generative model and returns its raw text.
type CompletionClient interface {
	Complete(ctx context.Context, instructions, userPrompt string, opts CompletionOptions) (string, error)
}

// TopicClassifier resolves free text to a canonical category. It never fails;
// implementations fall back to a generic category.
type TopicClassifier interface {
	Classify(ctx context.Context, text string) CategoryDraft
}

// QuizGenerator turns a prompt into a validated quiz payload.
type QuizGenerator interface {
	Generate(ctx context.Context, prompt string) (*GeneratedQuiz, error)
}

// IdentityVerifier checks a bearer credential issued by the identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
