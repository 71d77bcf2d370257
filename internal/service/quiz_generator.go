package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/validation"

	"go.uber.org/zap"
)

const genericFallbackMessage = "please describe a specific technical topic for the quiz"

const (
	quizTemperature    = 0.0
	genericTemperature = 0.5
	genericMaxTokens   = 1500
)

const quizInstructionsTemplate = `You are a quiz generator for programming and technology topics.

The quiz category has already been decided and is authoritative. Do not invent your own category:
- name: %s
- slug: %s
- description: %s

Create a multiple-choice quiz about the user's topic. Respond with ONLY a JSON object in this exact format:
{
  "category": {"name": "%s", "slug": "%s", "description": "%s"},
  "quiz": {
    "title": "Short title in the style '<Topic> Quiz'",
    "description": "One sentence describing what the quiz covers"
  },
  "questions": [
    {
      "question": "Question text",
      "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
      "answer": "Option 1"
    }
  ]
}

Rules:
1. Include EXACTLY 5 questions.
2. Every question has EXACTLY 4 options.
3. "answer" must be copied character for character from one of that question's options.
4. Do not add commentary, markdown or any text outside the JSON object.

If the user's message is not a request for a quiz about a technical topic, respond ONLY with:
{"error": "Invalid Prompt", "message": "A short explanation of why no quiz can be created"}`

const genericInstructions = `You are the assistant of a quiz generation service. The user's message is too short or vague to build a quiz from.
Never produce quiz questions.
If the message is off-topic or meaningless, respond ONLY with:
{"error": "Invalid Prompt", "message": "A short explanation"}
Otherwise reply with one short sentence acknowledging the message and asking for a specific technical topic.`

var (
	thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeFence  = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")
)

// IsQuizIntent reports whether a prompt is specific enough to build a quiz from.
func IsQuizIntent(prompt string) bool {
	if strings.Contains(prompt, "question") {
		return true
	}
	return utf8.RuneCountInString(prompt) > 3 && len(strings.Fields(prompt)) > 1
}

type quizGenerator struct {
	client     domain.CompletionClient
	classifier domain.TopicClassifier
	model      string
	maxTokens  int
}

// NewQuizGenerator wires the model client and classifier into the generation pipeline.
func NewQuizGenerator(client domain.CompletionClient, classifier domain.TopicClassifier, model string, maxTokens int) domain.QuizGenerator {
	return &quizGenerator{
		client:     client,
		classifier: classifier,
		model:      model,
		maxTokens:  maxTokens,
	}
}

func (g *quizGenerator) Generate(ctx context.Context, prompt string) (*domain.GeneratedQuiz, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domain.NewInvalidInputError("prompt is required")
	}
	if !IsQuizIntent(prompt) {
		return nil, g.genericResponse(ctx, prompt)
	}

	category := g.classifier.Classify(ctx, prompt)

	raw, err := g.client.Complete(ctx, buildQuizInstructions(category), prompt, domain.CompletionOptions{
		Model:          g.model,
		Temperature:    quizTemperature,
		MaxTokens:      g.maxTokens,
		ResponseFormat: domain.ResponseFormatJSON,
	})
	if err != nil {
		return nil, err
	}

	payload, err := parseGeneration(raw)
	if err != nil {
		logger.Get().Warn("Model returned an unusable quiz payload",
			zap.String("code", string(domain.CodeOf(err))),
			zap.Int("responseLength", len(raw)))
		return nil, err
	}

	payload.Category = &category
	fillQuizDefaults(payload)

	if err := validation.ValidateGeneratedQuiz(payload); err != nil {
		logger.Get().Info("Generated quiz rejected by validation",
			zap.String("category", category.Slug),
			zap.Error(err))
		return nil, err
	}
	return payload, nil
}

// genericResponse handles prompts that failed the intent gate. It never
// returns quiz structure, only INVALID_PROMPT or an upstream error.
func (g *quizGenerator) genericResponse(ctx context.Context, prompt string) error {
	raw, err := g.client.Complete(ctx, genericInstructions, prompt, domain.CompletionOptions{
		Model:       g.model,
		Temperature: genericTemperature,
		MaxTokens:   genericMaxTokens,
	})
	if err != nil {
		return err
	}

	text := strings.TrimSpace(stripThinking(raw))
	if body := outermostObject(text); body != "" {
		var e modelError
		if json.Unmarshal([]byte(body), &e) == nil && e.Error != nil {
			return domain.NewInvalidPromptError(e.message())
		}
		// Structured output without an error tag is never relayed.
		logger.Get().Warn("Discarding structured reply to a non-quiz prompt",
			zap.Int("responseLength", len(raw)))
		return domain.NewInvalidPromptError(genericFallbackMessage)
	}
	if text == "" {
		text = genericFallbackMessage
	}
	return domain.NewInvalidPromptError(text)
}

func buildQuizInstructions(c domain.CategoryDraft) string {
	return fmt.Sprintf(quizInstructionsTemplate,
		c.Name, c.Slug, c.Description,
		jsonEscape(c.Name), jsonEscape(c.Slug), jsonEscape(c.Description))
}

type modelError struct {
	Error   *string `json:"error"`
	Message string  `json:"message"`
}

func (e modelError) message() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	if e.Error != nil && *e.Error != "" {
		return *e.Error
	}
	return "the prompt cannot be turned into a quiz"
}

// rawGeneration keeps each section raw so presence and shape can be judged
// separately from decoding.
type rawGeneration struct {
	modelError
	Category  json.RawMessage `json:"category"`
	Quiz      json.RawMessage `json:"quiz"`
	Questions json.RawMessage `json:"questions"`
}

// parseGeneration decodes model text into a GeneratedQuiz. Absent sections
// stay nil; a questions value that is not an array becomes an empty slice and
// a question that does not decode becomes an empty draft, so the validation
// layer reports the precise structural error.
func parseGeneration(raw string) (*domain.GeneratedQuiz, error) {
	body := outermostObject(stripFences(stripThinking(raw)))
	if body == "" {
		return nil, domain.NewInvalidResponseError("failed to parse quiz data from model response", nil)
	}

	var gen rawGeneration
	if err := json.Unmarshal([]byte(body), &gen); err != nil {
		return nil, domain.NewInvalidResponseError("failed to parse quiz data from model response", err)
	}
	if gen.modelError.Error != nil {
		return nil, domain.NewInvalidPromptError(gen.message())
	}

	payload := &domain.GeneratedQuiz{}
	if present(gen.Category) {
		var c domain.CategoryDraft
		if json.Unmarshal(gen.Category, &c) == nil {
			payload.Category = &c
		}
	}
	if present(gen.Quiz) {
		var q domain.QuizDraft
		if json.Unmarshal(gen.Quiz, &q) == nil {
			payload.Quiz = &q
		}
	}
	if present(gen.Questions) {
		var items []json.RawMessage
		if err := json.Unmarshal(gen.Questions, &items); err != nil {
			payload.Questions = []domain.QuestionDraft{}
		} else {
			payload.Questions = make([]domain.QuestionDraft, len(items))
			for i, item := range items {
				var q domain.QuestionDraft
				if json.Unmarshal(item, &q) == nil {
					payload.Questions[i] = q
				}
			}
		}
	}
	return payload, nil
}

// fillQuizDefaults derives missing quiz metadata from the category.
func fillQuizDefaults(p *domain.GeneratedQuiz) {
	if p.Quiz == nil || p.Category == nil {
		return
	}
	p.Quiz.Title = strings.TrimSpace(p.Quiz.Title)
	p.Quiz.Description = strings.TrimSpace(p.Quiz.Description)
	if p.Quiz.Title == "" {
		p.Quiz.Title = p.Category.Name + " Quiz"
	}
	if p.Quiz.Description == "" {
		p.Quiz.Description = "Test your knowledge of " + p.Category.Name
	}
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func stripThinking(s string) string {
	return thinkBlock.ReplaceAllString(s, "")
}

func stripFences(s string) string {
	return codeFence.ReplaceAllString(s, "")
}

func outermostObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func jsonEscape(s string) string {
	b, _ := json.Marshal(s)
	return string(b[1 : len(b)-1])
}
