package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const classificationInstructions = `You are a classifier for programming and technology quiz topics.
Return the single most specific PARENT technology or category for the user's text.

Rules:
1. Never create a quiz-specific or overly narrow sub-category ("React Hooks" is not a category, "React" is).
2. Framework-specific topics roll up to the parent framework (Next.js routing -> Next.js, Django ORM -> Django).
3. Language features roll up to the parent language (Python decorators -> Python, Go channels -> Go).
4. Non-language domains use a broad canonical name such as "Databases", "DevOps" or "Cybersecurity".

Respond with ONLY a JSON object in this format:
{
  "name": "Category display name",
  "categorySlug": "lowercase-hyphenated-slug",
  "description": "One sentence describing the category"
}`

const classificationSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1, "maxLength": 100},
    "slug": {"type": "string"},
    "categorySlug": {"type": "string"},
    "description": {"type": "string"}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(classificationSchema)

type classification struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	CategorySlug string `json:"categorySlug"`
	Description  string `json:"description"`
}

// ModelClassifier asks the generative model for the category.
type ModelClassifier struct {
	client    domain.CompletionClient
	model     string
	maxTokens int
}

// NewModelClassifier creates a model-driven classifier.
func NewModelClassifier(client domain.CompletionClient, model string, maxTokens int) *ModelClassifier {
	return &ModelClassifier{client: client, model: model, maxTokens: maxTokens}
}

// Classify never fails: any problem with the model answer yields FallbackCategory.
func (m *ModelClassifier) Classify(ctx context.Context, text string) domain.CategoryDraft {
	category, err := m.classify(ctx, text)
	if err != nil {
		logger.Get().Warn("Model classification failed, using fallback category",
			zap.String("reason", err.Error()),
			zap.String("text", truncate(text, 120)),
		)
		return FallbackCategory()
	}
	return category
}

func (m *ModelClassifier) classify(ctx context.Context, text string) (domain.CategoryDraft, error) {
	raw, err := m.client.Complete(ctx, classificationInstructions, text, domain.CompletionOptions{
		Model:          m.model,
		Temperature:    0,
		MaxTokens:      m.maxTokens,
		ResponseFormat: domain.ResponseFormatJSON,
	})
	if err != nil {
		return domain.CategoryDraft{}, fmt.Errorf("completion failed: %w", err)
	}

	body := extractObject(raw)
	if body == "" {
		return domain.CategoryDraft{}, fmt.Errorf("no JSON object in answer")
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(body))
	if err != nil {
		return domain.CategoryDraft{}, fmt.Errorf("answer is not valid JSON: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return domain.CategoryDraft{}, fmt.Errorf("answer failed schema: %s", strings.Join(problems, "; "))
	}

	var c classification
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		return domain.CategoryDraft{}, fmt.Errorf("decode answer: %w", err)
	}

	slug := c.CategorySlug
	if slug == "" {
		slug = c.Slug
	}
	draft := normalize(domain.CategoryDraft{Name: c.Name, Slug: slug, Description: c.Description})
	if draft.Name == "" || draft.Slug == "" {
		return domain.CategoryDraft{}, fmt.Errorf("answer has no usable name")
	}
	if draft.Description == "" {
		draft.Description = fmt.Sprintf("%s fundamentals and concepts", draft.Name)
	}
	return draft, nil
}

// extractObject returns the outermost {...} span of s, or "".
func extractObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
