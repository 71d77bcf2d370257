package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Client implements domain.CompletionClient on top of a langchaingo model.
// It never retries; a failed call is reported to the caller as is.
type Client struct {
	model        llms.Model
	defaultModel string
	timeout      time.Duration
}

// NewClient wraps an already constructed langchaingo model.
func NewClient(model llms.Model, defaultModel string, timeout time.Duration) *Client {
	return &Client{
		model:        model,
		defaultModel: defaultModel,
		timeout:      timeout,
	}
}

// NewFromConfig builds the backend selected by llm.provider.
func NewFromConfig(cfg config.LLMConfig) (*Client, error) {
	var (
		model llms.Model
		err   error
	)

	switch cfg.Provider {
	case config.ProviderOpenAI:
		opts := []openai.Option{openai.WithModel(cfg.Model), openai.WithToken(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err = openai.New(opts...)
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	return NewClient(model, cfg.Model, cfg.Timeout), nil
}

// Complete sends instructions as the system message and userPrompt as the
// human message.
func (c *Client) Complete(ctx context.Context, instructions, userPrompt string, opts domain.CompletionOptions) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, instructions),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	modelName := opts.Model
	if modelName == "" {
		modelName = c.defaultModel
	}

	callOpts := []llms.CallOption{llms.WithTemperature(opts.Temperature)}
	if modelName != "" {
		callOpts = append(callOpts, llms.WithModel(modelName))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	if opts.ResponseFormat == domain.ResponseFormatJSON {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		l := logger.Get().With(zap.String("model", modelName), zap.Duration("elapsed", time.Since(start)))
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			l.Warn("Model request timed out", zap.Error(err))
			return "", domain.NewUpstreamUnavailableError(fmt.Errorf("model request timed out: %w", err))
		}
		l.Error("Model request failed", zap.Error(err))
		return "", domain.NewUpstreamUnavailableError(err)
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", domain.NewUpstreamMalformedError("model returned no choices")
	}
	content := resp.Choices[0].Content
	if strings.TrimSpace(content) == "" {
		return "", domain.NewUpstreamMalformedError("model returned empty content")
	}

	logger.Get().Debug("Model request completed",
		zap.String("model", modelName),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("content_length", len(content)),
	)
	return content, nil
}
