package service

import (
	"context"
	"strings"
	"sync"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 2

// BatchResult is the outcome of one prompt in a batch run.
type BatchResult struct {
	Prompt string
	Saved  *dto.SavedQuizResponse
	Err    error
}

// BatchService generates and saves quizzes for a list of prompts on behalf of one user.
type BatchService interface {
	GenerateAndSave(ctx context.Context, userID string, prompts []string) ([]BatchResult, error)
}

type batchService struct {
	quizzes     QuizService
	concurrency int
}

// NewBatchService creates a new BatchService. A concurrency below 1 uses the default.
func NewBatchService(quizzes QuizService, concurrency int) BatchService {
	if concurrency < 1 {
		concurrency = defaultBatchConcurrency
	}
	return &batchService{quizzes: quizzes, concurrency: concurrency}
}

// GenerateAndSave runs every non-blank prompt through generation with save
// enabled. A failing prompt is recorded in its result and does not stop the
// others; only context cancellation aborts the run.
func (s *batchService) GenerateAndSave(ctx context.Context, userID string, prompts []string) ([]BatchResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewInvalidInputError("user ID is required")
	}

	var cleaned []string
	for _, p := range prompts {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	results := make([]BatchResult, len(cleaned))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	var mu sync.Mutex
	saved := 0

	for i, prompt := range cleaned {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resp, err := s.quizzes.GenerateQuiz(gctx, userID, &dto.GenerateQuizRequest{Prompt: prompt, Save: true})
			results[i] = BatchResult{Prompt: prompt, Err: err}
			if err != nil {
				logger.Get().Warn("Batch prompt failed",
					zap.String("prompt", prompt),
					zap.String("code", string(domain.CodeOf(err))),
					zap.Error(err))
				return nil
			}
			results[i].Saved = resp.Saved
			mu.Lock()
			saved++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	logger.Get().Info("Batch generation finished",
		zap.String("userID", userID),
		zap.Int("prompts", len(cleaned)),
		zap.Int("saved", saved))
	return results, nil
}
