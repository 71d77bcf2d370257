package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubQuizService only implements GenerateQuiz; other methods are unused by the batch.
type stubQuizService struct {
	QuizService
	mu       sync.Mutex
	prompts  []string
	generate func(prompt string) (*dto.GeneratedQuizResponse, error)
}

func (s *stubQuizService) GenerateQuiz(_ context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GeneratedQuizResponse, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, req.Prompt)
	s.mu.Unlock()
	if !req.Save {
		return nil, errors.New("batch must save")
	}
	return s.generate(req.Prompt)
}

func TestBatchService_GenerateAndSave(t *testing.T) {
	stub := &stubQuizService{generate: func(prompt string) (*dto.GeneratedQuizResponse, error) {
		if prompt == "hello" {
			return nil, domain.NewInvalidPromptError("not a quiz request")
		}
		return &dto.GeneratedQuizResponse{Saved: &dto.SavedQuizResponse{QuizSlug: "slug-for-" + prompt, QuestionCount: 5}}, nil
	}}
	svc := NewBatchService(stub, 3)

	results, err := svc.GenerateAndSave(context.Background(), testUser, []string{"Quiz on Go", "", "hello", "  Quiz on SQL  "})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.ElementsMatch(t, []string{"Quiz on Go", "hello", "Quiz on SQL"}, stub.prompts)

	assert.Equal(t, "Quiz on Go", results[0].Prompt)
	require.NotNil(t, results[0].Saved)
	assert.Equal(t, "slug-for-Quiz on Go", results[0].Saved.QuizSlug)

	assert.Nil(t, results[1].Saved)
	assert.Equal(t, domain.CodeInvalidPrompt, domain.CodeOf(results[1].Err))

	assert.NoError(t, results[2].Err)
}

func TestBatchService_RequiresUser(t *testing.T) {
	_, err := NewBatchService(&stubQuizService{}, 0).GenerateAndSave(context.Background(), " ", []string{"Quiz on Go"})
	assert.Equal(t, domain.CodeInvalidInput, domain.CodeOf(err))
}

func TestBatchService_CancelledContext(t *testing.T) {
	stub := &stubQuizService{generate: func(string) (*dto.GeneratedQuizResponse, error) {
		return &dto.GeneratedQuizResponse{}, nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBatchService(stub, 1).GenerateAndSave(ctx, testUser, []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stub.prompts)
}
