package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizApp(svc *MockQuizService) *fiber.App {
	h := handler.NewQuizHandler(svc)
	return newTestApp(func(app *fiber.App, protected fiber.Handler) {
		app.Post("/api/generate-quiz", protected, h.GenerateQuiz)
		app.Post("/api/generated-quizzes", protected, h.SaveGeneratedQuiz)
		app.Post("/api/quizzes", protected, h.CreateQuiz)
		app.Get("/api/quizzes/:slug", protected, h.GetQuizBySlug)
		app.Delete("/api/quizzes/:id", protected, h.DeleteQuiz)
		app.Post("/api/quizzes/:id/questions", protected, h.CreateQuestion)
		app.Put("/api/quizzes/:id/questions", protected, h.AttachQuestions)
		app.Post("/api/quizzes/:id/submit", protected, h.SubmitQuiz)
	})
}

func generatedResponse() *dto.GeneratedQuizResponse {
	questions := make([]dto.QuestionDraft, domain.QuestionsPerQuiz)
	for i := range questions {
		questions[i] = dto.QuestionDraft{Question: "Q?", Options: []string{"a", "b", "c", "d"}, Answer: "a"}
	}
	return &dto.GeneratedQuizResponse{
		Category:  dto.CategoryDraft{Name: "Python", Slug: "python"},
		Quiz:      dto.QuizDraft{Title: "Python Basics"},
		Questions: questions,
	}
}

func TestQuizHandler_GenerateQuiz(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		svcResp    *dto.GeneratedQuizResponse
		svcErr     error
		wantStatus int
		wantCode   string
		wantCalled bool
	}{
		{
			name:       "success",
			body:       dto.GenerateQuizRequest{Prompt: "Create a quiz about Python"},
			svcResp:    generatedResponse(),
			wantStatus: fiber.StatusOK,
			wantCalled: true,
		},
		{
			name: "saved",
			body: dto.GenerateQuizRequest{Prompt: "Create a quiz about Python", Save: true},
			svcResp: func() *dto.GeneratedQuizResponse {
				r := generatedResponse()
				r.Saved = &dto.SavedQuizResponse{QuizSlug: "python-basics", QuestionCount: 5}
				return r
			}(),
			wantStatus: fiber.StatusCreated,
			wantCalled: true,
		},
		{
			name:       "blank prompt",
			body:       dto.GenerateQuizRequest{Prompt: "   "},
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "malformed body",
			body:       `{"prompt":`,
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "off-topic prompt",
			body:       dto.GenerateQuizRequest{Prompt: "hello there"},
			svcErr:     domain.NewInvalidPromptError("Please ask for a quiz"),
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "INVALID_PROMPT",
			wantCalled: true,
		},
		{
			name:       "answer outside options",
			body:       dto.GenerateQuizRequest{Prompt: "Create a quiz about Python"},
			svcErr:     domain.NewAnswerNotInOptionsError(2),
			wantStatus: fiber.StatusUnprocessableEntity,
			wantCode:   "ANSWER_NOT_IN_OPTIONS",
			wantCalled: true,
		},
		{
			name:       "model unavailable",
			body:       dto.GenerateQuizRequest{Prompt: "Create a quiz about Python"},
			svcErr:     domain.NewUpstreamUnavailableError(errors.New("connection refused")),
			wantStatus: fiber.StatusServiceUnavailable,
			wantCode:   "UPSTREAM_UNAVAILABLE",
			wantCalled: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			svc := &MockQuizService{
				GenerateQuizFunc: func(_ context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GeneratedQuizResponse, error) {
					called = true
					assert.Equal(t, testUserID, userID)
					return tc.svcResp, tc.svcErr
				},
			}

			resp, err := newQuizApp(svc).Test(newRequest(t, "POST", "/api/generate-quiz", tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, tc.wantCalled, called)

			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, decodeError(t, resp).Code)
				return
			}
			var body dto.GeneratedQuizResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Len(t, body.Questions, domain.QuestionsPerQuiz)
			assert.Equal(t, "python", body.Category.Slug)
		})
	}
}

func TestQuizHandler_RequiresAuth(t *testing.T) {
	app := newQuizApp(&MockQuizService{})
	req := newRequest(t, "POST", "/api/generate-quiz", dto.GenerateQuizRequest{Prompt: "Create a quiz about Go"})
	req.Header.Del("Authorization")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", decodeError(t, resp).Code)
}

func TestQuizHandler_SaveGeneratedQuiz(t *testing.T) {
	svc := &MockQuizService{
		SaveGeneratedQuizFunc: func(_ context.Context, userID string, req *dto.SaveGeneratedQuizRequest) (*dto.SavedQuizResponse, error) {
			require.NotNil(t, req.Category)
			assert.Equal(t, "python", req.Category.Slug)
			return &dto.SavedQuizResponse{CategorySlug: "python", QuizSlug: "python-basics", QuestionCount: 5, CategoryCreated: true}, nil
		},
	}
	payload := generatedResponse()
	body := dto.SaveGeneratedQuizRequest{Category: &payload.Category, Quiz: &payload.Quiz, Questions: payload.Questions}

	resp, err := newQuizApp(svc).Test(newRequest(t, "POST", "/api/generated-quizzes", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var saved dto.SavedQuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	assert.Equal(t, "python-basics", saved.QuizSlug)
	assert.True(t, saved.CategoryCreated)
}

func TestQuizHandler_GetQuizBySlug(t *testing.T) {
	svc := &MockQuizService{
		GetQuizBySlugFunc: func(_ context.Context, userID, slug string) (*dto.QuizResponse, error) {
			if slug == "python-basics" {
				return &dto.QuizResponse{QuizSummaryResponse: dto.QuizSummaryResponse{Slug: slug, Title: "Python Basics"}}, nil
			}
			return nil, domain.NewNotFoundError("quiz not found")
		},
	}
	app := newQuizApp(svc)

	resp, err := app.Test(newRequest(t, "GET", "/api/quizzes/python-basics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(newRequest(t, "GET", "/api/quizzes/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestQuizHandler_CreateQuiz(t *testing.T) {
	qid := util.NewULID()
	svc := &MockQuizService{
		CreateQuizFunc: func(_ context.Context, userID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
			assert.Equal(t, []string{qid}, req.QuestionIDs)
			return &dto.QuizResponse{QuizSummaryResponse: dto.QuizSummaryResponse{Title: req.Title, Slug: "my-quiz"}}, nil
		},
	}
	app := newQuizApp(svc)

	resp, err := app.Test(newRequest(t, "POST", "/api/quizzes", dto.CreateQuizRequest{Title: "My Quiz", CategorySlug: "python", QuestionIDs: []string{qid}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(newRequest(t, "POST", "/api/quizzes", dto.CreateQuizRequest{Title: "My Quiz"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errResp := decodeError(t, resp)
	assert.Equal(t, "INVALID_INPUT", errResp.Code)
	assert.Contains(t, errResp.Details, "category_slug")
}

func TestQuizHandler_CreateQuestion(t *testing.T) {
	quizID := util.NewULID()
	svc := &MockQuizService{
		CreateQuestionFunc: func(_ context.Context, userID, id string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
			assert.Equal(t, quizID, id)
			return &dto.QuestionResponse{ID: util.NewULID(), QuizID: id, Question: req.Question, Options: req.Options, Answer: req.Answer, Position: 6}, nil
		},
	}
	app := newQuizApp(svc)
	path := "/api/quizzes/" + quizID + "/questions"

	valid := dto.CreateQuestionRequest{Question: "2+2?", Options: []string{"3", "4", "5", "6"}, Answer: "4"}
	resp, err := app.Test(newRequest(t, "POST", path, valid))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	invalid := dto.CreateQuestionRequest{Question: "2+2?", Options: []string{"3", "4", "5", "6"}, Answer: "Option 5"}
	resp, err = app.Test(newRequest(t, "POST", path, invalid))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQuizHandler_AttachQuestions(t *testing.T) {
	quizID := util.NewULID()
	ids := []string{util.NewULID(), util.NewULID()}
	svc := &MockQuizService{
		AttachQuestionsFunc: func(_ context.Context, userID, id string, req *dto.AttachQuestionsRequest) (*dto.QuizResponse, error) {
			assert.Equal(t, ids, req.QuestionIDs)
			return &dto.QuizResponse{QuizSummaryResponse: dto.QuizSummaryResponse{ID: id}}, nil
		},
	}
	app := newQuizApp(svc)
	path := "/api/quizzes/" + quizID + "/questions"

	resp, err := app.Test(newRequest(t, "PUT", path, dto.AttachQuestionsRequest{QuestionIDs: ids}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(newRequest(t, "PUT", path, dto.AttachQuestionsRequest{QuestionIDs: []string{ids[0], ids[0]}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQuizHandler_SubmitQuiz(t *testing.T) {
	quizID := util.NewULID()
	svc := &MockQuizService{
		SubmitQuizFunc: func(_ context.Context, userID, id string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
			return &dto.SubmitQuizResponse{QuizID: id, Score: 1, Total: 5}, nil
		},
	}
	app := newQuizApp(svc)

	resp, err := app.Test(newRequest(t, "POST", "/api/quizzes/"+quizID+"/submit", dto.SubmitQuizRequest{
		Answers: []dto.SubmittedAnswer{{QuestionID: util.NewULID(), Answer: "a"}},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var result dto.SubmitQuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 5, result.Total)

	resp, err = app.Test(newRequest(t, "POST", "/api/quizzes/"+quizID+"/submit", dto.SubmitQuizRequest{}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQuizHandler_DeleteQuiz(t *testing.T) {
	quizID := util.NewULID()
	svc := &MockQuizService{
		DeleteQuizFunc: func(_ context.Context, userID, id string) (*dto.DeleteResponse, error) {
			assert.Equal(t, testUserID, userID)
			return &dto.DeleteResponse{Success: true, DeletedID: id, DeletedQuestions: 5}, nil
		},
	}

	resp, err := newQuizApp(svc).Test(newRequest(t, "DELETE", "/api/quizzes/"+quizID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body dto.DeleteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(5), body.DeletedQuestions)
}
