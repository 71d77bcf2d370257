package handler_test

import (
	"context"
	"encoding/json"
	"testing"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryApp(svc *MockCategoryService) *fiber.App {
	h := handler.NewCategoryHandler(svc)
	return newTestApp(func(app *fiber.App, protected fiber.Handler) {
		app.Get("/api/categories", protected, h.ListCategories)
		app.Post("/api/categories", protected, h.CreateCategory)
		app.Get("/api/categories/:slug", protected, h.GetCategoryBySlug)
		app.Get("/api/categories/:slug/quizzes", protected, h.ListQuizzesByCategory)
		app.Delete("/api/categories/:id", protected, h.DeleteCategory)
	})
}

func TestCategoryHandler_ListCategories(t *testing.T) {
	svc := &MockCategoryService{
		ListCategoriesFunc: func(_ context.Context, userID string) ([]dto.CategoryResponse, error) {
			assert.Equal(t, testUserID, userID)
			return []dto.CategoryResponse{
				{Name: "Python", Slug: "python", Quizzes: []dto.QuizSummaryResponse{{Slug: "python-basics"}}},
				{Name: "Go", Slug: "go"},
			}, nil
		},
	}

	resp, err := newCategoryApp(svc).Test(newRequest(t, "GET", "/api/categories", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []dto.CategoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Len(t, body[0].Quizzes, 1)
}

func TestCategoryHandler_GetAndListQuizzes(t *testing.T) {
	svc := &MockCategoryService{
		GetCategoryBySlugFunc: func(_ context.Context, userID, slug string) (*dto.CategoryResponse, error) {
			return nil, domain.NewNotFoundError("category not found")
		},
		ListQuizzesByCategorySlugFunc: func(_ context.Context, userID, slug string) ([]dto.QuizSummaryResponse, error) {
			return []dto.QuizSummaryResponse{}, nil
		},
	}
	app := newCategoryApp(svc)

	resp, err := app.Test(newRequest(t, "GET", "/api/categories/rust", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)

	resp, err = app.Test(newRequest(t, "GET", "/api/categories/python/quizzes", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		svcErr     error
		wantStatus int
	}{
		{name: "created", body: dto.CreateCategoryRequest{Name: "Python"}, wantStatus: fiber.StatusCreated},
		{name: "missing name", body: dto.CreateCategoryRequest{Slug: "python"}, wantStatus: fiber.StatusBadRequest},
		{name: "slug without letters", body: dto.CreateCategoryRequest{Name: "Python", Slug: "!!!"}, wantStatus: fiber.StatusBadRequest},
		{name: "conflict", body: dto.CreateCategoryRequest{Name: "Python"}, svcErr: domain.NewConflictError("category slug already in use", nil), wantStatus: fiber.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &MockCategoryService{
				CreateCategoryFunc: func(_ context.Context, userID string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
					if tc.svcErr != nil {
						return nil, tc.svcErr
					}
					return &dto.CategoryResponse{ID: util.NewULID(), Name: req.Name, Slug: "python-1"}, nil
				},
			}
			resp, err := newCategoryApp(svc).Test(newRequest(t, "POST", "/api/categories", tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	categoryID := util.NewULID()
	svc := &MockCategoryService{
		DeleteCategoryFunc: func(_ context.Context, userID, id string) (*dto.DeleteResponse, error) {
			assert.Equal(t, categoryID, id)
			return &dto.DeleteResponse{
				Success:          true,
				Message:          "Category and all related quizzes deleted successfully",
				DeletedID:        id,
				DeletedQuizzes:   2,
				DeletedQuestions: 10,
			}, nil
		},
	}

	resp, err := newCategoryApp(svc).Test(newRequest(t, "DELETE", "/api/categories/"+categoryID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.DeleteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(2), body.DeletedQuizzes)
	assert.Equal(t, int64(10), body.DeletedQuestions)
}
