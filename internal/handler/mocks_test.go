package handler_test

import (
	"context"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
)

// --- Manual Mocks ---

type MockQuizService struct {
	GenerateQuizFunc      func(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GeneratedQuizResponse, error)
	SaveGeneratedQuizFunc func(ctx context.Context, userID string, req *dto.SaveGeneratedQuizRequest) (*dto.SavedQuizResponse, error)
	GetQuizBySlugFunc     func(ctx context.Context, userID, slug string) (*dto.QuizResponse, error)
	CreateQuizFunc        func(ctx context.Context, userID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	CreateQuestionFunc    func(ctx context.Context, userID, quizID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	AttachQuestionsFunc   func(ctx context.Context, userID, quizID string, req *dto.AttachQuestionsRequest) (*dto.QuizResponse, error)
	SubmitQuizFunc        func(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	DeleteQuizFunc        func(ctx context.Context, userID, quizID string) (*dto.DeleteResponse, error)
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GeneratedQuizResponse, error) {
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, userID, req)
	}
	panic("MockQuizService.GenerateQuizFunc not implemented")
}
func (m *MockQuizService) SaveGeneratedQuiz(ctx context.Context, userID string, req *dto.SaveGeneratedQuizRequest) (*dto.SavedQuizResponse, error) {
	if m.SaveGeneratedQuizFunc != nil {
		return m.SaveGeneratedQuizFunc(ctx, userID, req)
	}
	panic("MockQuizService.SaveGeneratedQuizFunc not implemented")
}
func (m *MockQuizService) GetQuizBySlug(ctx context.Context, userID, slug string) (*dto.QuizResponse, error) {
	if m.GetQuizBySlugFunc != nil {
		return m.GetQuizBySlugFunc(ctx, userID, slug)
	}
	panic("MockQuizService.GetQuizBySlugFunc not implemented")
}
func (m *MockQuizService) CreateQuiz(ctx context.Context, userID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if m.CreateQuizFunc != nil {
		return m.CreateQuizFunc(ctx, userID, req)
	}
	panic("MockQuizService.CreateQuizFunc not implemented")
}
func (m *MockQuizService) CreateQuestion(ctx context.Context, userID, quizID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if m.CreateQuestionFunc != nil {
		return m.CreateQuestionFunc(ctx, userID, quizID, req)
	}
	panic("MockQuizService.CreateQuestionFunc not implemented")
}
func (m *MockQuizService) AttachQuestions(ctx context.Context, userID, quizID string, req *dto.AttachQuestionsRequest) (*dto.QuizResponse, error) {
	if m.AttachQuestionsFunc != nil {
		return m.AttachQuestionsFunc(ctx, userID, quizID, req)
	}
	panic("MockQuizService.AttachQuestionsFunc not implemented")
}
func (m *MockQuizService) SubmitQuiz(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	if m.SubmitQuizFunc != nil {
		return m.SubmitQuizFunc(ctx, userID, quizID, req)
	}
	panic("MockQuizService.SubmitQuizFunc not implemented")
}
func (m *MockQuizService) DeleteQuiz(ctx context.Context, userID, quizID string) (*dto.DeleteResponse, error) {
	if m.DeleteQuizFunc != nil {
		return m.DeleteQuizFunc(ctx, userID, quizID)
	}
	panic("MockQuizService.DeleteQuizFunc not implemented")
}

type MockCategoryService struct {
	ListCategoriesFunc            func(ctx context.Context, userID string) ([]dto.CategoryResponse, error)
	GetCategoryBySlugFunc         func(ctx context.Context, userID, slug string) (*dto.CategoryResponse, error)
	ListQuizzesByCategorySlugFunc func(ctx context.Context, userID, slug string) ([]dto.QuizSummaryResponse, error)
	CreateCategoryFunc            func(ctx context.Context, userID string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategoryFunc            func(ctx context.Context, userID, categoryID string) (*dto.DeleteResponse, error)
}

func (m *MockCategoryService) ListCategories(ctx context.Context, userID string) ([]dto.CategoryResponse, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx, userID)
	}
	panic("MockCategoryService.ListCategoriesFunc not implemented")
}
func (m *MockCategoryService) GetCategoryBySlug(ctx context.Context, userID, slug string) (*dto.CategoryResponse, error) {
	if m.GetCategoryBySlugFunc != nil {
		return m.GetCategoryBySlugFunc(ctx, userID, slug)
	}
	panic("MockCategoryService.GetCategoryBySlugFunc not implemented")
}
func (m *MockCategoryService) ListQuizzesByCategorySlug(ctx context.Context, userID, slug string) ([]dto.QuizSummaryResponse, error) {
	if m.ListQuizzesByCategorySlugFunc != nil {
		return m.ListQuizzesByCategorySlugFunc(ctx, userID, slug)
	}
	panic("MockCategoryService.ListQuizzesByCategorySlugFunc not implemented")
}
func (m *MockCategoryService) CreateCategory(ctx context.Context, userID string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, userID, req)
	}
	panic("MockCategoryService.CreateCategoryFunc not implemented")
}
func (m *MockCategoryService) DeleteCategory(ctx context.Context, userID, categoryID string) (*dto.DeleteResponse, error) {
	if m.DeleteCategoryFunc != nil {
		return m.DeleteCategoryFunc(ctx, userID, categoryID)
	}
	panic("MockCategoryService.DeleteCategoryFunc not implemented")
}

type MockUserService struct {
	RegisterFunc    func(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
	CurrentUserFunc func(ctx context.Context, identity *domain.Identity) (*dto.UserResponse, error)
}

func (m *MockUserService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	panic("MockUserService.RegisterFunc not implemented")
}
func (m *MockUserService) CurrentUser(ctx context.Context, identity *domain.Identity) (*dto.UserResponse, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, identity)
	}
	panic("MockUserService.CurrentUserFunc not implemented")
}

// staticVerifier accepts "valid-token" as user_123.
type staticVerifier struct{}

func (staticVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	if token == "valid-token" {
		return &domain.Identity{UserID: testUserID, Email: "ada@example.com"}, nil
	}
	return nil, domain.NewUnauthenticatedError("invalid token")
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type fakeCache struct{ pingErr error }

func (f *fakeCache) Get(context.Context, string) (string, error) { return "", domain.ErrCacheMiss }
func (f *fakeCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}
func (f *fakeCache) Delete(context.Context, string) error { return nil }
func (f *fakeCache) Ping(context.Context) error           { return f.pingErr }
