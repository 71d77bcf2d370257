package service

import (
	"context"
	"fmt"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// CategoryService defines the interface for category operations.
type CategoryService interface {
	ListCategories(ctx context.Context, userID string) ([]dto.CategoryResponse, error)
	GetCategoryBySlug(ctx context.Context, userID, slug string) (*dto.CategoryResponse, error)
	ListQuizzesByCategorySlug(ctx context.Context, userID, slug string) ([]dto.QuizSummaryResponse, error)
	CreateCategory(ctx context.Context, userID string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) (*dto.DeleteResponse, error)
}

type categoryService struct {
	categories domain.CategoryRepository
	quizzes    domain.QuizRepository
	questions  domain.QuestionRepository
	tx         domain.TransactionManager
}

func NewCategoryService(
	categories domain.CategoryRepository,
	quizzes domain.QuizRepository,
	questions domain.QuestionRepository,
	tx domain.TransactionManager,
) CategoryService {
	return &categoryService{
		categories: categories,
		quizzes:    quizzes,
		questions:  questions,
		tx:         tx,
	}
}

// ListCategories returns the caller's categories, each with its quizzes.
func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list categories", err)
	}
	quizzes, err := s.quizzes.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}

	byCategory := make(map[string][]*domain.Quiz, len(categories))
	for _, q := range quizzes {
		byCategory[q.CategoryID] = append(byCategory[q.CategoryID], q)
	}

	resp := make([]dto.CategoryResponse, len(categories))
	for i, c := range categories {
		c.Quizzes = byCategory[c.ID]
		resp[i] = *toCategoryResponse(c)
	}
	return resp, nil
}

func (s *categoryService) GetCategoryBySlug(ctx context.Context, userID, slug string) (*dto.CategoryResponse, error) {
	category, err := s.ownedCategoryBySlug(ctx, userID, slug)
	if err != nil {
		return nil, err
	}
	category.Quizzes, err = s.quizzes.ListByCategory(ctx, category.ID, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list category quizzes", err)
	}
	return toCategoryResponse(category), nil
}

func (s *categoryService) ListQuizzesByCategorySlug(ctx context.Context, userID, slug string) ([]dto.QuizSummaryResponse, error) {
	category, err := s.ownedCategoryBySlug(ctx, userID, slug)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.quizzes.ListByCategory(ctx, category.ID, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list category quizzes", err)
	}
	resp := make([]dto.QuizSummaryResponse, len(quizzes))
	for i, q := range quizzes {
		resp[i] = toQuizSummary(q)
	}
	return resp, nil
}

// CreateCategory creates a category; the slug defaults to the name and gets a
// numeric suffix when the caller already uses it.
func (s *categoryService) CreateCategory(ctx context.Context, userID string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	candidate := req.Slug
	if strings.TrimSpace(candidate) == "" {
		candidate = name
	}

	var category *domain.Category
	err := withSlugRetry(ctx, s.tx, "category", func(ctx context.Context) error {
		slug, err := AssignUniqueSlug(ctx, candidate, userID, s.categories.ExistsBySlug)
		if err != nil {
			return err
		}
		category = domain.NewCategory(name, slug, strings.TrimSpace(req.Description), userID)
		if err := category.Validate(); err != nil {
			return err
		}
		if err := s.categories.Create(ctx, category); err != nil {
			return wrapInternal("failed to create category", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// DeleteCategory removes the category, its quizzes and their questions in one transaction.
func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) (*dto.DeleteResponse, error) {
	category, err := s.categories.GetByID(ctx, categoryID, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get category", err)
	}
	if category == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("category %s not found", categoryID))
	}

	result := domain.DeleteResult{DeletedID: category.ID}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		n, err := s.questions.DeleteByCategory(ctx, category.ID)
		if err != nil {
			return wrapInternal("failed to delete category questions", err)
		}
		result.DeletedQuestions = n
		if result.DeletedQuizzes, err = s.quizzes.DeleteByCategory(ctx, category.ID, userID); err != nil {
			return wrapInternal("failed to delete category quizzes", err)
		}
		if _, err := s.categories.Delete(ctx, category.ID, userID); err != nil {
			return wrapInternal("failed to delete category", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Category deleted",
		zap.String("userID", userID),
		zap.String("categoryID", category.ID),
		zap.Int64("quizzes", result.DeletedQuizzes),
		zap.Int64("questions", result.DeletedQuestions))
	return &dto.DeleteResponse{
		Success:          true,
		Message:          "Category and all related quizzes deleted successfully",
		DeletedID:        result.DeletedID,
		DeletedQuizzes:   result.DeletedQuizzes,
		DeletedQuestions: result.DeletedQuestions,
	}, nil
}

func (s *categoryService) ownedCategoryBySlug(ctx context.Context, userID, slug string) (*domain.Category, error) {
	category, err := s.categories.GetBySlug(ctx, slug, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get category", err)
	}
	if category == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("category %q not found", slug))
	}
	return category, nil
}
