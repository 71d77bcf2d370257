package service

import (
	"context"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// CategoryReconciler finds a caller's existing category for a generated one.
type CategoryReconciler interface {
	Reconcile(ctx context.Context, slug, userID string) *domain.Category
}

type categoryReconciler struct {
	repo domain.CategoryRepository
}

func NewCategoryReconciler(repo domain.CategoryRepository) CategoryReconciler {
	return &categoryReconciler{repo: repo}
}

// Reconcile returns nil when the category is absent or the lookup fails; a
// failed lookup is logged and treated as absent so generation can proceed.
func (r *categoryReconciler) Reconcile(ctx context.Context, slug, userID string) *domain.Category {
	if slug == "" || userID == "" {
		return nil
	}
	category, err := r.repo.GetBySlug(ctx, slug, userID)
	if err != nil {
		logger.Get().Warn("Category reconciliation lookup failed, treating category as new",
			zap.String("slug", slug),
			zap.String("userID", userID),
			zap.Error(err))
		return nil
	}
	return category
}
