package service

import (
	"context"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/util"

	"go.uber.org/zap"
)

// CategorySeeder pre-creates categories for a user so that generated quizzes
// reconcile into them instead of creating new ones.
type CategorySeeder struct {
	categories domain.CategoryRepository
	tx         domain.TransactionManager
}

func NewCategorySeeder(categories domain.CategoryRepository, tx domain.TransactionManager) *CategorySeeder {
	return &CategorySeeder{categories: categories, tx: tx}
}

// Seed creates every draft whose slug the user does not own yet, in one
// transaction. It returns how many categories were created.
func (s *CategorySeeder) Seed(ctx context.Context, userID string, drafts []domain.CategoryDraft) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, domain.NewInvalidInputError("user ID is required")
	}

	created := 0
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		created = 0
		for _, d := range drafts {
			slug := util.Slugify(d.Slug)
			if slug == "" {
				slug = util.Slugify(d.Name)
			}
			if slug == "" {
				logger.Get().Warn("Skipping seed category without usable slug", zap.String("name", d.Name))
				continue
			}

			existing, err := s.categories.GetBySlug(txCtx, slug, userID)
			if err != nil {
				return wrapInternal("failed to check seed category", err)
			}
			if existing != nil {
				continue
			}

			category := domain.NewCategory(d.Name, slug, d.Description, userID)
			if err := category.Validate(); err != nil {
				return err
			}
			if err := s.categories.Create(txCtx, category); err != nil {
				return wrapInternal("failed to create seed category", err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Get().Info("Categories seeded", zap.String("userID", userID), zap.Int("created", created), zap.Int("total", len(drafts)))
	return created, nil
}
