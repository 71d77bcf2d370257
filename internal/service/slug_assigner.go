package service

import (
	"context"
	"errors"
	"fmt"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/util"

	"go.uber.org/zap"
)

// maxSlugAttempts bounds the suffix search so a faulty exists check cannot loop forever.
const maxSlugAttempts = 1000

// SlugExistsFunc reports whether slug is already taken by userID.
type SlugExistsFunc func(ctx context.Context, slug, userID string) (bool, error)

// AssignUniqueSlug slugifies candidate and appends -1, -2, ... until exists
// reports the slug as free for userID.
func AssignUniqueSlug(ctx context.Context, candidate, userID string, exists SlugExistsFunc) (string, error) {
	base := util.Slugify(candidate)
	if base == "" {
		return "", domain.NewInvalidInputError(fmt.Sprintf("cannot derive a slug from %q", candidate))
	}

	slug := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := exists(ctx, slug, userID)
		if err != nil {
			return "", domain.NewInternalError("failed to check slug availability", err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", domain.NewConflictError(fmt.Sprintf("no free slug for %q", base), nil)
}

// withSlugRetry runs fn in a transaction and repeats it once when a unique
// index rejected a slug that was free at assignment time. A second rejection
// is reported as CONFLICT.
func withSlugRetry(ctx context.Context, tx domain.TransactionManager, entity string, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= 2; attempt++ {
		err = tx.WithTransaction(ctx, fn)
		if !errors.Is(err, domain.ErrDuplicateKey) {
			return err
		}
		logger.Get().Warn("Slug collided on write, reassigning",
			zap.String("entity", entity),
			zap.Int("attempt", attempt))
	}
	return domain.NewConflictError(fmt.Sprintf("%s slug is already taken", entity), err)
}

// wrapInternal leaves domain errors untouched and hides anything else behind INTERNAL.
func wrapInternal(message string, err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return domain.NewInternalError(message, err)
}
