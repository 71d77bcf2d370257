package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/repository/models"
	"quiz-forge/internal/util"

	"github.com/jmoiron/sqlx"
)

const categoryColumns = `id "id", name "name", slug "slug", description "description", user_id "user_id", created_at "created_at"`

// CategoryRepository implements domain.CategoryRepository on Oracle.
type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db *sqlx.DB) domain.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	if category.ID == "" {
		category.ID = util.NewULID()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	m := toModelCategory(category)

	query := `INSERT INTO categories (id, name, slug, description, user_id, created_at)
	VALUES (:1, :2, :3, :4, :5, :6)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, m.ID, m.Name, m.Slug, m.Description, m.UserID, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category slug %q already exists for user: %w", m.Slug, domain.ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id, userID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = :1 AND user_id = :2`
	return r.getOne(ctx, query, id, userID)
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug, userID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = :1 AND user_id = :2`
	return r.getOne(ctx, query, slug, userID)
}

func (r *CategoryRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Category, error) {
	var m models.Category
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return toDomainCategory(&m), nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Category, error) {
	var rows []models.Category
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = :1 ORDER BY created_at, id`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categories := make([]*domain.Category, len(rows))
	for i := range rows {
		categories[i] = toDomainCategory(&rows[i])
	}
	return categories, nil
}

func (r *CategoryRepository) ExistsBySlug(ctx context.Context, slug, userID string) (bool, error) {
	var count int
	query := `SELECT COUNT(1) FROM categories WHERE slug = :1 AND user_id = :2`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, query, slug, userID); err != nil {
		return false, fmt.Errorf("failed to check category slug: %w", err)
	}
	return count > 0, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id, userID string) (int64, error) {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM categories WHERE id = :1 AND user_id = :2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return rowsAffected(res), nil
}

func toDomainCategory(m *models.Category) *domain.Category {
	if m == nil {
		return nil
	}
	return &domain.Category{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description.String,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}

func toModelCategory(c *domain.Category) *models.Category {
	if c == nil {
		return nil
	}
	return &models.Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: util.StringToNullString(c.Description),
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt,
	}
}
