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

const quizColumns = `id "id", title "title", slug "slug", description "description", category_id "category_id", user_id "user_id", created_at "created_at"`

// QuizRepository implements domain.QuizRepository on Oracle.
type QuizRepository struct {
	db DBTX
}

func NewQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	if err := quiz.Validate(); err != nil {
		return err
	}
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now()
	}
	m := toModelQuiz(quiz)

	query := `INSERT INTO quizzes (id, title, slug, description, category_id, user_id, created_at)
	VALUES (:1, :2, :3, :4, :5, :6, :7)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, m.ID, m.Title, m.Slug, m.Description, m.CategoryID, m.UserID, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("quiz slug %q already exists for user: %w", m.Slug, domain.ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

func (r *QuizRepository) GetByID(ctx context.Context, id, userID string) (*domain.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = :1 AND user_id = :2`
	return r.getOne(ctx, query, id, userID)
}

func (r *QuizRepository) GetBySlug(ctx context.Context, slug, userID string) (*domain.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE slug = :1 AND user_id = :2`
	return r.getOne(ctx, query, slug, userID)
}

func (r *QuizRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Quiz, error) {
	var m models.Quiz
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return toDomainQuiz(&m), nil
}

func (r *QuizRepository) ListByCategory(ctx context.Context, categoryID, userID string) ([]*domain.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE category_id = :1 AND user_id = :2 ORDER BY created_at, id`
	return r.list(ctx, query, categoryID, userID)
}

func (r *QuizRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE user_id = :1 ORDER BY created_at, id`
	return r.list(ctx, query, userID)
}

func (r *QuizRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Quiz, error) {
	var rows []models.Quiz
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	quizzes := make([]*domain.Quiz, len(rows))
	for i := range rows {
		quizzes[i] = toDomainQuiz(&rows[i])
	}
	return quizzes, nil
}

func (r *QuizRepository) ExistsBySlug(ctx context.Context, slug, userID string) (bool, error) {
	var count int
	query := `SELECT COUNT(1) FROM quizzes WHERE slug = :1 AND user_id = :2`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, query, slug, userID); err != nil {
		return false, fmt.Errorf("failed to check quiz slug: %w", err)
	}
	return count > 0, nil
}

func (r *QuizRepository) Delete(ctx context.Context, id, userID string) (int64, error) {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM quizzes WHERE id = :1 AND user_id = :2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}
	return rowsAffected(res), nil
}

func (r *QuizRepository) DeleteByCategory(ctx context.Context, categoryID, userID string) (int64, error) {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM quizzes WHERE category_id = :1 AND user_id = :2`, categoryID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete quizzes of category %s: %w", categoryID, err)
	}
	return rowsAffected(res), nil
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description.String,
		CategoryID:  m.CategoryID,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	if q == nil {
		return nil
	}
	return &models.Quiz{
		ID:          q.ID,
		Title:       q.Title,
		Slug:        q.Slug,
		Description: util.StringToNullString(q.Description),
		CategoryID:  q.CategoryID,
		UserID:      q.UserID,
		CreatedAt:   q.CreatedAt,
	}
}
