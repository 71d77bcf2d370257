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

const userColumns = `id "id", external_id "external_id", email "email", display_name "display_name", created_at "created_at"`

// UserRepository implements domain.UserRepository on Oracle.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db *sqlx.DB) domain.UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A clash on external_id or email surfaces as domain.ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m := toModelUser(user)

	query := `INSERT INTO users (id, external_id, email, display_name, created_at) VALUES (:1, :2, :3, :4, :5)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, m.ID, m.ExternalID, m.Email, m.DisplayName, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user already exists: %w", domain.ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = :1`, externalID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = :1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var m models.User
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&m), nil
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:          m.ID,
		ExternalID:  m.ExternalID,
		Email:       m.Email,
		DisplayName: m.DisplayName.String,
		CreatedAt:   m.CreatedAt,
	}
}

func toModelUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:          u.ID,
		ExternalID:  u.ExternalID,
		Email:       u.Email,
		DisplayName: util.StringToNullString(u.DisplayName),
		CreatedAt:   u.CreatedAt,
	}
}
