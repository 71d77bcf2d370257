package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Tests for Converter Functions ---

func TestToDomainUser(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	modelUser := &models.User{
		ID:          "user1",
		ExternalID:  "auth0|123",
		Email:       "test@example.com",
		DisplayName: sql.NullString{String: "Test User", Valid: true},
		CreatedAt:   now,
	}

	domainUser := toDomainUser(modelUser)
	require.NotNil(t, domainUser)
	assert.Equal(t, modelUser.ID, domainUser.ID)
	assert.Equal(t, modelUser.ExternalID, domainUser.ExternalID)
	assert.Equal(t, "Test User", domainUser.DisplayName)
	assert.True(t, modelUser.CreatedAt.Equal(domainUser.CreatedAt))

	modelUser.DisplayName.Valid = false
	modelUser.DisplayName.String = ""
	assert.Equal(t, "", toDomainUser(modelUser).DisplayName)

	assert.Nil(t, toDomainUser(nil))
}

func TestToModelUser(t *testing.T) {
	u := &domain.User{ID: "user1", ExternalID: "ext", Email: "a@b.c"}
	m := toModelUser(u)
	assert.False(t, m.DisplayName.Valid)
	assert.Nil(t, toModelUser(nil))
}

// --- Tests for Repository Methods ---

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserRepository(db)

	user := domain.NewUser("auth0|123", "ada@example.com", "")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id, external_id, email, display_name, created_at)")).
		WithArgs(sqlmock.AnyArg(), "auth0|123", "ada@example.com", "ada", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errors.New("ORA-00001: unique constraint (QUIZ.UQ_USERS_EMAIL) violated"))

	err := repo.Create(context.Background(), domain.NewUser("auth0|123", "ada@example.com", ""))
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = :1")).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "external_id", "email", "display_name", "created_at"}).
			AddRow("u1", "auth0|123", "ada@example.com", "Ada", now))

	user, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Ada", user.DisplayName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByExternalID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE external_id = :1")).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetByExternalID(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_GetByExternalID_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE external_id = :1")).
		WillReturnError(errors.New("ORA-03113: end-of-file on communication channel"))

	user, err := repo.GetByExternalID(context.Background(), "auth0|123")
	assert.Error(t, err)
	assert.Nil(t, user)
}
