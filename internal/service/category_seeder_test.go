package service

import (
	"context"
	"errors"
	"testing"

	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategorySeeder_Seed(t *testing.T) {
	categories := new(MockCategoryRepository)
	tx := &fakeTxManager{}
	seeder := NewCategorySeeder(categories, tx)

	categories.On("GetBySlug", mock.Anything, "python", testUser).Return(&domain.Category{ID: "c1", Slug: "python"}, nil)
	categories.On("GetBySlug", mock.Anything, "go", testUser).Return(nil, nil)
	categories.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return c.Slug == "go" && c.UserID == testUser && c.Name == "Go"
	})).Return(nil).Once()

	created, err := seeder.Seed(context.Background(), testUser, []domain.CategoryDraft{
		{Name: "Python", Slug: "python"},
		{Name: "Go", Slug: "go"},
		{Name: "!!!"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, tx.calls)
	categories.AssertExpectations(t)
}

func TestCategorySeeder_RepositoryFailure(t *testing.T) {
	categories := new(MockCategoryRepository)
	seeder := NewCategorySeeder(categories, &fakeTxManager{})

	categories.On("GetBySlug", mock.Anything, "go", testUser).Return(nil, errors.New("ORA-03113"))

	created, err := seeder.Seed(context.Background(), testUser, []domain.CategoryDraft{{Name: "Go", Slug: "go"}})
	assert.Equal(t, 0, created)
	assert.Equal(t, domain.CodeInternal, domain.CodeOf(err))
}

func TestCategorySeeder_RequiresUser(t *testing.T) {
	_, err := NewCategorySeeder(new(MockCategoryRepository), &fakeTxManager{}).Seed(context.Background(), "", nil)
	assert.Equal(t, domain.CodeInvalidInput, domain.CodeOf(err))
}
