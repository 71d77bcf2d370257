package service

import (
	"context"
	"errors"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
	CurrentUser(ctx context.Context, identity *domain.Identity) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	users      domain.UserRepository
	categories domain.CategoryRepository
	quizzes    domain.QuizRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(users domain.UserRepository, categories domain.CategoryRepository, quizzes domain.QuizRepository) UserService {
	return &userServiceImpl{users: users, categories: categories, quizzes: quizzes}
}

// Register creates the user on first call. A user already known by identity
// ID or email is returned as-is. Owned category and quiz IDs are only filled
// for verified requests.
func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	externalID := strings.TrimSpace(req.ExternalID)
	email := strings.TrimSpace(req.Email)

	existing, err := s.findExisting(ctx, externalID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.registered(ctx, existing, req.Verified)
	}

	user := domain.NewUser(externalID, email, req.DisplayName)
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewInternalError("failed to register user", err)
		}
		// A concurrent registration won the race.
		existing, findErr := s.findExisting(ctx, externalID, email)
		if findErr != nil || existing == nil {
			return nil, domain.NewConflictError("user is already registered", err)
		}
		return s.registered(ctx, existing, req.Verified)
	}

	logger.Get().Info("User registered", zap.String("userID", user.ID), zap.String("externalID", user.ExternalID))
	return s.registered(ctx, user, req.Verified)
}

func (s *userServiceImpl) registered(ctx context.Context, user *domain.User, verified bool) (*dto.UserResponse, error) {
	if verified {
		return s.withOwnership(ctx, user)
	}
	return toUserResponse(user), nil
}

// CurrentUser returns the registered profile behind a verified identity.
func (s *userServiceImpl) CurrentUser(ctx context.Context, identity *domain.Identity) (*dto.UserResponse, error) {
	user, err := s.users.GetByExternalID(ctx, identity.UserID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user is not registered")
	}
	return s.withOwnership(ctx, user)
}

func (s *userServiceImpl) findExisting(ctx context.Context, externalID, email string) (*domain.User, error) {
	if externalID != "" {
		user, err := s.users.GetByExternalID(ctx, externalID)
		if err != nil {
			return nil, domain.NewInternalError("failed to look up user", err)
		}
		if user != nil {
			return user, nil
		}
	}
	if email != "" {
		user, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, domain.NewInternalError("failed to look up user", err)
		}
		return user, nil
	}
	return nil, nil
}

// withOwnership fills the owned category and quiz IDs from the entities' user_id.
func (s *userServiceImpl) withOwnership(ctx context.Context, user *domain.User) (*dto.UserResponse, error) {
	categories, err := s.categories.ListByUser(ctx, user.ExternalID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list user categories", err)
	}
	quizzes, err := s.quizzes.ListByUser(ctx, user.ExternalID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list user quizzes", err)
	}

	user.CategoryIDs = make([]string, len(categories))
	for i, c := range categories {
		user.CategoryIDs[i] = c.ID
	}
	user.QuizIDs = make([]string, len(quizzes))
	for i, q := range quizzes {
		user.QuizIDs[i] = q.ID
	}

	return toUserResponse(user), nil
}

func toUserResponse(user *domain.User) *dto.UserResponse {
	categoryIDs, quizIDs := user.CategoryIDs, user.QuizIDs
	if categoryIDs == nil {
		categoryIDs = []string{}
	}
	if quizIDs == nil {
		quizIDs = []string{}
	}
	return &dto.UserResponse{
		ID:          user.ID,
		ExternalID:  user.ExternalID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
		CategoryIDs: categoryIDs,
		QuizIDs:     quizIDs,
	}
}
