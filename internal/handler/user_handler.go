package handler

import (
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService service.UserService
	validator   *validation.Validator
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validation.NewValidator()}
}

// Register creates the caller's user record, or returns the existing one.
// @Summary Register user
// @Description Registers a user by identity-provider subject. When a valid bearer token is sent, its subject and email override the body.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterUserRequest true "User"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /users/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if identity := middleware.IdentityFrom(c); identity != nil {
		req.ExternalID = identity.UserID
		req.Verified = true
		if identity.Email != "" {
			req.Email = identity.Email
		}
	}
	if err := h.validator.ValidateRegisterRequest(&req); err != nil {
		return err
	}

	user, err := h.userService.Register(c.Context(), &req)
	if err != nil {
		return err
	}
	logger.Get().Info("User registered", zap.String("userID", user.ID), zap.String("externalID", user.ExternalID))
	return c.JSON(user)
}

// GetMe retrieves the profile of the currently authenticated user.
// @Summary Get My Profile
// @Description Retrieves the logged-in user with the IDs of the categories and quizzes they own.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	if _, err := callerID(c); err != nil {
		return err
	}

	user, err := h.userService.CurrentUser(c.Context(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}
