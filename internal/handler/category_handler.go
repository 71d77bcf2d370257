package handler

import (
	"quiz-forge/internal/dto"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	service   service.CategoryService
	validator *validation.Validator
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// ListCategories godoc
// @Summary List categories
// @Description Returns the caller's categories with their quizzes
// @Tags categories
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	categories, err := h.service.ListCategories(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// GetCategoryBySlug godoc
// @Summary Get a category by slug
// @Tags categories
// @Security ApiKeyAuth
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /categories/{slug} [get]
func (h *CategoryHandler) GetCategoryBySlug(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	category, err := h.service.GetCategoryBySlug(c.Context(), userID, c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// ListQuizzesByCategory godoc
// @Summary List quizzes in a category
// @Tags categories
// @Security ApiKeyAuth
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {array} dto.QuizSummaryResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /categories/{slug}/quizzes [get]
func (h *CategoryHandler) ListQuizzesByCategory(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	quizzes, err := h.service.ListQuizzesByCategorySlug(c.Context(), userID, c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// CreateCategory godoc
// @Summary Create a category
// @Description The slug defaults to the slugified name and gets a numeric suffix when taken
// @Tags categories
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.CreateCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.validator.ValidateCreateCategoryRequest(&req); err != nil {
		return err
	}

	category, err := h.service.CreateCategory(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Deletes the category with every quiz and question under it
// @Tags categories
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.DeleteCategory(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
