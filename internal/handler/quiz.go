package handler

import (
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a prompt
// @Description Classifies the prompt, asks the model for five multiple-choice questions and validates the result. With save=true the quiz is persisted as well.
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Prompt"
// @Success 200 {object} dto.GeneratedQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /generate-quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.GenerateQuizRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.validator.ValidateGenerateRequest(&req); err != nil {
		return err
	}

	resp, err := h.service.GenerateQuiz(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	if resp.Saved != nil {
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
	return c.JSON(resp)
}

// SaveGeneratedQuiz godoc
// @Summary Save a generated quiz
// @Description Persists a payload returned by generate-quiz under the caller's account, reusing the matching category when one exists
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.SaveGeneratedQuizRequest true "Generated payload"
// @Success 201 {object} dto.SavedQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /generated-quizzes [post]
func (h *QuizHandler) SaveGeneratedQuiz(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.SaveGeneratedQuizRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	saved, err := h.service.SaveGeneratedQuiz(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// GetQuizBySlug godoc
// @Summary Get a quiz by slug
// @Description Returns the caller's quiz with its category and ordered questions
// @Tags quiz
// @Security ApiKeyAuth
// @Produce json
// @Param slug path string true "Quiz slug"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{slug} [get]
func (h *QuizHandler) GetQuizBySlug(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	quiz, err := h.service.GetQuizBySlug(c.Context(), userID, c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Description Creates a quiz in one of the caller's categories, optionally attaching existing questions in the given order
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.CreateQuizRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.validator.ValidateCreateQuizRequest(&req); err != nil {
		return err
	}

	quiz, err := h.service.CreateQuiz(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// CreateQuestion godoc
// @Summary Add a question to a quiz
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/questions [post]
func (h *QuizHandler) CreateQuestion(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.CreateQuestionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.validator.ValidateCreateQuestionRequest(&req); err != nil {
		return err
	}

	question, err := h.service.CreateQuestion(c.Context(), userID, c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

// AttachQuestions godoc
// @Summary Replace a quiz's question order
// @Description Attaches the listed questions in order. Questions left out stay stored but are no longer part of the quiz.
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.AttachQuestionsRequest true "Ordered question IDs"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/questions [put]
func (h *QuizHandler) AttachQuestions(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.AttachQuestionsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.validator.ValidateAttachQuestionsRequest(&req); err != nil {
		return err
	}

	quiz, err := h.service.AttachQuestions(c.Context(), userID, c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// SubmitQuiz godoc
// @Summary Score a quiz submission
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.SubmitQuizRequest true "Answers"
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.SubmitQuizRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.validator.ValidateSubmitQuizRequest(&req); err != nil {
		return err
	}

	result, err := h.service.SubmitQuiz(c.Context(), userID, c.Params("id"), &req)
	if err != nil {
		return err
	}
	logger.Get().Info("Quiz submitted",
		zap.String("userID", userID),
		zap.String("quizID", result.QuizID),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total))
	return c.JSON(result)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Deletes the quiz and all of its questions
// @Tags quiz
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.DeleteQuiz(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
