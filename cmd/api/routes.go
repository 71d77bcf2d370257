package main

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

type routeDeps struct {
	quiz     *handler.QuizHandler
	category *handler.CategoryHandler
	user     *handler.UserHandler
	health   *handler.HealthHandler
	verifier domain.IdentityVerifier
}

func registerRoutes(app *fiber.App, d routeDeps) {
	vm := middleware.NewValidationMiddleware()
	protected := middleware.Protected(d.verifier)

	app.Get("/health", d.health.Check)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	api.Post("/users/register", middleware.OptionalAuth(d.verifier), d.user.Register)
	api.Get("/users/me", protected, d.user.GetMe)

	api.Post("/generate-quiz", protected, d.quiz.GenerateQuiz)
	api.Post("/generated-quizzes", protected, d.quiz.SaveGeneratedQuiz)

	categories := api.Group("/categories", protected)
	categories.Get("/", d.category.ListCategories)
	categories.Post("/", d.category.CreateCategory)
	categories.Get("/:slug", vm.ValidateSlugParam("slug"), d.category.GetCategoryBySlug)
	categories.Get("/:slug/quizzes", vm.ValidateSlugParam("slug"), d.category.ListQuizzesByCategory)
	categories.Delete("/:id", vm.ValidateIDParam("id"), d.category.DeleteCategory)

	quizzes := api.Group("/quizzes", protected)
	quizzes.Post("/", d.quiz.CreateQuiz)
	quizzes.Get("/:slug", vm.ValidateSlugParam("slug"), d.quiz.GetQuizBySlug)
	quizzes.Delete("/:id", vm.ValidateIDParam("id"), d.quiz.DeleteQuiz)
	quizzes.Post("/:id/questions", vm.ValidateIDParam("id"), d.quiz.CreateQuestion)
	quizzes.Put("/:id/questions", vm.ValidateIDParam("id"), d.quiz.AttachQuestions)
	quizzes.Post("/:id/submit", vm.ValidateIDParam("id"), d.quiz.SubmitQuiz)
}
