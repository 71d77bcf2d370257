package middleware_test

import (
	"net/http/httptest"
	"testing"

	"quiz-forge/internal/middleware"
	"quiz-forge/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationMiddleware_Params(t *testing.T) {
	vm := middleware.NewValidationMiddleware()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }
	app.Get("/quizzes/:id", vm.ValidateIDParam("id"), ok)
	app.Get("/categories/:slug", vm.ValidateSlugParam("slug"), ok)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/quizzes/" + util.NewULID(), fiber.StatusNoContent},
		{"/quizzes/not-an-id", fiber.StatusBadRequest},
		{"/categories/react-native", fiber.StatusNoContent},
		{"/categories/React_Native", fiber.StatusBadRequest},
		{"/categories/-react", fiber.StatusBadRequest},
	}
	for _, tc := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.wantStatus, resp.StatusCode, tc.path)
	}
}
