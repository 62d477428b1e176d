package server

import (
	"errors"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var page Pagination
	app.Get("/items", func(c *fiber.Ctx) error {
		page = parsePagination(c, 20)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name       string
		url        string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/items", 20, 0},
		{"explicit", "/items?limit=5&offset=10", 5, 10},
		{"limit capped", "/items?limit=500", 100, 0},
		{"negative values fall back", "/items?limit=-1&offset=-5", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
		})
	}
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "comment ID", humanizeParam("commentId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.NewValidationError("bad"), fiber.StatusBadRequest},
		{models.NewDuplicateError("User", "email"), fiber.StatusConflict},
		{models.NewNotFoundError("Post", 1), fiber.StatusNotFound},
		{models.NewAuthRequiredError("auth"), fiber.StatusUnauthorized},
		{models.NewForbiddenError("no"), fiber.StatusForbidden},
		{models.NewIntegrityError("orphan"), fiber.StatusConflict},
		{models.NewStorageUnavailableError(errors.New("down")), fiber.StatusServiceUnavailable},
		{models.NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{errors.New("plain"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err))
	}
}
