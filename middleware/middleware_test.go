package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(logs *bytes.Buffer) *fiber.App {
	logger := slog.New(slog.NewTextHandler(logs, nil))

	app := fiber.New()
	app.Use(StructuredLogger(logger), Security())
	app.Get("/api/notes/:id", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": c.Params("id")})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestStructuredLogger(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contains    []string
		notContains []string
	}{
		{
			name:     "Note route logs note id",
			path:     "/api/notes/7",
			contains: []string{"note_id=7", "route=/api/notes/:id", "status=200", "request_id="},
		},
		{
			name:        "Route without id",
			path:        "/health",
			contains:    []string{"route=/health", "request completed"},
			notContains: []string{"note_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			app := setupTestApp(&logs)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
			for _, s := range tt.contains {
				assert.Contains(t, logs.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, logs.String(), s)
			}
		})
	}
}

func TestSecurity(t *testing.T) {
	var logs bytes.Buffer
	app := setupTestApp(&logs)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/notes/1", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, resp.Header.Get("Cache-Control"))
}
