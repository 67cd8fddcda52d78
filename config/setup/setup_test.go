package setup

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"noteapp/config"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, ParseLogLevel(input), input)
	}
}

func TestServerWiring(t *testing.T) {
	config.Load()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := InitDatabase(filepath.Join(t.TempDir(), "nested", "notes.db"), logger)
	require.NoError(t, err)

	application := InitApp(db, logger)
	defer Shutdown(application, db, logger)

	app := NewFiberApp(logger)
	ApplyMiddleware(app, logger)
	RegisterRoutes(app, application)

	t.Run("Health route with security headers and request id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	})

	t.Run("Unknown route goes through the error handler", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Notes list route is registered", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/notes", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
