package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	Load()

	assert.Equal(t, "3000", AppConfig.Port)
	assert.Equal(t, "./data/notes.db", AppConfig.DBPath)
	assert.Equal(t, "info", AppConfig.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("DB_PATH", "/tmp/notes-test.db")

	Load()

	assert.Equal(t, "8080", AppConfig.Port)
	assert.Equal(t, "production", AppConfig.Env)
	assert.Equal(t, "/tmp/notes-test.db", AppConfig.DBPath)
}
