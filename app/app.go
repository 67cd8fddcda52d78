package app

import (
	"log/slog"
	"noteapp/database"
	"noteapp/validator"
	"noteapp/viewmodel"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Store     *database.Repository
	Notes     *viewmodel.NoteViewModel
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(store *database.Repository, notes *viewmodel.NoteViewModel, logger *slog.Logger) *App {
	return &App{
		Store:     store,
		Notes:     notes,
		Validator: validator.New(),
		Logger:    logger,
	}
}
