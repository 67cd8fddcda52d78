package setup

import (
	"log/slog"
	"noteapp/app"
	"noteapp/database"
	"noteapp/services"
	"noteapp/viewmodel"
)

// InitDatabase initializes the SQLite database and runs migrations
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "path", dbPath)
	return db, nil
}

// InitApp wires gateway, repository and view-model into an App
func InitApp(db *database.DB, logger *slog.Logger) *app.App {
	store := database.NewRepository(db)
	repo := services.NewNoteRepository(store)

	notes := viewmodel.New(repo, logger)
	notes.LoadNotes()
	logger.Info("note view-model started")

	return app.New(store, notes, logger)
}

// Shutdown performs graceful shutdown of all services
func Shutdown(application *app.App, db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if application != nil && application.Notes != nil {
		application.Notes.Close()
		logger.Info("note view-model closed")
	}

	if db != nil {
		db.Close()
		logger.Info("database closed")
	}
}
