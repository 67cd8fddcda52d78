package services

import (
	"context"
	"noteapp/models"
)

// NoteGateway defines the storage engine operations the repository forwards to.
// GetNoteByID returns nil, nil for a missing row.
type NoteGateway interface {
	InsertNote(ctx context.Context, note *models.Note) error
	GetAllNotes(ctx context.Context) ([]models.Note, error)
	GetNoteByID(ctx context.Context, id int64) (*models.Note, error)
	DeleteNote(ctx context.Context, note models.Note) error
}
