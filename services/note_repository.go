package services

import (
	"context"
	"noteapp/models"
)

// NoteRepository forwards note operations to the storage gateway. It adds no
// logic beyond turning gateway results into ErrNoteNotFound and StorageError.
type NoteRepository struct {
	gateway NoteGateway
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(gateway NoteGateway) *NoteRepository {
	return &NoteRepository{gateway: gateway}
}

// Insert stores the note, replacing any row with the same id.
// A zero id is replaced by the id the store assigned.
func (r *NoteRepository) Insert(ctx context.Context, note *models.Note) error {
	if err := r.gateway.InsertNote(ctx, note); err != nil {
		return storageFailure("insert", err)
	}
	return nil
}

// GetAllNotes returns every stored note, never nil on success
func (r *NoteRepository) GetAllNotes(ctx context.Context) ([]models.Note, error) {
	notes, err := r.gateway.GetAllNotes(ctx)
	if err != nil {
		return nil, storageFailure("get all notes", err)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// GetNoteByID returns the stored note or ErrNoteNotFound
func (r *NoteRepository) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	note, err := r.gateway.GetNoteByID(ctx, id)
	if err != nil {
		return nil, storageFailure("get note", err)
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Delete removes the note with the same id
func (r *NoteRepository) Delete(ctx context.Context, note models.Note) error {
	if err := r.gateway.DeleteNote(ctx, note); err != nil {
		return storageFailure("delete", err)
	}
	return nil
}
