package database

import (
	"context"
	"database/sql"
	"fmt"
	"noteapp/models"
)

// ==================== NOTE OPERATIONS ====================

// InsertNote stores a note. A note with ID 0 gets a fresh id, which is written
// back into note. A note whose id already exists replaces that row.
func (r *Repository) InsertNote(ctx context.Context, note *models.Note) error {
	// NULL lets SQLite pick the next AUTOINCREMENT value
	id := sql.NullInt64{Int64: note.ID, Valid: note.IsPersisted()}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, description)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description
	`, id, note.Title, note.Description)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	if !note.IsPersisted() {
		newID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("read inserted note id: %w", err)
		}
		note.ID = newID
	}

	return nil
}

// GetAllNotes retrieves every stored note, oldest id first
func (r *Repository) GetAllNotes(ctx context.Context) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description
		FROM notes
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	notes := make([]models.Note, 0)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Description); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// GetNoteByID retrieves a single note. Returns nil, nil when no row has that id.
func (r *Repository) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	var note models.Note
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, description
		FROM notes
		WHERE id = ?
	`, id).Scan(&note.ID, &note.Title, &note.Description)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}

	return &note, nil
}

// DeleteNote removes the row matching the note's id. Deleting a missing note is a no-op.
func (r *Repository) DeleteNote(ctx context.Context, note models.Note) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", note.ID); err != nil {
		return fmt.Errorf("delete note %d: %w", note.ID, err)
	}
	return nil
}

// CountNotes returns the number of stored notes
func (r *Repository) CountNotes(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes").Scan(&count); err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return count, nil
}
