package models

// Note is the only persisted entity. ID 0 means the note has not been stored yet;
// the database assigns the id on first insert.
type Note struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// IsPersisted reports whether the note already has a storage-assigned id.
func (n Note) IsPersisted() bool {
	return n.ID != 0
}

// NoteRequest is the add/edit form input
type NoteRequest struct {
	Title       string `json:"title" validate:"required,max=200,notblank"`
	Description string `json:"description" validate:"max=10000"`
}

// ToNote builds a note from the form input. Passing id 0 creates a new note,
// any other id replaces the stored row with that id.
func (r NoteRequest) ToNote(id int64) Note {
	return Note{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
	}
}
