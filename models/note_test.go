package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteRequest_ToNote(t *testing.T) {
	req := NoteRequest{Title: "Groceries", Description: "Milk, eggs"}

	fresh := req.ToNote(0)
	assert.False(t, fresh.IsPersisted())
	assert.Equal(t, Note{Title: "Groceries", Description: "Milk, eggs"}, fresh)

	edited := req.ToNote(7)
	assert.True(t, edited.IsPersisted())
	assert.Equal(t, int64(7), edited.ID)
}
