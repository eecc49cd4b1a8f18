package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNote(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		note, err := NewNote(map[string]string{"Front": "Q", "Back": ""})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, note.ID)
		assert.False(t, note.UpdatedAt.IsZero())
	})

	t.Run("no fields", func(t *testing.T) {
		_, err := NewNote(map[string]string{})
		assert.ErrorIs(t, err, ErrNoteFieldsEmpty)
	})
}

func TestNoteSetField(t *testing.T) {
	note, err := NewNote(map[string]string{"Front": "Q", "Back": "old"})
	require.NoError(t, err)

	assert.False(t, note.SetField("Back", "old"), "unchanged value should not report a change")
	assert.True(t, note.SetField("Back", "new"))
	assert.Equal(t, "new", note.Field("Back"))
	assert.True(t, note.Has("Front"))
	assert.False(t, note.Has("Extra"))
}

func TestReviewStateValid(t *testing.T) {
	assert.True(t, ReviewStateQuestion.Valid())
	assert.True(t, ReviewStateAnswer.Valid())
	assert.False(t, ReviewState("editing").Valid())
}
