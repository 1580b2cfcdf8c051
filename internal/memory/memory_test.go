package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage", "memories.json")
	store := NewStore(path)

	assert.Empty(t, store.List())

	require.NoError(t, store.Add("likes jazz"))
	require.NoError(t, store.Add("daughter's recital on Friday"))

	// A fresh store on the same path sees the persisted notes
	reopened := NewStore(path)
	assert.Equal(t, []string{"likes jazz", "daughter's recital on Friday"}, reopened.List())

	require.NoError(t, reopened.Clear())
	assert.Empty(t, NewStore(path).List())
}

func TestStoreRejectsEmptyNote(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "memories.json"))
	assert.Error(t, store.Add("   "))
}

func TestStoreCorruptFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memories.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(path)
	assert.Empty(t, store.List())

	// Adding still works and replaces the corrupt file
	require.NoError(t, store.Add("fresh start"))
	assert.Equal(t, []string{"fresh start"}, store.List())
}

func TestShouldCapture(t *testing.T) {
	assert.True(t, ShouldCapture("Please remember that I hate coffee"))
	assert.True(t, ShouldCapture("Note that Maya's birthday is in June"))
	assert.True(t, ShouldCapture("REMEMBER THAT the hatch sticks"))
	assert.False(t, ShouldCapture("What should I make for dinner?"))
	assert.False(t, ShouldCapture("a remarkable note"))
}
