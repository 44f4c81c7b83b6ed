package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAbsent(t *testing.T) {
	store := NewAt(t.TempDir())

	token, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestSaveThenLoad(t *testing.T) {
	store := NewAt(filepath.Join(t.TempDir(), "taskdeck"))

	require.NoError(t, store.Save("tok_789"))

	token, ok, err := store.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok_789", token)
}

func TestSavePermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "taskdeck")
	store := NewAt(dir)
	require.NoError(t, store.Save("tok_789"))

	info, err := os.Stat(filepath.Join(dir, "token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveEmptyToken(t *testing.T) {
	store := NewAt(t.TempDir())
	assert.Error(t, store.Save(""))
}

func TestClear(t *testing.T) {
	store := NewAt(filepath.Join(t.TempDir(), "taskdeck"))
	require.NoError(t, store.Save("tok_789"))

	require.NoError(t, store.Clear())

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing again is a no-op.
	assert.NoError(t, store.Clear())
}
