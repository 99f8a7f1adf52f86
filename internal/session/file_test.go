package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "state.json")

	fs, err := NewFileStorage(path)
	require.NoError(t, err)

	_, err = fs.Get("token")
	require.ErrorIs(t, err, ErrNoValue)

	require.NoError(t, fs.Set("token", "abc"))
	require.NoError(t, fs.Set("auth", `{"token":"abc"}`))

	got, err := fs.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	// A fresh instance over the same path sees the persisted values.
	fs2, err := NewFileStorage(path)
	require.NoError(t, err)
	got, err = fs2.Get("auth")
	require.NoError(t, err)
	assert.Equal(t, `{"token":"abc"}`, got)

	require.NoError(t, fs2.Delete("auth"))
	_, err = fs2.Get("auth")
	require.ErrorIs(t, err, ErrNoValue)

	// Deleting an absent key is a no-op.
	require.NoError(t, fs2.Delete("auth"))
}

func TestFileStorage_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	fs, err := NewFileStorage(path)
	require.NoError(t, err)

	_, err = fs.Get("token")
	assert.ErrorIs(t, err, ErrNoValue)
}

func TestFileStorage_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	fs, err := NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set("token", "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
