package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "sub", "credential"))
}

func TestFileStore_SaveLoadClear(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load()
	require.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, s.Save("tok-1"))

	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-1", got)

	// saving again replaces the credential
	require.NoError(t, s.Save("tok-2"))
	got, err = s.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-2", got)

	require.NoError(t, s.Clear())
	_, err = s.Load()
	require.ErrorIs(t, err, ErrNoCredential)
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
}

func TestFileStore_FilePermissions(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("secret"))

	info, err := os.Stat(s.path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_TrimsWhitespace(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0o700))
	require.NoError(t, os.WriteFile(s.path, []byte("tok\n"), 0o600))

	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "tok", got)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Load()
	require.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, s.Save("tok"))
	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "tok", got)

	require.NoError(t, s.Clear())
	_, err = s.Load()
	require.ErrorIs(t, err, ErrNoCredential)
}
