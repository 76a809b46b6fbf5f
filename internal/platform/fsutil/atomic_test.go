package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("creates file and parent dirs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "books.xml")

		require.NoError(t, WriteFileAtomic(path, []byte("<catalog/>"), 0o644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<catalog/>", string(got))
	})

	t.Run("overwrites existing content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "books.xml")
		require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

		require.NoError(t, WriteFileAtomic(path, []byte("new"), 0o644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "books.xml")

		require.NoError(t, WriteFileAtomic(path, []byte("a"), 0o644))
		require.NoError(t, WriteFileAtomic(path, []byte("b"), 0o644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "books.xml", entries[0].Name())
	})

	t.Run("applies permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "books.xml")

		require.NoError(t, WriteFileAtomic(path, []byte("x"), 0o600))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}
