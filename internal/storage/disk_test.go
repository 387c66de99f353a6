package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDisk(t *testing.T) (*DiskStorage, string, string) {
	t.Helper()
	root := t.TempDir()
	tmp := filepath.Join(root, "tmp")
	uploads := filepath.Join(root, "uploads")
	store, err := NewDiskStorage(tmp, uploads)
	require.NoError(t, err)
	return store, tmp, uploads
}

func TestDiskSaveMovesIntoUploads(t *testing.T) {
	store, tmp, uploads := newDisk(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "incoming"), []byte("receipt"), 0o644))

	stored, err := store.Save(context.Background(), "incoming", "nota fiscal.pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(stored, "-nota fiscal.pdf"))
	assert.Len(t, strings.SplitN(stored, "-", 2)[0], 20)
	assert.NoFileExists(t, filepath.Join(tmp, "incoming"))

	content, err := os.ReadFile(filepath.Join(uploads, stored))
	require.NoError(t, err)
	assert.Equal(t, "receipt", string(content))
}

func TestDiskSaveGeneratesDistinctNames(t *testing.T) {
	store, tmp, _ := newDisk(t)
	names := map[string]bool{}
	for _, temp := range []string{"a", "b"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmp, temp), []byte(temp), 0o644))
		stored, err := store.Save(context.Background(), temp, "same.png")
		require.NoError(t, err)
		names[stored] = true
	}
	assert.Len(t, names, 2)
}

func TestDiskDelete(t *testing.T) {
	store, tmp, uploads := newDisk(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "t1"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "u1"), nil, 0o644))

	require.NoError(t, store.Delete(context.Background(), "t1", LocationTmp))
	require.NoError(t, store.Delete(context.Background(), "u1", LocationUpload))
	assert.NoFileExists(t, filepath.Join(tmp, "t1"))
	assert.NoFileExists(t, filepath.Join(uploads, "u1"))

	assert.NoError(t, store.Delete(context.Background(), "missing", LocationTmp))
	assert.Error(t, store.Delete(context.Background(), "x", Location("elsewhere")))
}

func TestDiskRejectsTraversal(t *testing.T) {
	store, _, _ := newDisk(t)
	for _, name := range []string{"", "..", "../etc/passwd", "a/b"} {
		assert.ErrorIs(t, store.Delete(context.Background(), name, LocationTmp), ErrInvalidName, name)
		_, err := store.Save(context.Background(), name, "x.png")
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "evil.png", SanitizeFilename(`C:\temp\evil.png`))
	assert.Equal(t, "file", SanitizeFilename(".."))
	assert.Equal(t, "file", SanitizeFilename(""))
	assert.Equal(t, "ab.png", SanitizeFilename("a\x00b.png"))
	assert.Equal(t, "env", SanitizeFilename(".env"))
}
