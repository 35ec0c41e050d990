package storage

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAferoStore_Unit(t *testing.T) {
	// An in-memory filesystem: no disk I/O is performed.
	memFs := afero.NewMemMapFs()
	store := NewAferoStore(afero.NewBasePathFs(memFs, "/out"))
	ctx := context.Background()

	filePath := "assets/css/home.css"
	fileContent := "body { margin: 0; }"

	t.Run("Save", func(t *testing.T) {
		bytesWritten, err := store.Save(ctx, filePath, bytes.NewReader([]byte(fileContent)))

		require.NoError(t, err)
		assert.Equal(t, int64(len(fileContent)), bytesWritten)

		readBytes, err := afero.ReadFile(memFs, "/out/"+filePath)
		require.NoError(t, err)
		assert.Equal(t, fileContent, string(readBytes))

		exists, err := afero.Exists(memFs, "/out/"+filePath+".tmp")
		require.NoError(t, err)
		assert.False(t, exists, "temporary file should be renamed away")
	})

	t.Run("Save overwrites", func(t *testing.T) {
		_, err := store.Save(ctx, filePath, bytes.NewReader([]byte("short")))
		require.NoError(t, err)

		readBytes, err := afero.ReadFile(memFs, "/out/"+filePath)
		require.NoError(t, err)
		assert.Equal(t, "short", string(readBytes))
	})

	t.Run("Open", func(t *testing.T) {
		file, err := store.Open(ctx, filePath)
		require.NoError(t, err)
		defer file.Close()

		readBytes, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "short", string(readBytes))
	})

	t.Run("List", func(t *testing.T) {
		_, err := store.Save(ctx, "index.html", bytes.NewReader([]byte("<html></html>")))
		require.NoError(t, err)

		files, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"assets/css/home.css", "index.html"}, files)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, filePath))

		exists, err := afero.Exists(memFs, "/out/"+filePath)
		require.NoError(t, err)
		assert.False(t, exists, "file should not exist after deleting")
	})

	t.Run("Open non-existent file", func(t *testing.T) {
		_, err := store.Open(ctx, "path/to/nothing.txt")
		assert.Error(t, err, "opening a non-existent file should return an error")
	})
}

func TestAferoStore_SaveHonoursCancelledContext(t *testing.T) {
	store := NewAferoStore(afero.NewMemMapFs())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Save(ctx, "index.html", bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDirStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dist")
	store, err := NewDirStore(dir)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "index.html", bytes.NewReader([]byte("ok")))
	require.NoError(t, err)

	files, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html"}, files)
}

func TestNewDirStore_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	store, err := NewDirStore(".")
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "page.pdf", bytes.NewReader([]byte("%PDF")))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "page.pdf"))
}
