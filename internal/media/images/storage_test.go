package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	return storage
}

func TestNewStorage(t *testing.T) {
	t.Run("creates storage with valid path", func(t *testing.T) {
		tmpDir := t.TempDir()

		storage, err := NewStorage(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, storage)

		// Verify photos directory was created.
		photosPath := filepath.Join(tmpDir, "photos")
		info, err := os.Stat(photosPath)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("returns error for empty path", func(t *testing.T) {
		storage, err := NewStorage("")
		assert.Error(t, err)
		assert.Nil(t, storage)
		assert.Contains(t, err.Error(), "base path cannot be empty")
	})

	t.Run("creates nested directories if needed", func(t *testing.T) {
		tmpDir := t.TempDir()
		nestedPath := filepath.Join(tmpDir, "nested", "path")

		storage, err := NewStorage(nestedPath)
		require.NoError(t, err)
		require.NotNil(t, storage)

		photosPath := filepath.Join(nestedPath, "photos")
		info, err := os.Stat(photosPath)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestStorage_Save(t *testing.T) {
	t.Run("saves image data successfully", func(t *testing.T) {
		storage := setupTestStorage(t)
		testData := []byte("test image data")

		err := storage.Save("acct-123", testData)
		require.NoError(t, err)

		path := storage.Path("acct-123")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, testData, data)
	})

	t.Run("returns error for empty ID", func(t *testing.T) {
		storage := setupTestStorage(t)

		err := storage.Save("", []byte("test image data"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ID cannot be empty")
	})

	t.Run("returns error for empty image data", func(t *testing.T) {
		storage := setupTestStorage(t)

		err := storage.Save("acct-123", []byte{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "image data cannot be empty")
	})

	t.Run("overwrites existing image", func(t *testing.T) {
		storage := setupTestStorage(t)

		require.NoError(t, storage.Save("acct-123", []byte("first")))
		require.NoError(t, storage.Save("acct-123", []byte("second")))

		data, err := storage.Get("acct-123")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), data)
	})
}

func TestStorage_Get(t *testing.T) {
	t.Run("retrieves saved image", func(t *testing.T) {
		storage := setupTestStorage(t)
		testData := []byte("test image data")
		require.NoError(t, storage.Save("acct-123", testData))

		data, err := storage.Get("acct-123")
		require.NoError(t, err)
		assert.Equal(t, testData, data)
	})

	t.Run("returns error for missing image", func(t *testing.T) {
		storage := setupTestStorage(t)

		_, err := storage.Get("acct-missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "image not found")
	})

	t.Run("returns error for empty ID", func(t *testing.T) {
		storage := setupTestStorage(t)

		_, err := storage.Get("")
		assert.Error(t, err)
	})
}

func TestStorage_Exists(t *testing.T) {
	storage := setupTestStorage(t)

	assert.False(t, storage.Exists("acct-123"))
	assert.False(t, storage.Exists(""))

	require.NoError(t, storage.Save("acct-123", []byte("data")))
	assert.True(t, storage.Exists("acct-123"))
}

func TestStorage_Delete(t *testing.T) {
	t.Run("deletes existing image", func(t *testing.T) {
		storage := setupTestStorage(t)
		require.NoError(t, storage.Save("acct-123", []byte("data")))

		err := storage.Delete("acct-123")
		require.NoError(t, err)
		assert.False(t, storage.Exists("acct-123"))
	})

	t.Run("deleting missing image is not an error", func(t *testing.T) {
		storage := setupTestStorage(t)

		err := storage.Delete("acct-never-existed")
		assert.NoError(t, err)
	})
}

func TestStorage_Hash(t *testing.T) {
	storage := setupTestStorage(t)
	require.NoError(t, storage.Save("acct-123", []byte("test image data")))

	hash1, err := storage.Hash("acct-123")
	require.NoError(t, err)
	assert.Len(t, hash1, 64) // hex-encoded SHA256

	// Hash is stable
	hash2, err := storage.Hash("acct-123")
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2)

	// Hash changes with content
	require.NoError(t, storage.Save("acct-123", []byte("different data")))
	hash3, err := storage.Hash("acct-123")
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash3)
}
