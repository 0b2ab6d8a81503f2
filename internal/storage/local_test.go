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

func TestLocalStorePutDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)

	key := NewKey("pilgub/c1", "tps-1", "Foto C1.JPG")
	assert.True(t, strings.HasPrefix(key, "pilgub/c1/tps-1-"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	obj, err := store.Put(context.Background(), key, "image/jpeg", strings.NewReader("isi"), 3)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+key, obj.URL)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "isi", string(data))

	require.NoError(t, store.Delete(context.Background(), key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	// hapus dua kali tidak error
	assert.NoError(t, store.Delete(context.Background(), key))
}

func TestLocalStoreStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "up"), "/uploads")
	require.NoError(t, err)

	obj, err := store.Put(context.Background(), "../../escape.txt", "", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, "../../escape.txt", obj.Key)

	_, err = os.Stat(filepath.Join(dir, "up", "escape.txt"))
	assert.NoError(t, err)
}
