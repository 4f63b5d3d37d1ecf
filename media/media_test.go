package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("a1", "photo_lock", "Door.JPG", "image/jpeg")
	assert.True(t, strings.HasPrefix(key, "apartments/a1/photo_lock/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, ObjectKey("a1", "photo_lock", "Door.JPG", "image/jpeg"))
}

func TestLocalStoragePutDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Put(ctx, "apartments/a1/photo_lock/x.jpg", strings.NewReader("data"), 4, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/apartments/a1/photo_lock/x.jpg", url)

	b, err := os.ReadFile(filepath.Join(dir, "apartments", "a1", "photo_lock", "x.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))

	require.NoError(t, s.Delete(ctx, "apartments/a1/photo_lock/x.jpg"))
	require.NoError(t, s.Delete(ctx, "apartments/a1/photo_lock/x.jpg"))
	_, err = os.Stat(filepath.Join(dir, "apartments", "a1", "photo_lock", "x.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageRejectsEscapes(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	_, err = s.Put(context.Background(), "../outside.txt", strings.NewReader("x"), 1, "text/plain")
	assert.Error(t, err)
	assert.Error(t, s.Delete(context.Background(), "../../etc/passwd"))
}

func TestDecodeDataURL(t *testing.T) {
	data, ct, err := DecodeDataURL("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, "image/png", ct)

	data, ct, err = DecodeDataURL("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, "application/octet-stream", ct)

	_, _, err = DecodeDataURL("data:image/png;base64,***")
	assert.Error(t, err)
}
