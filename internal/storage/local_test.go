package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/api/v1/files",
	})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	err := s.Save(ctx, "users/1/avatar_abc.jpg", strings.NewReader("image-bytes"), "image/jpeg")
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "users/1/avatar_abc.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Get(ctx, "users/1/avatar_abc.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, s.Delete(ctx, "users/1/avatar_abc.jpg"))

	exists, err = s.Exists(ctx, "users/1/avatar_abc.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s := newTestLocalStorage(t)
	assert.NoError(t, s.Delete(context.Background(), "users/42/nothing.png"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	url, err := s.GetURL(ctx, "users/1/photo.png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1/files/users/1/photo.png", url)
}
