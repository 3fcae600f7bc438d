package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestValidKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"music/abc.mp3", true},
		{"avatars/a.png", true},
		{"", false},
		{"/etc/passwd", false},
		{"../secret", false},
		{"music/../../secret", false},
		{"music//a.mp3", false},
		{"music/./a.mp3", false},
		{`music\a.mp3`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidKey(tt.key), "key %q", tt.key)
	}
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(root, "media"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "avatars/a.png", strings.NewReader(string(pngHeader)), int64(len(pngHeader)), "image/png"))

	obj, err := s.Get(ctx, "avatars/a.png")
	require.NoError(t, err)
	defer obj.Body.Close()
	assert.Equal(t, int64(len(pngHeader)), obj.Size)
	assert.Equal(t, "image/png", obj.ContentType)
	b, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, b, "body is readable from the start after detection")

	entries, err := os.ReadDir(filepath.Join(root, "media", "avatars"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")

	require.NoError(t, s.Remove(ctx, "avatars/a.png"))
	_, err = s.Get(ctx, "avatars/a.png")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Remove(ctx, "avatars/a.png"), "removing twice is fine")
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	err = s.Put(ctx, "../outside.txt", strings.NewReader("x"), 1, "text/plain")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = s.Get(ctx, "../outside.txt")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, s.Remove(ctx, "/abs"), ErrInvalidKey)
}

func TestLocalStorage_DirectoryIsNotAnObject(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "music/a.mp3", strings.NewReader("x"), 1, "audio/mpeg"))

	_, err = s.Get(ctx, "music")
	assert.ErrorIs(t, err, ErrNotFound)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocalStorage_FailedPutLeavesNothing(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root)
	require.NoError(t, err)

	err = s.Put(context.Background(), "music/a.mp3", failingReader{}, 10, "audio/mpeg")
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "music"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
