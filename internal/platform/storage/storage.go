// Package storage keeps uploaded media files, on local disk or in MinIO.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	ErrNotFound   = errors.New("object not found")
	ErrInvalidKey = errors.New("invalid object key")
)

// Object is a stored file opened for reading. Body must be closed.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// Storage stores objects under slash-separated keys such as "music/<uuid>.mp3".
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)
	Remove(ctx context.Context, key string) error
}

// ValidKey reports whether key is a clean relative path that stays inside
// the storage root.
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	if path.Clean(key) != key {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." {
			return false
		}
	}
	return true
}
