// Package upload carries user-submitted files from the transport layer to usecases.
package upload

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sniffLen is how many leading bytes are inspected to detect the content type.
const sniffLen = 3072

// File is an uploaded file whose content has not been persisted yet.
type File struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// FromForm opens the multipart file named field.
// It returns (nil, no-op, nil) when the field is absent or empty.
// The returned close function must be called once the content is consumed.
func FromForm(c *gin.Context, field string) (*File, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	return open(fh)
}

func open(fh *multipart.FileHeader) (*File, func(), error) {
	if fh.Size == 0 {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &File{Filename: fh.Filename, Size: fh.Size, Content: f}, func() { _ = f.Close() }, nil
}

// Sniff detects the MIME type from the leading bytes of f.Content.
// The consumed bytes are stitched back so f.Content still yields the whole file.
func Sniff(f *File) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	head = head[:n]
	f.Content = io.MultiReader(bytes.NewReader(head), f.Content)
	return mimetype.Detect(head).String(), nil
}

// IsAudio reports whether a sniffed MIME type is an audio format.
func IsAudio(contentType string) bool {
	return strings.HasPrefix(contentType, "audio/") || contentType == "application/ogg"
}

// rasterTypes are the image formats accepted for avatars and covers.
// Vector formats such as SVG can carry script and are rejected.
var rasterTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// IsImage reports whether a sniffed MIME type is an accepted raster image.
func IsImage(contentType string) bool {
	return rasterTypes[contentType]
}

// Inline reports whether stored content of this type may be rendered by the
// browser. Everything else is served as a download.
func Inline(contentType string) bool {
	return IsImage(contentType) || IsAudio(contentType)
}

// Key builds a unique storage key under prefix, keeping the original extension.
func Key(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return prefix + "/" + uuid.NewString() + ext
}
