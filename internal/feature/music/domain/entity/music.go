// Package entity defines the domain entities for the music feature.
package entity

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrTitleTooLong  = errors.New("title must be at most 200 characters")
	ErrArtistTooLong = errors.New("artist must be at most 200 characters")
)

// MaxTextLength bounds Title and Artist, in characters.
const MaxTextLength = 200

// Music is an uploaded track. AudioFile and CoverImage are storage keys.
type Music struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"index;not null"`
	Title      string    `gorm:"size:200;not null"`
	Artist     string    `gorm:"size:200"`
	AudioFile  string    `gorm:"size:255;not null"`
	CoverImage string    `gorm:"size:255"`
	UploadedAt time.Time `gorm:"autoCreateTime;index"`
}

// Validate checks the text fields.
func (m *Music) Validate() error {
	title := strings.TrimSpace(m.Title)
	switch {
	case title == "":
		return ErrTitleRequired
	case utf8.RuneCountInString(title) > MaxTextLength:
		return ErrTitleTooLong
	case utf8.RuneCountInString(m.Artist) > MaxTextLength:
		return ErrArtistTooLong
	}
	return nil
}

// MediaKeys returns the storage keys referenced by m.
func (m *Music) MediaKeys() []string {
	keys := make([]string, 0, 2)
	if m.AudioFile != "" {
		keys = append(keys, m.AudioFile)
	}
	if m.CoverImage != "" {
		keys = append(keys, m.CoverImage)
	}
	return keys
}
