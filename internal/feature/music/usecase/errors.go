package usecase

import "errors"

var (
	// ErrMusicNotFound is returned when a track does not exist or belongs to someone else.
	ErrMusicNotFound = errors.New("music not found")
	ErrAudioRequired = errors.New("audio file is required")
	ErrInvalidAudio  = errors.New("audio file must be an audio format")
	ErrInvalidCover  = errors.New("cover image must be an image")
)
