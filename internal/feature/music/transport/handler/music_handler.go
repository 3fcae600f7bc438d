// Package handler serves the music pages.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/music/domain/entity"
	"lifetrail/internal/feature/music/transport/http/dto"
	"lifetrail/internal/feature/music/usecase"
	"lifetrail/internal/platform/flash"
	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/platform/validation"
	"lifetrail/internal/shared/upload"
	"lifetrail/internal/web"
)

const musicPath = "/music/"

// MusicUsecase is what the music pages need from the usecase layer.
type MusicUsecase interface {
	Upload(ctx context.Context, userID uint, in usecase.UploadInput) (*entity.Music, error)
	List(ctx context.Context, userID uint) ([]entity.Music, error)
	Delete(ctx context.Context, userID, id uint) error
}

// MusicHandler handles /music/ requests.
type MusicHandler struct {
	music MusicUsecase
	flash *flash.Store
}

// NewMusicHandler creates a new MusicHandler.
func NewMusicHandler(music MusicUsecase, flashes *flash.Store) *MusicHandler {
	return &MusicHandler{music: music, flash: flashes}
}

// List renders the user's library and the upload form.
func (h *MusicHandler) List(c *gin.Context) {
	tracks, err := h.music.List(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		logrus.WithError(err).Error("failed to list music")
		web.ServerError(c)
		return
	}
	c.HTML(http.StatusOK, "music.html", web.View(c, "music", h.flash.Pop(c), gin.H{
		"Musics": tracks,
	}))
}

// Upload handles the multipart upload form.
func (h *MusicHandler) Upload(c *gin.Context) {
	var req dto.UploadMusicReq
	if err := c.ShouldBind(&req); err != nil {
		h.flash.Add(c, flash.Error, "Could not upload: "+validation.Message(err))
		c.Redirect(http.StatusFound, musicPath)
		return
	}

	audio, closeAudio, err := upload.FromForm(c, "audio_file")
	defer closeAudio()
	if err != nil {
		h.flash.Add(c, flash.Error, "Could not read the audio file.")
		c.Redirect(http.StatusFound, musicPath)
		return
	}
	cover, closeCover, err := upload.FromForm(c, "cover_image")
	defer closeCover()
	if err != nil {
		h.flash.Add(c, flash.Error, "Could not read the cover image.")
		c.Redirect(http.StatusFound, musicPath)
		return
	}

	m, err := h.music.Upload(c.Request.Context(), jwtmw.UserID(c), usecase.UploadInput{
		Title:  req.Title,
		Artist: req.Artist,
		Audio:  audio,
		Cover:  cover,
	})
	switch {
	case err == nil:
		h.flash.Add(c, flash.Success, "Uploaded \""+m.Title+"\".")
	case errors.Is(err, usecase.ErrAudioRequired):
		h.flash.Add(c, flash.Error, "Please choose an audio file.")
	case errors.Is(err, usecase.ErrInvalidAudio):
		h.flash.Add(c, flash.Error, "That file does not look like audio.")
	case errors.Is(err, usecase.ErrInvalidCover):
		h.flash.Add(c, flash.Error, "The cover must be a PNG, JPEG, GIF or WebP image.")
	case errors.Is(err, entity.ErrTitleRequired), errors.Is(err, entity.ErrTitleTooLong), errors.Is(err, entity.ErrArtistTooLong):
		h.flash.Add(c, flash.Error, "Could not upload: "+err.Error()+".")
	default:
		h.flash.Add(c, flash.Error, "Upload failed. Please try again.")
	}
	c.Redirect(http.StatusFound, musicPath)
}

// Delete removes an owned track; anything else is a 404.
func (h *MusicHandler) Delete(c *gin.Context) {
	id, ok := web.ParamID(c, "id")
	if !ok {
		web.NotFound(c)
		return
	}
	err := h.music.Delete(c.Request.Context(), jwtmw.UserID(c), id)
	switch {
	case errors.Is(err, usecase.ErrMusicNotFound):
		web.NotFound(c)
		return
	case err != nil:
		logrus.WithError(err).WithField("music_id", id).Error("failed to delete music")
		h.flash.Add(c, flash.Error, "Could not delete. Please try again.")
	default:
		h.flash.Add(c, flash.Success, "Deleted.")
	}
	c.Redirect(http.StatusFound, musicPath)
}
