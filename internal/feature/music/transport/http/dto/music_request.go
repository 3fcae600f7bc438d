// Package dto defines the form payloads of the music pages.
package dto

// UploadMusicReq holds the text fields of POST /music/upload/.
// The files are read separately from the multipart form.
type UploadMusicReq struct {
	Title  string `form:"title" binding:"required,max=200"`
	Artist string `form:"artist" binding:"max=200"`
}
