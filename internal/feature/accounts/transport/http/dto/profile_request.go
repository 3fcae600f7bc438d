package dto

// ProfileReq holds the text fields of POST /profile. The avatar is read
// separately from the multipart form.
type ProfileReq struct {
	Username string `form:"username" binding:"required,max=150"`
	Email    string `form:"email" binding:"required,email,max=254"`
	Phone    string `form:"phone" binding:"omitempty,phone11"`
	Bio      string `form:"bio" binding:"max=2000"`
}
