// Package dto defines the form payloads of the account pages.
package dto

// LoginReq is the body of POST /login.
type LoginReq struct {
	Username string `form:"username" binding:"required,max=150"`
	Password string `form:"password" binding:"required"`
}

// RegisterReq is the body of POST /register.
type RegisterReq struct {
	Username  string `form:"username" binding:"required,max=150"`
	Email     string `form:"email" binding:"required,email,max=254"`
	Password1 string `form:"password1" binding:"required,pwd"`
	Password2 string `form:"password2" binding:"required,eqfield=Password1"`
}
