package dto

import "github.com/yigit/edureach/internal/app/models"

// LoginForm is submitted to POST /auth/login.
type LoginForm struct {
	Email    string `json:"email" form:"email" validate:"required,dotcom_email" label:"Email"`
	Password string `json:"password" form:"password" validate:"required,min=6" label:"Password"`
}

// RegisterForm is submitted to POST /auth/register.
type RegisterForm struct {
	FirstName       string `json:"firstName" form:"firstName" validate:"notblank" label:"Nama depan"`
	LastName        string `json:"lastName" form:"lastName" label:"Nama belakang"`
	Email           string `json:"email" form:"email" validate:"required,dotcom_email" label:"Email"`
	Password        string `json:"password" form:"password" validate:"required,min=8,max=72" label:"Password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"eqfield=Password" label:"Konfirmasi password"`
	DateOfBirth     string `json:"dateOfBirth" form:"dateOfBirth" validate:"date" label:"Tanggal lahir"`
	IsVolunteer     bool   `json:"isVolunteer" form:"isVolunteer"`
}

// LoginView is returned after a successful login.
type LoginView struct {
	User *models.User `json:"user"`
}

// AuthPageView describes the public auth pages.
type AuthPageView struct {
	Page          string `json:"page"`
	Authenticated bool   `json:"authenticated"`
}
