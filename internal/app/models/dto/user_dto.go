package dto

import "github.com/yigit/edureach/internal/app/models"

// ProfileForm is submitted to PUT /profile as multipart. The optional image is read
// separately from the "image" file field.
type ProfileForm struct {
	FullName    string `json:"fullName" form:"fullName" validate:"notblank" label:"Nama"`
	DateOfBirth string `json:"dateOfBirth" form:"dateOfBirth" validate:"date" label:"Tanggal lahir"`
	Email       string `json:"email" form:"email" validate:"required,dotcom_email" label:"Email"`
}

// PasswordForm is submitted to PUT /profile/password.
type PasswordForm struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" validate:"required,min=8" label:"Password saat ini"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"required,min=8,max=72" label:"Password baru"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"eqfield=NewPassword" label:"Konfirmasi password"`
}

// ProfileView is the profile page.
type ProfileView struct {
	User           models.User `json:"user"`
	AvatarInitials string      `json:"avatarInitials"`
	ImageURL       string      `json:"imageUrl"`
}
