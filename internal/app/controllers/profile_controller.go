package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/app/services"
	"github.com/yigit/edureach/internal/middleware"
)

// ProfileController handles the profile page
type ProfileController struct {
	profileService services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{profileService: profileService, logger: logger}
}

// Get handles GET /profile
func (c *ProfileController) Get(ctx *gin.Context) {
	view, err := c.profileService.Get(ctx.Request.Context(), middleware.GetSession(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, ""))
}

// Update handles PUT /profile as multipart with an optional "image" file.
func (c *ProfileController) Update(ctx *gin.Context) {
	var form dto.ProfileForm
	if err := middleware.Bind(ctx, &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	image, err := middleware.FormFile(ctx, "image")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	view, err := c.profileService.Update(ctx.Request.Context(), middleware.GetSession(ctx), form, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, "Profil diperbarui", dto.SuccessToast("Profil berhasil diperbarui.")))
}

// ChangePassword handles PUT /profile/password
func (c *ProfileController) ChangePassword(ctx *gin.Context) {
	var form dto.PasswordForm
	if err := middleware.Bind(ctx, &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.profileService.ChangePassword(ctx.Request.Context(), middleware.GetSession(ctx), form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Password diperbarui", dto.SuccessToast("Password berhasil diubah.")))
}
