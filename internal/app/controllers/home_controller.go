package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/app/services"
	"github.com/yigit/edureach/internal/middleware"
)

// HomeController serves the home page.
type HomeController struct {
	homeService services.HomeService
	logger      zerolog.Logger
}

// NewHomeController creates a new HomeController
func NewHomeController(homeService services.HomeService, logger zerolog.Logger) *HomeController {
	return &HomeController{homeService: homeService, logger: logger}
}

// Home returns the home page plus one toast per notification not shown before.
func (c *HomeController) Home(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	sess := middleware.GetSession(ctx)

	view, toasts, err := c.homeService.Load(reqCtx, sess)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	notificationToasts, err := c.homeService.ToastNotifications(reqCtx, sess)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to load notification toasts")
	}
	toasts = append(notificationToasts, toasts...)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, "", toasts...))
}
