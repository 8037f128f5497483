package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/app/services"
	"github.com/yigit/edureach/internal/middleware"
)

// NotificationController handles the notification page
type NotificationController struct {
	notificationService services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{notificationService: notificationService, logger: logger}
}

// List handles GET /notification
func (c *NotificationController) List(ctx *gin.Context) {
	view, err := c.notificationService.List(ctx.Request.Context(), middleware.GetSession(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, ""))
}

// Check handles POST /notification/:id/check
func (c *NotificationController) Check(ctx *gin.Context) {
	view, err := c.notificationService.Check(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, ""))
}
