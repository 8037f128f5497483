package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/app/services"
	"github.com/yigit/edureach/internal/middleware"
)

// ScheduleController handles a community's schedules
type ScheduleController struct {
	scheduleService services.ScheduleService
	logger          zerolog.Logger
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService services.ScheduleService, logger zerolog.Logger) *ScheduleController {
	return &ScheduleController{scheduleService: scheduleService, logger: logger}
}

// List handles GET /community/:id/schedules
func (c *ScheduleController) List(ctx *gin.Context) {
	view, err := c.scheduleService.List(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, ""))
}

// Create handles POST /community/:id/schedules
func (c *ScheduleController) Create(ctx *gin.Context) {
	var form dto.ScheduleForm
	if err := middleware.Bind(ctx, &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	view, err := c.scheduleService.Create(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"), form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(view, "Jadwal dibuat", dto.SuccessToast("Jadwal berhasil ditambahkan.")))
}

// Delete handles DELETE /community/:id/schedules/:scheduleId
func (c *ScheduleController) Delete(ctx *gin.Context) {
	view, err := c.scheduleService.Delete(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"), ctx.Param("scheduleId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, "Jadwal dihapus", dto.SuccessToast("Jadwal berhasil dihapus.")))
}
