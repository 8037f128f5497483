package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/app/services"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/middleware"
)

// SummarizerController handles the PDF summarizer page
type SummarizerController struct {
	summarizerService services.SummarizerService
	logger            zerolog.Logger
}

// NewSummarizerController creates a new SummarizerController
func NewSummarizerController(summarizerService services.SummarizerService, logger zerolog.Logger) *SummarizerController {
	return &SummarizerController{summarizerService: summarizerService, logger: logger}
}

// Page handles GET /summarizer
func (c *SummarizerController) Page(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.summarizerService.Languages(), ""))
}

// Summarize handles POST /summarizer as multipart with a "file" part.
func (c *SummarizerController) Summarize(ctx *gin.Context) {
	var form dto.SummarizeForm
	if err := middleware.Bind(ctx, &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	file, err := middleware.FormFile(ctx, "file")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if file == nil {
		file = &backend.File{}
	}

	summary, err := c.summarizerService.Summarize(ctx.Request.Context(), middleware.GetSession(ctx), form, *file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var view interface{}
	if summary != nil {
		view = dto.SummaryResultView{Summary: *summary}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, "Ringkasan selesai", dto.SuccessToast("Ringkasan berhasil dibuat.")))
}
