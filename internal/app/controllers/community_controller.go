package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/app/services"
	"github.com/yigit/edureach/internal/middleware"
	"github.com/yigit/edureach/internal/pkg/apperrors"
)

// CommunityController handles community pages
type CommunityController struct {
	communityService services.CommunityService
	logger           zerolog.Logger
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService, logger zerolog.Logger) *CommunityController {
	return &CommunityController{
		communityService: communityService,
		logger:           logger,
	}
}

// List handles GET /community
func (c *CommunityController) List(ctx *gin.Context) {
	var query dto.CommunityQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Format permintaan tidak valid."))
		return
	}

	view, err := c.communityService.List(ctx.Request.Context(), middleware.GetSession(ctx), query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, ""))
}

// Get handles GET /community/:id
func (c *CommunityController) Get(ctx *gin.Context) {
	view, err := c.communityService.Get(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, ""))
}

// Join handles POST /community/:id/join
func (c *CommunityController) Join(ctx *gin.Context) {
	view, err := c.communityService.Join(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, "Berhasil bergabung",
		dto.SuccessToast("Berhasil bergabung dengan komunitas.")))
}

// CreatePage handles GET /create-community
func (c *CommunityController) CreatePage(ctx *gin.Context) {
	locations, err := c.communityService.Locations(ctx.Request.Context(), middleware.GetSession(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CreateCommunityView{Locations: locations}, ""))
}

// Create handles POST /create-community as multipart with an optional "image" file.
func (c *CommunityController) Create(ctx *gin.Context) {
	var form dto.CommunityForm
	if err := middleware.Bind(ctx, &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	image, err := middleware.FormFile(ctx, "image")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	community, err := c.communityService.Create(ctx.Request.Context(), middleware.GetSession(ctx), form, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	next := "/community"
	if community != nil {
		next = "/community/" + community.ID
	}
	resp := dto.NewRedirectResponse(next, "Komunitas dibuat", dto.SuccessToast("Komunitas berhasil dibuat."))
	resp.Data = community
	ctx.JSON(http.StatusCreated, resp)
}
