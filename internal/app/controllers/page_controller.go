package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/middleware"
)

// PageController serves the public pages.
type PageController struct{}

// NewPageController creates a new PageController
func NewPageController() *PageController {
	return &PageController{}
}

// LandingView is the landing and welcome page.
type LandingView struct {
	Page          string `json:"page"`
	Authenticated bool   `json:"authenticated"`
	Next          string `json:"next"`
}

func (p *PageController) Landing(ctx *gin.Context) {
	p.landing(ctx, "landing")
}

func (p *PageController) Welcome(ctx *gin.Context) {
	p.landing(ctx, "welcome")
}

func (p *PageController) landing(ctx *gin.Context, page string) {
	authenticated := middleware.GetGate(ctx).IsAuthenticated(ctx.Request.Context())
	next := "/auth/login"
	if authenticated {
		next = "/home"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(LandingView{Page: page, Authenticated: authenticated, Next: next}, ""))
}

// Ping is the health check.
func (p *PageController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}
