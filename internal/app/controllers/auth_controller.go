// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/app/services"
	"github.com/yigit/edureach/internal/middleware"
)

// AuthController handles login, registration and logout
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// LoginPage describes the login page.
func (c *AuthController) LoginPage(ctx *gin.Context) {
	c.authPage(ctx, "login")
}

// RegisterPage describes the registration page.
func (c *AuthController) RegisterPage(ctx *gin.Context) {
	c.authPage(ctx, "register")
}

func (c *AuthController) authPage(ctx *gin.Context, page string) {
	authenticated := middleware.GetGate(ctx).IsAuthenticated(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AuthPageView{Page: page, Authenticated: authenticated}, ""))
}

// Login validates the credentials, stores the session and sends the visitor home.
func (c *AuthController) Login(ctx *gin.Context) {
	var form dto.LoginForm
	if err := middleware.Bind(ctx, &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.authService.Login(ctx.Request.Context(), middleware.GetSession(ctx), form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewRedirectResponse("/home", "Login berhasil", dto.SuccessToast("Login berhasil"))
	resp.Data = dto.LoginView{User: user}
	ctx.JSON(http.StatusOK, resp)
}

// Register creates the account and sends the visitor to the login page.
func (c *AuthController) Register(ctx *gin.Context) {
	var form dto.RegisterForm
	if err := middleware.Bind(ctx, &form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.authService.Register(ctx.Request.Context(), form); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewRedirectResponse("/auth/login", "Registrasi berhasil",
		dto.SuccessToast("Registrasi berhasil, silakan masuk.")))
}

// Logout wipes the session; the gate answers with the redirect to the login page.
func (c *AuthController) Logout(ctx *gin.Context) {
	c.authService.Logout(ctx.Request.Context(), middleware.GetGate(ctx))
}
