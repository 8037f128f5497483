package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edureach/internal/app/controllers"
	"github.com/yigit/edureach/internal/middleware"
	"github.com/yigit/edureach/internal/pkg/apperrors"
)

// Controllers groups every page controller the router mounts.
type Controllers struct {
	Page         *controllers.PageController
	Auth         *controllers.AuthController
	Home         *controllers.HomeController
	Community    *controllers.CommunityController
	Schedule     *controllers.ScheduleController
	Notification *controllers.NotificationController
	Profile      *controllers.ProfileController
	Summarizer   *controllers.SummarizerController
}

// Middlewares groups the request pipeline shared by all gateway pages.
type Middlewares struct {
	Session     gin.HandlerFunc
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
}

// SetupRouter configures all gateway routes. Every page runs behind the session and the
// auth gate; /ping stays outside both.
func SetupRouter(router *gin.Engine, c Controllers, m Middlewares) {
	router.GET("/ping", c.Page.Ping)

	pages := router.Group("", m.Session, m.Auth.Gate())

	// --- Public pages ---
	pages.GET("/", c.Page.Landing)
	pages.GET("/pages/welcome", c.Page.Welcome)

	auth := pages.Group("/auth")
	{
		auth.GET("/login", c.Auth.LoginPage)
		auth.GET("/register", c.Auth.RegisterPage)
		auth.POST("/login", m.RateLimiter.Middleware(), c.Auth.Login)
		auth.POST("/register", m.RateLimiter.Middleware(), c.Auth.Register)
		auth.POST("/logout", c.Auth.Logout)
	}

	// --- Pages that need a session token ---
	pages.GET("/home", c.Home.Home)

	community := pages.Group("/community")
	{
		community.GET("", c.Community.List)
		community.GET("/:id", c.Community.Get)
		community.POST("/:id/join", c.Community.Join)

		community.GET("/:id/schedules", c.Schedule.List)
		community.POST("/:id/schedules", c.Schedule.Create)
		community.DELETE("/:id/schedules/:scheduleId", c.Schedule.Delete)
	}

	pages.GET("/create-community", c.Community.CreatePage)
	pages.POST("/create-community", c.Community.Create)

	profile := pages.Group("/profile")
	{
		profile.GET("", c.Profile.Get)
		profile.PUT("", c.Profile.Update)
		profile.PUT("/password", c.Profile.ChangePassword)
	}

	notification := pages.Group("/notification")
	{
		notification.GET("", c.Notification.List)
		notification.POST("/:id/check", c.Notification.Check)
	}

	summarizer := pages.Group("/summarizer")
	{
		summarizer.GET("", c.Summarizer.Page)
		summarizer.POST("", c.Summarizer.Summarize)
	}

	// Unknown paths are gated too, so a visitor without a token lands on the login page
	// rather than a 404.
	router.NoRoute(m.Session, m.Auth.Gate(), func(ctx *gin.Context) {
		middleware.HandleAPIError(ctx, apperrors.NewResourceNotFoundError("Halaman tidak ditemukan."))
	})
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "message": "Metode tidak diizinkan."})
	})
}
