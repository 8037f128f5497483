// Package devbackend is an in-memory stand-in for the EduReach REST API. It serves every
// endpoint the gateway consumes under /api, issues JWT bearer tokens, keeps uploaded images on
// disk and hosts a mock PDF summarizer.
package devbackend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/pkg/apperrors"
	"github.com/yigit/edureach/internal/pkg/auth"
	"github.com/yigit/edureach/internal/pkg/filestorage"
)

const claimsContextKey = "claims"

// Options configures a Server.
type Options struct {
	JWTSecret   string
	TokenTTL    time.Duration
	StoragePath string
	// SeedDemo adds demo locations, communities and accounts.
	SeedDemo bool
	Logger   zerolog.Logger
	Now      func() time.Time
}

// Server holds the dev backend state and its HTTP handlers.
type Server struct {
	store      *Store
	jwt        *auth.JWTService
	files      *filestorage.LocalStorage
	summarizer Summarizer
	logger     zerolog.Logger
}

// New creates a Server.
func New(opts Options) (*Server, error) {
	if opts.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}

	files, err := filestorage.NewLocalStorage(opts.StoragePath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		store: NewStore(opts.Now),
		jwt: auth.NewJWTService(auth.JWTConfig{
			SecretKey:      opts.JWTSecret,
			AccessTokenExp: opts.TokenTTL,
		}),
		files:  files,
		logger: opts.Logger,
	}

	if opts.SeedDemo {
		if err := Seed(s.store, opts.Logger); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}
	return s, nil
}

// Store exposes the state, mainly for tests.
func (s *Server) Store() *Store {
	return s.store
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Static("/"+filestorage.URLPrefix, s.files.BasePath())

	api := router.Group("/api")

	user := api.Group("/user")
	{
		user.POST("/login", s.login)
		user.POST("/register", s.register)
	}

	authed := api.Group("", s.requireToken())
	{
		authed.GET("/user", s.currentUser)
		authed.PUT("/user", s.updateUser)
		authed.PUT("/user/password", s.changePassword)
		authed.GET("/user/notification/user", s.notifications)
		authed.PUT("/user/update-notification/:id", s.updateNotification)

		authed.GET("/location", s.locations)

		authed.GET("/community", s.communities)
		authed.POST("/community", s.createCommunity)
		authed.GET("/community/:id", s.community)
		authed.GET("/community/user/:userId", s.userCommunities)
		authed.POST("/community/add-member", s.addMember)

		authed.GET("/schedule", s.schedules)
		authed.POST("/schedule", s.createSchedule)
		authed.DELETE("/schedule/:id", s.deleteSchedule)

		authed.POST("/summarize/upload", s.summarize)
		authed.GET("/summarize/user/:userId", s.userSummaries)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

// requireToken validates the bearer token and stores its claims.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			s.writeError(c, apperrors.NewCustomError(apperrors.ErrUnauthorized, "Token tidak ditemukan."))
			return
		}

		claims, err := s.jwt.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				s.writeError(c, apperrors.NewCustomError(apperrors.ErrTokenExpired, "Token kedaluwarsa."))
				return
			}
			s.writeError(c, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Token tidak valid."))
			return
		}
		if _, ok := s.store.User(claims.UserID); !ok {
			s.writeError(c, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Pengguna tidak ditemukan."))
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

func userIDFrom(c *gin.Context) string {
	return c.MustGet(claimsContextKey).(*auth.Claims).UserID
}

// errorBody is the flat error shape the gateway reads its message from.
type errorBody struct {
	Success bool          `json:"success"`
	Code    dto.ErrorCode `json:"code"`
	Message string        `json:"message"`
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, dto.ErrorCodeInternalServer
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrTokenInvalid):
		status, code = http.StatusUnauthorized, dto.ErrorCodeInvalidToken
	case errors.Is(err, apperrors.ErrTokenExpired):
		status, code = http.StatusUnauthorized, dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status, code = http.StatusForbidden, dto.ErrorCodeForbidden
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status, code = http.StatusNotFound, dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status, code = http.StatusConflict, dto.ErrorCodeResourceAlreadyExists
	case errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrValidationFailed):
		status, code = http.StatusBadRequest, dto.ErrorCodeBadRequest
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Dev backend request failed")
	}
	c.AbortWithStatusJSON(status, errorBody{Success: false, Code: code, Message: apperrors.UserMessage(err)})
}

func badRequest(message string) error {
	return apperrors.NewBadRequestError(message)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
