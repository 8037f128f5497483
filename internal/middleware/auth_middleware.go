package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/authgate"
)

const gateContextKey = "authgate"

// ginNavigator redirects with 302 Found and aborts the chain.
type ginNavigator struct {
	c *gin.Context
}

func (n ginNavigator) Redirect(path string) {
	n.c.Header("Location", path)
	n.c.AbortWithStatusJSON(http.StatusFound, dto.APIResponse{
		Success:    false,
		Message:    "Silakan masuk terlebih dahulu.",
		RedirectTo: path,
		Timestamp:  time.Now(),
	})
}

// AuthMiddleware runs the auth gate on every navigation.
type AuthMiddleware struct {
	allowList []string
	logger    zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware. A nil allowList uses
// authgate.DefaultAllowList.
func NewAuthMiddleware(allowList []string, logger zerolog.Logger) *AuthMiddleware {
	if allowList == nil {
		allowList = authgate.DefaultAllowList
	}
	return &AuthMiddleware{allowList: allowList, logger: logger}
}

// Gate evaluates the request path against the visitor's session. Requests outside the
// allow-list without a token are redirected to the login page.
func (m *AuthMiddleware) Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		gate := authgate.New(GetSession(c), ginNavigator{c: c},
			authgate.WithAllowList(m.allowList...),
			authgate.WithLogger(m.logger),
		)
		c.Set(gateContextKey, gate)

		if d := gate.Check(c.Request.Context(), c.Request.URL.Path); !d.Allowed() {
			return
		}
		c.Next()
	}
}

// GetGate returns the gate bound by Gate.
func GetGate(c *gin.Context) *authgate.Gate {
	return c.MustGet(gateContextKey).(*authgate.Gate)
}
