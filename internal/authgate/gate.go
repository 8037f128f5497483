// Package authgate decides, per page, whether a visitor may see it.
//
// The gate is optimistic: a visitor counts as authenticated when a token is present in the
// session. Whether the token is still valid is for the backend to say on the next call. The gate
// only drives the redirect to the login page; it is not a security boundary.
package authgate

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/auth/login"

// DefaultAllowList holds the pages reachable without a token.
var DefaultAllowList = []string{"/", "/auth/login", "/auth/register", "/pages/welcome"}

// State of the gate for one navigation.
type State int

const (
	// Unknown is the state before the session has been read.
	Unknown State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// SessionReader is the part of the session store the gate needs.
type SessionReader interface {
	Token(ctx context.Context) string
	ClearUser(ctx context.Context) error
}

// Navigator performs a client-side redirect.
type Navigator interface {
	Redirect(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Redirect calls f(path).
func (f NavigatorFunc) Redirect(path string) { f(path) }

// Decision is the outcome of one evaluation. RedirectTo is empty when the page may render.
type Decision struct {
	State      State
	RedirectTo string
}

// Allowed reports whether the page may render.
func (d Decision) Allowed() bool {
	return d.RedirectTo == ""
}

// Gate evaluates the session on every navigation.
type Gate struct {
	sessions  SessionReader
	navigator Navigator
	allowList []string
	logger    zerolog.Logger
}

// Option customizes a Gate.
type Option func(*Gate)

// WithAllowList replaces DefaultAllowList.
func WithAllowList(paths ...string) Option {
	return func(g *Gate) { g.allowList = paths }
}

// WithLogger sets the gate logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Gate) { g.logger = logger }
}

// New creates a Gate over the visitor's session.
func New(sessions SessionReader, navigator Navigator, opts ...Option) *Gate {
	g := &Gate{
		sessions:  sessions,
		navigator: navigator,
		allowList: DefaultAllowList,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// IsAuthenticated reports whether a token is present. No signature or expiry check is made.
func (g *Gate) IsAuthenticated(ctx context.Context) bool {
	return g.sessions.Token(ctx) != ""
}

// Check evaluates a navigation to path starting from Unknown. An unauthenticated visit to a
// path outside the allow-list triggers exactly one redirect to LoginPath.
func (g *Gate) Check(ctx context.Context, path string) Decision {
	state := Unknown
	if g.IsAuthenticated(ctx) {
		state = Authenticated
	} else {
		state = Unauthenticated
	}

	if state == Authenticated || IsPublic(path, g.allowList) {
		return Decision{State: state}
	}

	g.logger.Debug().Str("path", path).Msg("Unauthenticated visit, redirecting to login")
	g.navigator.Redirect(LoginPath)
	return Decision{State: state, RedirectTo: LoginPath}
}

// Logout wipes the session and redirects to the login page immediately.
func (g *Gate) Logout(ctx context.Context) Decision {
	if err := g.sessions.ClearUser(ctx); err != nil {
		g.logger.Warn().Err(err).Msg("Failed to clear session on logout")
	}
	g.navigator.Redirect(LoginPath)
	return Decision{State: Unauthenticated, RedirectTo: LoginPath}
}

// IsPublic reports whether path is on the allow-list. The root path matches exactly; every
// other entry matches itself and anything below it.
func IsPublic(path string, allowList []string) bool {
	if path == "" {
		path = "/"
	}
	for _, allowed := range allowList {
		if allowed == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if path == allowed || strings.HasPrefix(path, strings.TrimSuffix(allowed, "/")+"/") {
			return true
		}
	}
	return false
}
