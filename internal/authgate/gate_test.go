package authgate

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/edureach/internal/session"
)

type recordingNavigator struct {
	redirects []string
}

func (n *recordingNavigator) Redirect(path string) {
	n.redirects = append(n.redirects, path)
}

func newGate(t *testing.T) (*Gate, *session.Store, *recordingNavigator) {
	t.Helper()
	store := session.NewStore(session.NewMemoryStorage(), "tab", zerolog.Nop())
	nav := &recordingNavigator{}
	return New(store, nav), store, nav
}

func TestNoTokenRedirectsProtectedPathOnce(t *testing.T) {
	gate, _, nav := newGate(t)
	ctx := context.Background()

	assert.False(t, gate.IsAuthenticated(ctx))

	for _, path := range []string{"/home", "/community/42", "/profile", "/summarizer", "/auth/logout"} {
		nav.redirects = nil
		d := gate.Check(ctx, path)

		assert.Equal(t, Unauthenticated, d.State, path)
		assert.False(t, d.Allowed(), path)
		assert.Equal(t, []string{LoginPath}, nav.redirects, path)
	}
}

func TestNoTokenAllowsPublicPaths(t *testing.T) {
	gate, _, nav := newGate(t)
	ctx := context.Background()

	for _, path := range []string{"/", "/auth/login", "/auth/register", "/pages/welcome", "/auth/login/"} {
		d := gate.Check(ctx, path)
		assert.True(t, d.Allowed(), path)
		assert.Equal(t, Unauthenticated, d.State, path)
	}
	assert.Empty(t, nav.redirects)
}

func TestTokenPresenceIsEnough(t *testing.T) {
	gate, store, nav := newGate(t)
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "not-even-a-jwt"))

	d := gate.Check(ctx, "/home")

	assert.Equal(t, Authenticated, d.State)
	assert.True(t, d.Allowed())
	assert.Empty(t, nav.redirects)
}

func TestLogoutWipesAndRedirects(t *testing.T) {
	gate, store, nav := newGate(t)
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "tok"))

	d := gate.Logout(ctx)

	assert.Equal(t, Unauthenticated, d.State)
	assert.Equal(t, LoginPath, d.RedirectTo)
	assert.Equal(t, []string{LoginPath}, nav.redirects)
	assert.False(t, gate.IsAuthenticated(ctx))
	assert.False(t, gate.Check(ctx, "/home").Allowed())
}

func TestIsPublic(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"", true},
		{"/home", false},
		{"/auth/login", true},
		{"/auth/loginx", false},
		{"/auth/register/step-2", true},
		{"/pages/welcome", true},
		{"/pages", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPublic(tt.path, DefaultAllowList), tt.path)
	}
}

func TestCustomAllowList(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), "tab", zerolog.Nop())
	nav := &recordingNavigator{}
	gate := New(store, nav, WithAllowList("/ping"))

	assert.True(t, gate.Check(context.Background(), "/ping").Allowed())
	assert.False(t, gate.Check(context.Background(), "/").Allowed())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
}
