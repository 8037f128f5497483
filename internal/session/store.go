package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models"
)

// Storage keys. These are the only two items persisted per visitor.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Session is a snapshot of a visitor's stored state.
type Session struct {
	Token string
	User  *models.User
}

// Authenticated reports whether a token is present. Presence is all that is checked.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store binds a Storage to one visitor namespace.
//
// Read accessors never fail: storage errors and corrupt records are logged and read as
// "no session". Writes return their error so callers can decide whether to surface it.
type Store struct {
	storage   Storage
	namespace string
	logger    zerolog.Logger
}

// NewStore creates a Store for the given namespace.
func NewStore(storage Storage, namespace string, logger zerolog.Logger) *Store {
	return &Store{
		storage:   storage,
		namespace: namespace,
		logger:    logger.With().Str("session", namespace).Logger(),
	}
}

// Namespace returns the visitor namespace this store writes to.
func (s *Store) Namespace() string {
	return s.namespace
}

// Token returns the stored bearer token or "" when absent.
func (s *Store) Token(ctx context.Context) string {
	token, ok, err := s.storage.GetItem(ctx, s.namespace, TokenKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read session token")
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

// User returns the cached user record, or nil when absent or unreadable.
// A record that fails to decode is removed.
func (s *Store) User(ctx context.Context) *models.User {
	raw, ok, err := s.storage.GetItem(ctx, s.namespace, UserKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read cached user")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn().Err(err).Msg("Discarding corrupt cached user")
		if rmErr := s.storage.RemoveItem(ctx, s.namespace, UserKey); rmErr != nil {
			s.logger.Warn().Err(rmErr).Msg("Failed to remove corrupt cached user")
		}
		return nil
	}
	return &user
}

// Load reconstructs the session. The cached user is only returned together with a token.
func (s *Store) Load(ctx context.Context) Session {
	token := s.Token(ctx)
	if token == "" {
		return Session{}
	}
	return Session{Token: token, User: s.User(ctx)}
}

// SetToken stores the bearer token issued at login. An empty token removes the key.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.remove(ctx, TokenKey)
	}
	if err := s.storage.SetItem(ctx, s.namespace, TokenKey, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// SetUser writes the cached user record. SetUser(nil) is the same as ClearUser:
// token and user are both removed.
func (s *Store) SetUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return s.ClearUser(ctx)
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.storage.SetItem(ctx, s.namespace, UserKey, string(raw)); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// ClearUser wipes the whole session, user and token alike.
func (s *Store) ClearUser(ctx context.Context) error {
	userErr := s.remove(ctx, UserKey)
	tokenErr := s.remove(ctx, TokenKey)
	if userErr != nil {
		return userErr
	}
	return tokenErr
}

// UpdateUser merges patch into the cached user and stores the result.
// It returns nil without writing when no user is cached.
func (s *Store) UpdateUser(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	current := s.User(ctx)
	if current == nil {
		return nil, nil
	}

	merged := current.Apply(patch)
	if err := s.SetUser(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *Store) remove(ctx context.Context, key string) error {
	if err := s.storage.RemoveItem(ctx, s.namespace, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
