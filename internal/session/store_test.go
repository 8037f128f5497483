package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/edureach/internal/app/models"
)

func newTestStore(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	return NewStore(storage, "visitor-1", zerolog.Nop()), storage
}

type failingStorage struct{}

func (failingStorage) GetItem(context.Context, string, string) (string, bool, error) {
	return "", false, ErrStorageUnavailable
}

func (failingStorage) SetItem(context.Context, string, string, string) error {
	return ErrStorageUnavailable
}

func (failingStorage) RemoveItem(context.Context, string, string) error {
	return ErrStorageUnavailable
}

func TestEmptySessionIsUnauthenticated(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := store.Load(ctx)

	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.User)
	assert.Equal(t, "", store.Token(ctx))
}

func TestSetTokenAndUserRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetToken(ctx, "tok123"))
	require.NoError(t, store.SetUser(ctx, &models.User{ID: "u1", FullName: "Sari Dewi", IsVolunteer: true}))

	sess := store.Load(ctx)
	assert.True(t, sess.Authenticated())
	require.NotNil(t, sess.User)
	assert.Equal(t, "u1", sess.User.ID)
	assert.True(t, sess.User.IsVolunteer)
}

func TestLoadIgnoresUserWithoutToken(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetUser(ctx, &models.User{ID: "u1"}))

	sess := store.Load(ctx)
	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.User)
	assert.NotNil(t, store.User(ctx), "the record itself is still cached")
}

func TestClearUserRemovesTokenToo(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetToken(ctx, "tok123"))
	require.NoError(t, store.SetUser(ctx, &models.User{ID: "u1"}))

	require.NoError(t, store.ClearUser(ctx))

	_, hasToken, _ := storage.GetItem(ctx, "visitor-1", TokenKey)
	_, hasUser, _ := storage.GetItem(ctx, "visitor-1", UserKey)
	assert.False(t, hasToken)
	assert.False(t, hasUser)
}

func TestSetUserNilIsClearUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetToken(ctx, "tok123"))
	require.NoError(t, store.SetUser(ctx, &models.User{ID: "u1"}))

	require.NoError(t, store.SetUser(ctx, nil))

	assert.Equal(t, "", store.Token(ctx))
	assert.Nil(t, store.User(ctx))
}

func TestUpdateUserMergesPartial(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "tok"))
	require.NoError(t, store.SetUser(ctx, &models.User{ID: "u1", FullName: "Andi", Email: "andi@mail.com"}))

	name := "Andi Pratama"
	updated, err := store.UpdateUser(ctx, models.UserPatch{FullName: &name})
	require.NoError(t, err)
	require.NotNil(t, updated)

	cached := store.User(ctx)
	require.NotNil(t, cached)
	assert.Equal(t, "Andi Pratama", cached.FullName)
	assert.Equal(t, "andi@mail.com", cached.Email)
}

func TestUpdateUserWithoutCachedUserIsNoop(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()

	name := "Ghost"
	updated, err := store.UpdateUser(ctx, models.UserPatch{FullName: &name})

	require.NoError(t, err)
	assert.Nil(t, updated)
	_, ok, _ := storage.GetItem(ctx, "visitor-1", UserKey)
	assert.False(t, ok)
}

func TestCorruptUserIsSwallowedAndRemoved(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, storage.SetItem(ctx, "visitor-1", TokenKey, "tok"))
	require.NoError(t, storage.SetItem(ctx, "visitor-1", UserKey, "{not json"))

	sess := store.Load(ctx)

	assert.True(t, sess.Authenticated())
	assert.Nil(t, sess.User)
	_, ok, _ := storage.GetItem(ctx, "visitor-1", UserKey)
	assert.False(t, ok)
}

func TestNamespacesAreIsolated(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	a := NewStore(storage, "a", zerolog.Nop())
	b := NewStore(storage, "b", zerolog.Nop())

	require.NoError(t, a.SetToken(ctx, "tok-a"))

	assert.Equal(t, "tok-a", a.Token(ctx))
	assert.Equal(t, "", b.Token(ctx))
}

func TestStorageFailureReadsAsNoSession(t *testing.T) {
	store := NewStore(failingStorage{}, "v", zerolog.Nop())
	ctx := context.Background()

	assert.False(t, store.Load(ctx).Authenticated())
	assert.Nil(t, store.User(ctx))

	err := store.SetToken(ctx, "tok")
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
}
