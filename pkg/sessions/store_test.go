package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantagesuite/vantage/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client, time.Hour), mr
}

func sampleSession() *domain.SessionData {
	return &domain.SessionData{
		User: &domain.PrincipalSummary{
			ID:    uuid.New(),
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Roles: []string{"admin"},
		},
		Token:     "vgt_sample",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestStorePutGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	data := sampleSession()
	require.NoError(t, store.Put(ctx, "sess-1", data))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, data.User.Email, got.User.Email)
	assert.Equal(t, data.User.ID, got.User.ID)
	assert.Equal(t, data.Token, got.Token)
}

func TestStoreGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sess-1", sampleSession()))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op
	assert.NoError(t, store.Delete(ctx, "sess-1"))
}

func TestStoreTTLExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sess-1", sampleSession()))

	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
