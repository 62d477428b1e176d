package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	token, err := m.Start(ctx, 7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.UserID(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	require.NoError(t, m.End(ctx, token))

	_, err = m.UserID(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)

	// Ending an already-ended session is not an error.
	assert.NoError(t, m.End(ctx, token))
}

func TestManager_ConcurrentSessionsPerUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	first, err := m.Start(ctx, 3)
	require.NoError(t, err)
	second, err := m.Start(ctx, 3)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	require.NoError(t, m.End(ctx, first))

	// Ending one session leaves the other intact.
	userID, err := m.UserID(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, uint(3), userID)
}

func TestManager_UnknownToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	_, err := m.UserID(ctx, "no-such-token")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = m.UserID(ctx, "")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_AuditIDStableForSessionLifetime(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, time.Hour)

	token, err := m.Start(ctx, 5)
	require.NoError(t, err)

	first, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	_, err = uuid.Parse(first.AuditID)
	require.NoError(t, err, "audit id is a uuid")
	assert.Equal(t, uint(5), first.UserID)

	// Resolving the session does not reissue the audit id.
	again, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, first.AuditID, again.AuditID)

	// Distinct sessions get distinct audit ids.
	other, err := m.Start(ctx, 5)
	require.NoError(t, err)
	otherRec, err := store.Lookup(ctx, other)
	require.NoError(t, err)
	assert.NotEqual(t, first.AuditID, otherRec.AuditID)

	require.NoError(t, m.End(ctx, token))
	_, err = store.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStore_PassiveExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Save(ctx, "tok", Record{UserID: 9, AuditID: "a"}, time.Minute))

	rec, err := store.Lookup(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, uint(9), rec.UserID)

	current = current.Add(2 * time.Minute)
	_, err = store.Lookup(ctx, "tok")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStore_Lifecycle(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok", Record{UserID: 12, AuditID: "abc"}, time.Hour))

	rec, err := store.Lookup(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, uint(12), rec.UserID)
	assert.Equal(t, "abc", rec.AuditID)

	// TTL expiry.
	mr.FastForward(2 * time.Hour)
	_, err = store.Lookup(ctx, "tok")
	assert.ErrorIs(t, err, ErrNoSession)

	// Delete is idempotent.
	require.NoError(t, store.Save(ctx, "tok2", Record{UserID: 12, AuditID: "def"}, time.Hour))
	require.NoError(t, store.Delete(ctx, "tok2"))
	require.NoError(t, store.Delete(ctx, "tok2"))
	_, err = store.Lookup(ctx, "tok2")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestNewToken_Entropy(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 64 {
		token, err := newToken()
		require.NoError(t, err)
		// 32 random bytes in raw URL-safe base64.
		assert.Len(t, token, 43)
		_, dup := seen[token]
		assert.False(t, dup, "token collision")
		seen[token] = struct{}{}
	}
}
