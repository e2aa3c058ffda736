package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/bigpicture/pkg/adapters/redis"
	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/aretw0/bigpicture/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *backend.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)
	return backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	store := redis.NewFromClient(newTestClient(t))
	ports.RunWorkshopStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	w := domain.NewWorkshop("Ephemeral", "", "", nil)
	require.NoError(t, store.Save(ctx, w))

	summaries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	// Fast forward past the TTL; the key expires and the index prunes lazily.
	mr.FastForward(2 * time.Second)
	time.Sleep(1100 * time.Millisecond)

	_, err = store.Load(ctx, w.Metadata.ID)
	assert.ErrorIs(t, err, domain.ErrWorkshopNotFound)

	summaries, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	w := domain.NewWorkshop("Prefixed", "", "", nil)
	require.NoError(t, store.Save(ctx, w))

	assert.True(t, mr.Exists("custom:app:"+w.Metadata.ID), "expected key with custom prefix")
	assert.True(t, mr.Exists("custom:app:index"), "expected index with custom prefix")
}

func TestRedisStore_LegacyMigrationOnLoad(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	legacy := `{
		"metadata": {"id": "old-1", "name": "Legacy", "created_at": "t", "updated_at": "t"},
		"elements": [{"id": "e1", "type": "event", "name": "E", "description": "desc", "created_at": "t", "updated_at": "t"}]
	}`
	require.NoError(t, mr.Set("bigpicture:workshop:old-1", legacy))

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client)

	w, err := store.Load(context.Background(), "old-1")
	require.NoError(t, err)
	assert.Equal(t, "desc", w.Elements[0].Notes)
	assert.Equal(t, domain.SchemaVersion, w.Metadata.SchemaVersion)
}
