package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	today time.Time
}

func (c fixedClock) Today() time.Time {
	return c.today
}

func TestKeyDeterministica(t *testing.T) {
	a := Key("account_performance", map[string]string{
		"account_id": "123",
		"days":       "30",
		"offset":     "2",
	})
	b := Key("account_performance", map[string]string{
		"offset":     "2",
		"days":       "30",
		"account_id": "123",
	})

	// A ordem de inserção no mapa não pode influenciar a chave
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestKeyDistingueOperacoesEParametros(t *testing.T) {
	base := Key("account_performance", map[string]string{"account_id": "123"})

	assert.NotEqual(t, base, Key("list_accounts", map[string]string{"account_id": "123"}))
	assert.NotEqual(t, base, Key("account_performance", map[string]string{"account_id": "456"}))
	assert.NotEqual(t, base, Key("account_performance", nil))
}

func TestSmartTTL(t *testing.T) {
	clock := fixedClock{today: time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)}
	baseTTL := 15 * time.Minute

	openTTL := SmartTTL(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), baseTTL, clock)
	closedTTL := SmartTTL(time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), baseTTL, clock)
	futureTTL := SmartTTL(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), baseTTL, clock)

	assert.Equal(t, 3*time.Minute, openTTL)
	assert.Equal(t, 90*time.Minute, closedTTL)

	// Janela que ainda nem terminou também é tratada como aberta
	assert.Equal(t, openTTL, futureTTL)

	// Uma janela fechada vive pelo menos 5x mais que uma aberta
	assert.GreaterOrEqual(t, int64(closedTTL), 5*int64(openTTL))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, found := store.Get(ctx, "ausente")
	assert.False(t, found)

	store.Set(ctx, "k", []byte("valor"), time.Minute)

	value, found := store.Get(ctx, "k")
	assert.True(t, found)
	assert.Equal(t, []byte("valor"), value)
}

func TestMemoryStoreExpiracaoPreguicosa(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", []byte("valor"), -time.Second)

	// Entrada já expirada nunca é retornada
	_, found := store.Get(ctx, "k")
	assert.False(t, found)
}

func TestMemoryStoreSobrescrita(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", []byte("antigo"), time.Minute)
	store.Set(ctx, "k", []byte("novo"), time.Minute)

	value, found := store.Get(ctx, "k")
	assert.True(t, found)
	assert.Equal(t, []byte("novo"), value)
}

func setupTestRedis(t *testing.T) *RedisStore {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStoreWithClient(client)
}

func TestRedisStore(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	_, found := store.Get(ctx, "ausente")
	assert.False(t, found)

	store.Set(ctx, "k", []byte("valor"), time.Minute)

	value, found := store.Get(ctx, "k")
	assert.True(t, found)
	assert.Equal(t, []byte("valor"), value)
}

func TestRedisStoreIndisponivelDegradaParaMiss(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	store := NewRedisStoreWithClient(client)
	ctx := context.Background()

	store.Set(ctx, "k", []byte("valor"), time.Minute)

	// Backend fora do ar: leitura vira cache miss, nunca erro
	server.Close()

	_, found := store.Get(ctx, "k")
	assert.False(t, found)
}
