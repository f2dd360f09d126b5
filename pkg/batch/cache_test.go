package batch_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

func liveEntry(data string) *batch.CacheEntry {
	return &batch.CacheEntry{
		Data:       []byte(data),
		Headers:    map[string]string{"Etag": "0x1"},
		StatusCode: 200,
		ETag:       "0x1",
		ExpiresAt:  time.Now().Add(time.Hour),
	}
}

// exerciseCache runs the behaviour every backend must share.
func exerciseCache(t *testing.T, cache batch.Cache) {
	t.Helper()

	ctx := t.Context()

	_, err := cache.Get(ctx, "/pools/missing")
	require.ErrorIs(t, err, batch.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "/pools/pool1", liveEntry(`{"id":"pool1"}`)))
	assert.True(t, cache.Has(ctx, "/pools/pool1"))

	entry, err := cache.Get(ctx, "/pools/pool1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"pool1"}`, string(entry.Data))
	assert.Equal(t, "0x1", entry.ETag)
	assert.Equal(t, 200, entry.StatusCode)
	assert.Equal(t, "0x1", entry.Headers["Etag"])

	expired := liveEntry("old")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, cache.Set(ctx, "/jobs/job1", expired))

	_, err = cache.Get(ctx, "/jobs/job1")
	require.ErrorIs(t, err, batch.ErrCacheMiss)
	assert.Contains(t, err.Error(), "entry expired")
	assert.False(t, cache.Has(ctx, "/jobs/job1"))

	require.NoError(t, cache.Delete(ctx, "/pools/pool1"))
	assert.False(t, cache.Has(ctx, "/pools/pool1"))
	require.NoError(t, cache.Delete(ctx, "/pools/pool1"), "deleting a missing key is not an error")

	for i := range 3 {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("/jobs/job%d/tasks/t1", i), liveEntry("task")))
	}

	require.NoError(t, cache.Clear(ctx))

	for i := range 3 {
		assert.False(t, cache.Has(ctx, fmt.Sprintf("/jobs/job%d/tasks/t1", i)))
	}
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	exerciseCache(t, batch.NewMemoryCache(10))
}

func TestMemoryCache_EvictsWhenFull(t *testing.T) {
	t.Parallel()

	cache := batch.NewMemoryCache(2)
	ctx := t.Context()

	soon := liveEntry("soon")
	soon.ExpiresAt = time.Now().Add(time.Minute)

	require.NoError(t, cache.Set(ctx, "a", soon))
	require.NoError(t, cache.Set(ctx, "b", liveEntry("later")))
	require.NoError(t, cache.Set(ctx, "c", liveEntry("latest")))

	assert.Equal(t, 2, cache.Len())
	assert.False(t, cache.Has(ctx, "a"), "the entry closest to expiry is evicted")
	assert.True(t, cache.Has(ctx, "b"))
	assert.True(t, cache.Has(ctx, "c"))

	require.NoError(t, cache.Set(ctx, "c", liveEntry("replaced")))
	assert.Equal(t, 2, cache.Len(), "overwriting an existing key evicts nothing")
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := batch.NewNoOpCache()
	ctx := t.Context()

	require.NoError(t, cache.Set(ctx, "key", liveEntry("data")))
	assert.False(t, cache.Has(ctx, "key"))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, batch.ErrCacheDisabled)
	require.NoError(t, cache.Delete(ctx, "key"))
	require.NoError(t, cache.Clear(ctx))
}

func TestCacheConfig_TTL(t *testing.T) {
	t.Parallel()

	var nilConfig *batch.CacheConfig

	assert.Positive(t, nilConfig.TTL())
	assert.Equal(t, nilConfig.TTL(), (&batch.CacheConfig{}).TTL())
	assert.Equal(t, time.Minute, (&batch.CacheConfig{Options: &batch.CacheOptions{TTL: time.Minute}}).TTL())
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *batch.CacheConfig
		want    interface{}
		wantErr error
	}{
		{name: "default", config: nil, want: &batch.MemoryCache{}},
		{name: "memory", config: &batch.CacheConfig{Type: batch.CacheTypeMemory, Memory: &batch.MemoryCacheConfig{MaxSize: 5}}, want: &batch.MemoryCache{}},
		{name: "none", config: &batch.CacheConfig{Type: batch.CacheTypeNone}, want: &batch.NoOpCache{}},
		{name: "nats without settings", config: &batch.CacheConfig{Type: batch.CacheTypeNATS}, wantErr: batch.ErrNATSConfigRequired},
		{name: "unknown", config: &batch.CacheConfig{Type: "redis"}, wantErr: batch.ErrUnsupportedCacheType},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cache, err := batch.NewCacheFromConfig(t.Context(), testCase.config)
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, testCase.want, cache)
		})
	}
}

func runJetStreamServer(t *testing.T) *server.Server {
	t.Helper()

	opts := test.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()

	srv := test.RunServer(&opts)
	if !srv.ReadyForConnections(10 * time.Second) {
		t.Fatal("NATS server did not start")
	}

	t.Cleanup(srv.Shutdown)

	return srv
}

func TestNATSKVCache(t *testing.T) {
	t.Parallel()

	srv := runJetStreamServer(t)

	cache, err := batch.NewCacheFromConfig(t.Context(), &batch.CacheConfig{
		Type: batch.CacheTypeNATS,
		NATS: &batch.NATSKVConfig{URL: srv.ClientURL(), Bucket: "batch-cache-test"},
	})
	require.NoError(t, err)

	natsCache, ok := cache.(*batch.NATSKVCache)
	require.True(t, ok)
	t.Cleanup(natsCache.Close)

	exerciseCache(t, natsCache)
}

func TestNATSKVCache_SharedBetweenClients(t *testing.T) {
	t.Parallel()

	srv := runJetStreamServer(t)

	conn, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)
	t.Cleanup(conn.Close)

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	writer, err := batch.NewNATSKVCache(ctx, &batch.NATSKVConfig{Conn: conn})
	require.NoError(t, err)

	reader, err := batch.NewNATSKVCache(ctx, &batch.NATSKVConfig{URL: srv.ClientURL()})
	require.NoError(t, err)
	t.Cleanup(reader.Close)

	key := "/certificates(thumbprintAlgorithm=sha1,thumbprint=abc)"
	require.NoError(t, writer.Set(ctx, key, liveEntry("cert")))

	entry, err := reader.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "cert", string(entry.Data))

	writer.Close()
	assert.True(t, conn.IsConnected(), "a caller-supplied connection is left open")
}

func TestNATSKVCache_ConnectFailure(t *testing.T) {
	t.Parallel()

	_, err := batch.NewNATSKVCache(t.Context(), &batch.NATSKVConfig{URL: "nats://127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to NATS")
}
