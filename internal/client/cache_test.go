package client

import (
	"net/http"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

func TestCache_SharedBucketIsScopedToAccount(t *testing.T) {
	t.Parallel()

	opts := test.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()

	srv := test.RunServer(&opts)
	if !srv.ReadyForConnections(10 * time.Second) {
		t.Fatal("NATS server did not start")
	}

	t.Cleanup(srv.Shutdown)

	sharedBucket := func(config *batch.Config) {
		config.Cache = &batch.CacheConfig{
			Type: batch.CacheTypeNATS,
			NATS: &batch.NATSKVConfig{URL: srv.ClientURL(), Bucket: "shared"},
		}
	}

	accountA := newFakeService(t, statusHandler(http.StatusOK, batch.Pool{ID: "pool1", VMSize: "standard_a1"}))
	accountB := newFakeService(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.Method == http.MethodDelete {
			writer.WriteHeader(http.StatusAccepted)

			return
		}

		writeJSON(writer, http.StatusOK, batch.Pool{ID: "pool1", VMSize: "standard_b2"})
	})

	clientA := newTestClient(t, accountA, sharedBucket)
	clientB := newTestClient(t, accountB, sharedBucket)

	poolA, err := clientA.Pools().Get(t.Context(), "pool1", nil)
	require.NoError(t, err)
	assert.Equal(t, "standard_a1", poolA.Body.VMSize)

	poolB, err := clientB.Pools().Get(t.Context(), "pool1", nil)
	require.NoError(t, err)
	assert.Equal(t, "standard_b2", poolB.Body.VMSize, "another account's entry is never served")
	assert.Equal(t, 1, accountB.Count())

	again, err := clientA.Pools().Get(t.Context(), "pool1", nil)
	require.NoError(t, err)
	assert.Equal(t, "standard_a1", again.Body.VMSize)
	assert.Equal(t, 1, accountA.Count(), "each account still reads its own entry from the cache")

	_, err = clientB.Pools().Delete(t.Context(), "pool1")
	require.NoError(t, err)
	assert.False(t, clientB.Cache().Has(t.Context(), accountB.URL()+"/pools/pool1"))
	assert.True(t, clientA.Cache().Has(t.Context(), accountA.URL()+"/pools/pool1"), "evictions stay within the account")
}

func TestCache_ETags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		options  *batch.CacheOptions
		wantETag string
	}{
		{name: "default options keep the etag", options: nil, wantETag: "0x8DC"},
		{name: "enabled", options: &batch.CacheOptions{EnableETags: true}, wantETag: "0x8DC"},
		{name: "disabled", options: &batch.CacheOptions{EnableETags: false}, wantETag: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			fake := newFakeService(t, func(writer http.ResponseWriter, _ *http.Request) {
				writer.Header().Set("ETag", "0x8DC")
				writeJSON(writer, http.StatusOK, batch.Job{ID: "job1"})
			})
			client := newTestClient(t, fake, func(config *batch.Config) {
				config.Cache = &batch.CacheConfig{Type: batch.CacheTypeMemory, Options: testCase.options}
			})

			first, err := client.Jobs().Get(t.Context(), "job1", nil)
			require.NoError(t, err)
			assert.Equal(t, "0x8DC", first.Headers.ETag, "a live response always carries its etag")

			cached, err := client.Jobs().Get(t.Context(), "job1", nil)
			require.NoError(t, err)
			assert.Equal(t, 1, fake.Count())
			assert.Equal(t, testCase.wantETag, cached.Headers.ETag)

			entry, err := client.Cache().Get(t.Context(), fake.URL()+"/jobs/job1")
			require.NoError(t, err)
			assert.Equal(t, testCase.wantETag, entry.ETag)
		})
	}
}
