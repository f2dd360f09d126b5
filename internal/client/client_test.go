package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fivetwenty-io/batch-client/internal/auth"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(t.Context(), nil)
		require.ErrorIs(t, err, batch.ErrConfigRequired)
	})

	t.Run("requires batch URL", func(t *testing.T) {
		t.Parallel()

		_, err := New(t.Context(), &batch.Config{AccessToken: "token"})
		require.ErrorIs(t, err, batch.ErrBatchURLRequired)
	})

	t.Run("rejects a malformed account key", func(t *testing.T) {
		t.Parallel()

		_, err := New(t.Context(), &batch.Config{
			BatchURL:    "https://acct.westeurope.batch.azure.com",
			AccountName: "acct",
			AccountKey:  "not base64!",
		})
		require.Error(t, err)
	})

	t.Run("anonymous without credentials", func(t *testing.T) {
		t.Parallel()

		client, err := New(t.Context(), &batch.Config{BatchURL: "https://acct.westeurope.batch.azure.com"})
		require.NoError(t, err)
		assert.Nil(t, client.GetTokenManager())
		assert.IsType(t, auth.AnonymousAuthorizer{}, client.authorizer)
		assert.IsType(t, &batch.NoOpCache{}, client.Cache())
	})
}

func TestClient_Authentication(t *testing.T) {
	t.Parallel()

	t.Run("shared key", func(t *testing.T) {
		t.Parallel()

		fake := newFakeService(t, statusHandler(http.StatusOK, batch.Job{ID: "job1"}))
		client := newTestClient(t, fake, func(config *batch.Config) {
			config.AccountName = "acct"
			config.AccountKey = "c2VjcmV0LWtleQ=="
			config.AccessToken = "ignored"
		})

		_, err := client.Jobs().Get(t.Context(), "job1", nil)
		require.NoError(t, err)

		last := fake.Last(t)
		assert.True(t, strings.HasPrefix(last.Header.Get("Authorization"), "SharedKey acct:"))
		assert.NotEmpty(t, last.Header.Get("ocp-date"))
		assert.Nil(t, client.GetTokenManager())
	})

	t.Run("static token", func(t *testing.T) {
		t.Parallel()

		fake := newFakeService(t, statusHandler(http.StatusOK, batch.Job{ID: "job1"}))
		client := newTestClient(t, fake, func(config *batch.Config) {
			config.AccessToken = "static-token"
		})

		_, err := client.Jobs().Get(t.Context(), "job1", nil)
		require.NoError(t, err)
		assert.Equal(t, "Bearer static-token", fake.Last(t).Header.Get("Authorization"))
	})

	t.Run("client credentials", func(t *testing.T) {
		t.Parallel()

		var tokenRequests atomic.Int32

		tokenServer := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			tokenRequests.Add(1)
			assert.NoError(t, request.ParseForm())
			assert.Equal(t, "client_credentials", request.PostForm.Get("grant_type"))

			writer.Header().Set("Content-Type", "application/json")
			_, _ = writer.Write([]byte(`{"access_token":"entra-token","token_type":"Bearer","expires_in":3600}`))
		}))
		t.Cleanup(tokenServer.Close)

		fake := newFakeService(t, statusHandler(http.StatusOK, batch.Job{ID: "job1"}))
		client := newTestClient(t, fake, func(config *batch.Config) {
			config.ClientID = "app"
			config.ClientSecret = "secret"
			config.TokenURL = tokenServer.URL
		})

		for range 2 {
			_, err := client.Jobs().Get(t.Context(), "job1", nil)
			require.NoError(t, err)
		}

		assert.Equal(t, "Bearer entra-token", fake.Last(t).Header.Get("Authorization"))
		assert.Equal(t, int32(1), tokenRequests.Load(), "the token is reused until it expires")
		assert.NotNil(t, client.GetTokenManager())
	})
}

type recordingPersister struct {
	mu     sync.Mutex
	tokens []string
	urls   []string
}

func (p *recordingPersister) UpdateAccessToken(batchURL, token string, _ time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.urls = append(p.urls, batchURL)
	p.tokens = append(p.tokens, token)

	return nil
}

func TestClient_TokenPersistence(t *testing.T) {
	t.Parallel()

	newTokenServer := func(t *testing.T, requests *atomic.Int32) *httptest.Server {
		t.Helper()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			requests.Add(1)
			writer.Header().Set("Content-Type", "application/json")
			_, _ = writer.Write([]byte(`{"access_token":"fresh-token","token_type":"Bearer","expires_in":3600}`))
		}))
		t.Cleanup(server.Close)

		return server
	}

	t.Run("new tokens are persisted", func(t *testing.T) {
		t.Parallel()

		var tokenRequests atomic.Int32

		tokenServer := newTokenServer(t, &tokenRequests)
		persister := &recordingPersister{}
		fake := newFakeService(t, statusHandler(http.StatusOK, batch.Pool{ID: "pool1"}))
		client := newTestClient(t, fake, func(config *batch.Config) {
			config.ClientID = "app"
			config.ClientSecret = "secret"
			config.TokenURL = tokenServer.URL
			config.TokenPersister = persister
		})

		for range 2 {
			_, err := client.Pools().Get(t.Context(), "pool1", nil)
			require.NoError(t, err)
		}

		assert.Equal(t, []string{"fresh-token"}, persister.tokens, "an unchanged token is saved once")
		assert.Equal(t, []string{fake.URL()}, persister.urls)
	})

	t.Run("persisted token is reused", func(t *testing.T) {
		t.Parallel()

		var tokenRequests atomic.Int32

		tokenServer := newTokenServer(t, &tokenRequests)
		persister := &recordingPersister{}
		fake := newFakeService(t, statusHandler(http.StatusOK, batch.Pool{ID: "pool1"}))
		client := newTestClient(t, fake, func(config *batch.Config) {
			config.ClientID = "app"
			config.ClientSecret = "secret"
			config.TokenURL = tokenServer.URL
			config.TokenPersister = persister
			config.PersistedToken = "saved-token"
			config.PersistedTokenExpiry = time.Now().Add(time.Hour)
		})

		_, err := client.Pools().Get(t.Context(), "pool1", nil)
		require.NoError(t, err)

		assert.Equal(t, "Bearer saved-token", fake.Last(t).Header.Get("Authorization"))
		assert.Zero(t, tokenRequests.Load())
		assert.Empty(t, persister.tokens)
	})
}

func TestClient_StandardHeaders(t *testing.T) {
	t.Parallel()

	fake := newFakeService(t, statusHandler(http.StatusOK, batch.Pool{ID: "pool1"}))
	client := newTestClient(t, fake, func(config *batch.Config) {
		config.APIVersion = "2023-05-01.17.0"
		config.UserAgent = "batch-tests/1.0"
	})

	_, err := client.Pools().Get(t.Context(), "pool1", nil)
	require.NoError(t, err)

	last := fake.Last(t)
	assert.Equal(t, "2023-05-01.17.0", last.Query.Get("api-version"))
	assert.Equal(t, "batch-tests/1.0", last.Header.Get("User-Agent"))
	assert.NotEmpty(t, last.Header.Get("client-request-id"))
	assert.Equal(t, "true", last.Header.Get("return-client-request-id"))
}

func TestClient_CustomInterceptors(t *testing.T) {
	t.Parallel()

	var operations []string

	chain := batch.NewInterceptorChain()
	chain.AddRequestInterceptor(batch.HeaderInterceptor(map[string]string{"x-test-tenant": "blue"}))
	chain.AddResponseInterceptor(func(_ context.Context, req *batch.Request, _ *batch.InterceptedResponse) error {
		operations = append(operations, req.Operation)

		return nil
	})

	fake := newFakeService(t, statusHandler(http.StatusOK, batch.TaskCountsResult{}))
	client := newTestClient(t, fake, func(config *batch.Config) {
		config.Interceptors = chain
	})

	_, err := client.Jobs().GetTaskCounts(t.Context(), "job1")
	require.NoError(t, err)

	assert.Equal(t, "blue", fake.Last(t).Header.Get("x-test-tenant"))
	assert.Equal(t, []string{"Job_GetTaskCounts"}, operations)
}

func TestClient_CircuitBreaker(t *testing.T) {
	t.Parallel()

	fake := newFakeService(t, func(writer http.ResponseWriter, _ *http.Request) {
		writeBatchError(writer, http.StatusInternalServerError, "InternalError", "boom")
	})
	client := newTestClient(t, fake, func(config *batch.Config) {
		config.CircuitBreaker = &batch.CircuitBreakerConfig{Threshold: 2, Timeout: time.Minute, SuccessThreshold: 1}
	})

	for range 2 {
		_, err := client.Pools().Get(t.Context(), "pool1", nil)
		require.Error(t, err)
		assert.True(t, batch.IsService(err))
	}

	_, err := client.Pools().Get(t.Context(), "pool1", nil)
	require.ErrorIs(t, err, batch.ErrCircuitBreakerOpen)
	assert.True(t, batch.IsTransport(err), "a rejected call is a transport failure")
	assert.False(t, batch.IsService(err))
	assert.Equal(t, 2, fake.Count(), "an open circuit sends nothing")
}

func TestClient_OTelMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	fake := newFakeService(t, func(writer http.ResponseWriter, request *http.Request) {
		if strings.HasSuffix(request.URL.Path, "missing") {
			writeBatchError(writer, http.StatusNotFound, batch.ErrorCodeJobNotFound, "no job")

			return
		}

		writeJSON(writer, http.StatusOK, batch.Job{ID: "job1"})
	})
	client := newTestClient(t, fake, func(config *batch.Config) {
		config.MeterProvider = provider
	})

	_, err := client.Jobs().Get(t.Context(), "job1", nil)
	require.NoError(t, err)

	_, err = client.Jobs().Get(t.Context(), "missing", nil)
	require.Error(t, err)

	var collected metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &collected))

	totals := map[string]int64{}

	for _, scope := range collected.ScopeMetrics {
		for _, instrument := range scope.Metrics {
			sum, ok := instrument.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}

			for _, point := range sum.DataPoints {
				totals[instrument.Name] += point.Value
			}
		}
	}

	assert.Equal(t, int64(2), totals["batch_client_requests_total"])
	assert.Equal(t, int64(1), totals["batch_client_errors_total"])
}

func TestClient_LoggingInterceptors(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)

	fake := newFakeService(t, statusHandler(http.StatusOK, batch.Certificate{Thumbprint: "abc", ThumbprintAlgorithm: "sha1"}))
	client := newTestClient(t, fake, func(config *batch.Config) {
		config.Logger = batch.NewZapLogger(zap.New(core))
	})

	_, err := client.Certificates().Get(t.Context(), "sha1", "abc", nil)
	require.NoError(t, err)

	responses := logs.FilterMessage("API Response").All()
	require.Len(t, responses, 1)
	assert.Equal(t, "Certificate_Get", responses[0].ContextMap()["operation"])
}

func TestClient_RetriesOffByDefault(t *testing.T) {
	t.Parallel()

	fake := newFakeService(t, func(writer http.ResponseWriter, _ *http.Request) {
		writeBatchError(writer, http.StatusServiceUnavailable, batch.ErrorCodeServerBusy, "busy")
	})
	client := newTestClient(t, fake)

	_, err := client.Pools().Get(t.Context(), "pool1", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, batch.StatusCode(err))
	assert.Equal(t, 1, fake.Count())
}

func TestClient_RetriesWhenEnabled(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	fake := newFakeService(t, func(writer http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			writeBatchError(writer, http.StatusServiceUnavailable, batch.ErrorCodeServerBusy, "busy")

			return
		}

		writeJSON(writer, http.StatusOK, batch.Pool{ID: "pool1"})
	})
	client := newTestClient(t, fake, func(config *batch.Config) {
		config.RetryMax = 3
		config.RetryWaitMin = time.Millisecond
		config.RetryWaitMax = 2 * time.Millisecond
	})

	resp, err := client.Pools().Get(t.Context(), "pool1", nil)
	require.NoError(t, err)
	assert.Equal(t, "pool1", resp.Body.ID)
	assert.Equal(t, 3, fake.Count())
}

func TestClient_ContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})

	fake := newFakeService(t, func(writer http.ResponseWriter, _ *http.Request) {
		<-release
		writeJSON(writer, http.StatusOK, batch.Pool{ID: "pool1"})
	})
	t.Cleanup(func() { close(release) })

	client := newTestClient(t, fake)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Pools().Get(ctx, "pool1", nil)
	require.Error(t, err)
	assert.True(t, batch.IsTransport(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
