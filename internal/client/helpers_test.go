package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// recordedRequest is one request seen by the fake service.
type recordedRequest struct {
	Method string
	// Path is the escaped request path.
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// fakeService is an httptest server that records every request before handing it to handler.
type fakeService struct {
	server   *httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeService(t *testing.T, handler http.HandlerFunc) *fakeService {
	t.Helper()

	fake := &fakeService{}
	fake.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)

		fake.mu.Lock()
		fake.requests = append(fake.requests, recordedRequest{
			Method: request.Method,
			Path:   request.URL.EscapedPath(),
			Query:  request.URL.Query(),
			Header: request.Header.Clone(),
			Body:   body,
		})
		fake.mu.Unlock()

		handler(writer, request)
	}))
	t.Cleanup(fake.server.Close)

	return fake
}

func (f *fakeService) URL() string {
	return f.server.URL
}

func (f *fakeService) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeService) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func (f *fakeService) Last(t *testing.T) recordedRequest {
	t.Helper()

	requests := f.Requests()
	require.NotEmpty(t, requests)

	return requests[len(requests)-1]
}

// newTestClient creates an anonymous client against fake. Options adjust the config first.
func newTestClient(t *testing.T, fake *fakeService, options ...func(*batch.Config)) *Client {
	t.Helper()

	config := &batch.Config{BatchURL: fake.URL()}
	for _, option := range options {
		option(config)
	}

	client, err := New(t.Context(), config)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

func withMemoryCache(config *batch.Config) {
	config.Cache = &batch.CacheConfig{Type: batch.CacheTypeMemory}
}

func writeJSON(writer http.ResponseWriter, status int, body interface{}) {
	writer.Header().Set("Content-Type", "application/json; odata=minimalmetadata")
	writer.Header().Set("request-id", "req-1")
	writer.WriteHeader(status)

	if body != nil {
		_ = json.NewEncoder(writer).Encode(body)
	}
}

func writeBatchError(writer http.ResponseWriter, status int, code, message string) {
	writeJSON(writer, status, batch.BatchError{
		Code:    code,
		Message: &batch.ErrorMessage{Lang: "en-US", Value: message},
	})
}

// statusHandler answers every request with status and an optional JSON body.
func statusHandler(status int, body interface{}) http.HandlerFunc {
	return func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, status, body)
	}
}

// pagedHandler serves pages of ids, following $skiptoken links.
func pagedHandler(t *testing.T, pages [][]string, failAt int) http.HandlerFunc {
	t.Helper()

	return func(writer http.ResponseWriter, request *http.Request) {
		index := 0
		if token := request.URL.Query().Get("$skiptoken"); token != "" {
			index = int(token[0] - '0')
		}

		if index == failAt {
			writeBatchError(writer, http.StatusInternalServerError, "InternalError", "boom")

			return
		}

		items := make([]map[string]string, 0, len(pages[index]))
		for _, id := range pages[index] {
			items = append(items, map[string]string{"id": id})
		}

		body := map[string]interface{}{"value": items}
		if index+1 < len(pages) {
			body["odata.nextLink"] = "http://" + request.Host + request.URL.Path + "?$skiptoken=" + string(rune('0'+index+1))
		}

		writeJSON(writer, http.StatusOK, body)
	}
}
