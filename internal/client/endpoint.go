package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/fivetwenty-io/batch-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/batch-client/internal/http"
	"github.com/fivetwenty-io/batch-client/internal/response"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// Names of parameters that can be declared required.
const (
	paramPoolID              = "poolId"
	paramJobID               = "jobId"
	paramTaskID              = "taskId"
	paramNodeID              = "nodeId"
	paramUserName            = "userName"
	paramFilePath            = "filePath"
	paramThumbprint          = "thumbprint"
	paramThumbprintAlgorithm = "thumbprintAlgorithm"
	paramBody                = "body"
)

// operation describes one REST endpoint. Every group is a table of these.
type operation struct {
	name        string
	method      string
	path        string // template, e.g. "/pools/{poolId}"
	successCode int
	required    []string
	// cacheable marks reads whose responses may be served from the cache.
	cacheable bool
	// evicts is the template of the cached path a successful call invalidates.
	evicts string
}

// call carries the arguments of one invocation.
type call struct {
	params  map[string]string
	query   url.Values
	body    interface{}
	headers map[string]string
	// fresh bypasses the cache read; the response still refreshes the entry.
	fresh bool
}

// validate checks that every required parameter is present.
func (op operation) validate(c call) error {
	for _, name := range op.required {
		if name == paramBody {
			if isNil(c.body) {
				return &batch.ValidationError{Operation: op.name, Parameter: name}
			}

			continue
		}

		if strings.TrimSpace(c.params[name]) == "" {
			return &batch.ValidationError{Operation: op.name, Parameter: name}
		}
	}

	return nil
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// expand substitutes escaped parameter values into a path template.
func expand(template string, params map[string]string) string {
	path := template

	for name, value := range params {
		path = strings.ReplaceAll(path, "{"+name+"}", escapeParam(name, value))
	}

	return path
}

func escapeParam(name, value string) string {
	if name != paramFilePath {
		return url.PathEscape(value)
	}

	segments := strings.Split(strings.TrimPrefix(value, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	return strings.Join(segments, "/")
}

// invoker runs operations against the transport.
type invoker struct {
	http   *internalhttp.Client
	cache  batch.Cache
	ttl    time.Duration
	etags  bool
	logger batch.Logger
}

// cacheKey scopes path to the account so clients of different accounts can share a cache.
func (inv *invoker) cacheKey(path string) string {
	return inv.http.BaseURL() + path
}

// invoke validates, sends and decodes one operation.
func invoke[B, H any](ctx context.Context, inv *invoker, op operation, c call) (*batch.Response[B, H], error) {
	err := op.validate(c)
	if err != nil {
		return nil, err
	}

	if isNil(c.body) {
		c.body = nil
	}

	path := expand(op.path, c.params)
	cacheKey := ""

	if op.cacheable && inv.cache != nil && len(c.query) == 0 {
		cacheKey = inv.cacheKey(path)

		if !c.fresh {
			if raw, ok := inv.cachedResponse(ctx, cacheKey); ok {
				resp, buildErr := response.Build[B, H](raw, op.successCode)
				if buildErr == nil {
					return resp, nil
				}

				_ = inv.cache.Delete(ctx, cacheKey)
			}
		}
	}

	httpResp, err := inv.http.Do(ctx, &internalhttp.Request{
		Method:    op.method,
		Path:      path,
		Query:     c.query,
		Headers:   requestHeaders(ctx, op.method, c.headers),
		Body:      c.body,
		Operation: op.name,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.name, err)
	}

	resp, err := response.Build[B, H](httpResp.Raw, op.successCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.name, err)
	}

	if cacheKey != "" {
		inv.storeResponse(ctx, cacheKey, httpResp)
	}

	if op.evicts != "" && inv.cache != nil {
		evicted := inv.cacheKey(expand(op.evicts, c.params))

		err = inv.cache.Delete(ctx, evicted)
		if err != nil {
			inv.logger.Warn("failed to evict cache entry", map[string]interface{}{"key": evicted, "error": err.Error()})
		}
	}

	return resp, nil
}

// pager builds the paging handler of a list operation. Validation happens on the first fetch.
func pager[T any](inv *invoker, op operation, c call) batch.PagingHandler[T] {
	return batch.PagingHandler[T]{
		First: func(ctx context.Context) (*batch.Page[T], error) {
			resp, err := invoke[batch.ListResponse[T], batch.ResponseHeaders](ctx, inv, op, c)
			if err != nil {
				return nil, err
			}

			return resp.Body.ToPage(), nil
		},
		Next: func(ctx context.Context, nextLink string) (*batch.Page[T], error) {
			if err := inv.checkNextLink(nextLink); err != nil {
				return nil, fmt.Errorf("%sNext: %w", op.name, err)
			}

			httpResp, err := inv.http.Do(ctx, &internalhttp.Request{
				Method:    http.MethodGet,
				URL:       nextLink,
				Headers:   c.headers,
				Operation: op.name + "Next",
			})
			if err != nil {
				return nil, fmt.Errorf("%sNext: %w", op.name, err)
			}

			page, err := response.BuildPage[T](httpResp.Raw)
			if err != nil {
				return nil, fmt.Errorf("%sNext: %w", op.name, err)
			}

			return page, nil
		},
	}
}

// checkNextLink rejects a continuation link whose scheme or host is not the account's.
func (inv *invoker) checkNextLink(nextLink string) error {
	link, err := url.Parse(nextLink)
	if err != nil {
		return &batch.DecodingError{Target: "odata.nextLink", StatusCode: http.StatusOK, Err: err}
	}

	base, err := url.Parse(inv.http.BaseURL())
	if err != nil {
		return &batch.DecodingError{Target: "odata.nextLink", StatusCode: http.StatusOK, Err: err}
	}

	if !strings.EqualFold(link.Scheme, base.Scheme) || !strings.EqualFold(link.Host, base.Host) {
		return &batch.DecodingError{
			Target:     "odata.nextLink",
			StatusCode: http.StatusOK,
			Err:        fmt.Errorf("%w: %s://%s", batch.ErrForeignNextLink, link.Scheme, link.Host),
		}
	}

	return nil
}

func (inv *invoker) cachedResponse(ctx context.Context, key string) (*http.Response, bool) {
	entry, err := inv.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	header := make(http.Header, len(entry.Headers))
	for name, value := range entry.Headers {
		header.Set(name, value)
	}

	inv.logger.Debug("cache hit", map[string]interface{}{"key": key})

	return &http.Response{
		StatusCode: entry.StatusCode,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(entry.Data)),
	}, true
}

func (inv *invoker) storeResponse(ctx context.Context, key string, resp *internalhttp.Response) {
	headers := make(map[string]string, len(resp.Headers))
	for name := range resp.Headers {
		headers[name] = resp.Headers.Get(name)
	}

	etag := resp.Headers.Get(constants.HeaderETag)
	if !inv.etags {
		delete(headers, http.CanonicalHeaderKey(constants.HeaderETag))

		etag = ""
	}

	err := inv.cache.Set(ctx, key, &batch.CacheEntry{
		Data:       resp.Body,
		Headers:    headers,
		StatusCode: resp.StatusCode,
		ETag:       etag,
		ExpiresAt:  time.Now().Add(inv.ttl),
	})
	if err != nil {
		inv.logger.Warn("failed to store cache entry", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

// params builds a parameter map from name/value pairs.
func params(pairs ...string) map[string]string {
	out := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i]] = pairs[i+1]
	}

	return out
}

// requestHeaders adds the If-Match condition of ctx to the headers of mutating calls.
func requestHeaders(ctx context.Context, method string, headers map[string]string) map[string]string {
	etag := batch.IfMatchFromContext(ctx)
	if etag == "" || method == http.MethodGet || method == http.MethodHead {
		return headers
	}

	out := make(map[string]string, len(headers)+1)
	for name, value := range headers {
		out[name] = value
	}

	out[constants.HeaderIfMatch] = etag

	return out
}
