package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/batch-client/internal/constants"
)

// Authorizer adds credentials to an outgoing request. It runs after every other header is set.
type Authorizer interface {
	Authorize(ctx context.Context, req *http.Request) error
}

// AnonymousAuthorizer leaves requests untouched.
type AnonymousAuthorizer struct{}

// Authorize does nothing.
func (AnonymousAuthorizer) Authorize(context.Context, *http.Request) error {
	return nil
}

// BearerAuthorizer sets "Authorization: Bearer <token>" from a TokenManager.
type BearerAuthorizer struct {
	tokens TokenManager
}

// NewBearerAuthorizer creates a bearer authorizer.
func NewBearerAuthorizer(tokens TokenManager) *BearerAuthorizer {
	return &BearerAuthorizer{tokens: tokens}
}

// Authorize sets the bearer token.
func (a *BearerAuthorizer) Authorize(ctx context.Context, req *http.Request) error {
	token, err := a.tokens.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)

	return nil
}

// SharedKeyAuthorizer signs requests with the Batch account key.
type SharedKeyAuthorizer struct {
	account string
	key     []byte
}

// NewSharedKeyAuthorizer decodes the base64 account key.
func NewSharedKeyAuthorizer(account, accountKey string) (*SharedKeyAuthorizer, error) {
	if account == "" || accountKey == "" {
		return nil, constants.ErrEmptyAccountKey
	}

	key, err := base64.StdEncoding.DecodeString(accountKey)
	if err != nil {
		return nil, fmt.Errorf("decoding account key: %w", err)
	}

	return &SharedKeyAuthorizer{account: account, key: key}, nil
}

// Authorize computes the SharedKey signature over the request.
func (a *SharedKeyAuthorizer) Authorize(_ context.Context, req *http.Request) error {
	stringToSign := a.StringToSign(req)

	mac := hmac.New(sha256.New, a.key)
	_, _ = mac.Write([]byte(stringToSign))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	req.Header.Set(constants.HeaderAuthorization, fmt.Sprintf("SharedKey %s:%s", a.account, signature))

	return nil
}

// StringToSign builds the canonical string the signature is computed over.
func (a *SharedKeyAuthorizer) StringToSign(req *http.Request) string {
	contentLength := ""
	if req.ContentLength > 0 {
		contentLength = strconv.FormatInt(req.ContentLength, 10)
	}

	date := req.Header.Get("Date")
	if req.Header.Get(constants.HeaderOcpDate) != "" {
		date = ""
	}

	parts := []string{
		req.Method,
		req.Header.Get("Content-Encoding"),
		req.Header.Get("Content-Language"),
		contentLength,
		req.Header.Get("Content-MD5"),
		req.Header.Get(constants.HeaderContentType),
		date,
		req.Header.Get("If-Modified-Since"),
		req.Header.Get(constants.HeaderIfMatch),
		req.Header.Get("If-None-Match"),
		req.Header.Get("If-Unmodified-Since"),
		req.Header.Get("Range"),
	}

	return strings.Join(parts, "\n") + "\n" + canonicalizedHeaders(req.Header) + a.canonicalizedResource(req.URL)
}

func canonicalizedHeaders(header http.Header) string {
	var names []string

	for name := range header {
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, "ocp-") {
			names = append(names, lower)
		}
	}

	sort.Strings(names)

	var builder strings.Builder

	for _, name := range names {
		fmt.Fprintf(&builder, "%s:%s\n", name, header.Get(name))
	}

	return builder.String()
}

func (a *SharedKeyAuthorizer) canonicalizedResource(u *url.URL) string {
	var builder strings.Builder

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	builder.WriteString("/" + a.account + path)

	query := u.Query()
	names := make([]string, 0, len(query))
	lowered := make(map[string][]string, len(query))

	for name, values := range query {
		lower := strings.ToLower(name)
		if _, seen := lowered[lower]; !seen {
			names = append(names, lower)
		}

		lowered[lower] = append(lowered[lower], values...)
	}

	sort.Strings(names)

	for _, name := range names {
		values := lowered[name]
		sort.Strings(values)
		fmt.Fprintf(&builder, "\n%s:%s", name, strings.Join(values, ","))
	}

	return builder.String()
}
