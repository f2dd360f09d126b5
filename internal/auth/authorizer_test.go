package auth_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/batch-client/internal/auth"
)

var testAccountKey = base64.StdEncoding.EncodeToString([]byte("super-secret-account-key"))

func TestSharedKeyAuthorizer_StringToSign(t *testing.T) {
	t.Parallel()

	authorizer, err := auth.NewSharedKeyAuthorizer("myaccount", testAccountKey)
	require.NoError(t, err)

	body := []byte(`{"id":"pool1"}`)
	req, err := http.NewRequest(http.MethodPost,
		"https://myaccount.westeurope.batch.azure.com/pools?timeout=30&api-version=2024-07-01.20.0",
		bytes.NewReader(body))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json; odata=minimalmetadata; charset=utf-8")
	req.Header.Set("ocp-date", "Mon, 02 Jan 2006 15:04:05 GMT")
	req.Header.Set("Ocp-Custom", "x")
	req.Header.Set("client-request-id", "ignored")

	expected := strings.Join([]string{
		"POST",
		"",
		"",
		"14",
		"",
		"application/json; odata=minimalmetadata; charset=utf-8",
		"",
		"", "", "", "", "",
		"ocp-custom:x",
		"ocp-date:Mon, 02 Jan 2006 15:04:05 GMT",
		"/myaccount/pools",
		"api-version:2024-07-01.20.0",
		"timeout:30",
	}, "\n")

	assert.Equal(t, expected, authorizer.StringToSign(req))
}

func TestSharedKeyAuthorizer_Authorize(t *testing.T) {
	t.Parallel()

	authorizer, err := auth.NewSharedKeyAuthorizer("myaccount", testAccountKey)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "https://myaccount.batch.azure.com/jobs", nil)
	require.NoError(t, err)
	req.Header.Set("ocp-date", time.Now().UTC().Format(http.TimeFormat))

	require.NoError(t, authorizer.Authorize(context.Background(), req))

	mac := hmac.New(sha256.New, []byte("super-secret-account-key"))
	_, _ = mac.Write([]byte(authorizer.StringToSign(req)))
	expected := "SharedKey myaccount:" + base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, expected, req.Header.Get("Authorization"))
}

func TestNewSharedKeyAuthorizer_Errors(t *testing.T) {
	t.Parallel()

	_, err := auth.NewSharedKeyAuthorizer("myaccount", "")
	require.Error(t, err)

	_, err = auth.NewSharedKeyAuthorizer("myaccount", "not base64!")
	require.Error(t, err)
}

func TestBearerAuthorizer(t *testing.T) {
	t.Parallel()

	authorizer := auth.NewBearerAuthorizer(auth.NewStaticTokenManager("abc"))

	req, err := http.NewRequest(http.MethodGet, "https://myaccount.batch.azure.com/jobs", nil)
	require.NoError(t, err)

	require.NoError(t, authorizer.Authorize(context.Background(), req))
	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
}

type fakeCredential struct {
	calls  int
	scopes []string
	err    error
}

func (c *fakeCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	c.calls++
	c.scopes = options.Scopes

	if c.err != nil {
		return azcore.AccessToken{}, c.err
	}

	return azcore.AccessToken{Token: "azure-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func TestAzureCredentialTokenManager(t *testing.T) {
	t.Parallel()

	t.Run("caches credential tokens", func(t *testing.T) {
		t.Parallel()

		credential := &fakeCredential{}
		manager := auth.NewAzureCredentialTokenManager(credential)

		for range 2 {
			token, err := manager.GetToken(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "azure-token", token)
		}

		assert.Equal(t, 1, credential.calls)
		assert.Equal(t, []string{"https://batch.core.windows.net//.default"}, credential.scopes)

		require.NoError(t, manager.RefreshToken(context.Background()))
		assert.Equal(t, 2, credential.calls)
	})

	t.Run("propagates credential errors", func(t *testing.T) {
		t.Parallel()

		credential := &fakeCredential{err: errors.New("no identity")}
		manager := auth.NewAzureCredentialTokenManager(credential)

		_, err := manager.GetToken(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no identity")
	})
}

type memoryPersister struct {
	batchURL string
	token    string
	saves    int
}

func (p *memoryPersister) UpdateAccessToken(batchURL, token string, expiresAt time.Time) error {
	p.batchURL = batchURL
	p.token = token
	p.saves++

	return nil
}

func TestConfigTokenManager(t *testing.T) {
	t.Parallel()

	t.Run("persists new tokens once", func(t *testing.T) {
		t.Parallel()

		persister := &memoryPersister{}
		manager := auth.NewConfigTokenManager(
			auth.NewAzureCredentialTokenManager(&fakeCredential{}),
			persister, "https://acct.batch.azure.com", "", time.Time{},
		)

		for range 2 {
			token, err := manager.GetToken(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "azure-token", token)
		}

		assert.Equal(t, 1, persister.saves)
		assert.Equal(t, "azure-token", persister.token)
		assert.Equal(t, "https://acct.batch.azure.com", persister.batchURL)
		assert.False(t, manager.GetTokenExpiry().IsZero())
	})

	t.Run("serves a persisted token without fetching", func(t *testing.T) {
		t.Parallel()

		credential := &fakeCredential{}
		persister := &memoryPersister{}
		manager := auth.NewConfigTokenManager(
			auth.NewAzureCredentialTokenManager(credential),
			persister, "https://acct.batch.azure.com", "saved-token", time.Now().Add(time.Hour),
		)

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "saved-token", token)
		assert.Equal(t, 0, credential.calls)
		assert.Equal(t, 0, persister.saves)
	})
}
