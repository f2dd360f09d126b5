package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/fivetwenty-io/batch-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrNoToken             = errors.New("no access token available")
	ErrNoCredentials       = errors.New("no valid credentials available")
	ErrRefreshNotSupported = errors.New("token refresh not supported")
)

// OAuth2Config configures the client credentials grant against Microsoft Entra ID.
type OAuth2Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	// TokenURL overrides the endpoint derived from TenantID.
	TokenURL string
	Scopes   []string
	// HTTPClient is used for token requests when set.
	HTTPClient *http.Client
}

// OAuth2TokenManager obtains tokens with the client credentials grant and caches them until expiry.
type OAuth2TokenManager struct {
	config *OAuth2Config
	store  *TokenStore
	mutex  sync.Mutex
}

// NewOAuth2TokenManager creates a token manager for config.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	return &OAuth2TokenManager{
		config: config,
		store:  NewTokenStore(),
	}
}

// NewEntraTokenManager creates a manager for a service principal with the Batch scope.
func NewEntraTokenManager(tenantID, clientID, clientSecret string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TenantID:     tenantID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     EntraTokenURL(constants.AADAuthorityHost, tenantID),
		Scopes:       []string{constants.BatchScope},
	})
}

// EntraTokenURL returns the v2 token endpoint of tenantID at authority.
func EntraTokenURL(authority, tenantID string) string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimSuffix(authority, "/"), tenantID)
}

// GetToken returns a valid access token, fetching a new one when the cached token expired.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// another caller may have refreshed while we waited
	token = m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	err := m.fetchLocked(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken forces a token refresh.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.fetchLocked(ctx)
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

func (m *OAuth2TokenManager) fetchLocked(ctx context.Context) error {
	if m.config.ClientID == "" || m.config.ClientSecret == "" {
		return ErrNoCredentials
	}

	tokenURL := m.config.TokenURL
	if tokenURL == "" {
		tokenURL = EntraTokenURL(constants.AADAuthorityHost, m.config.TenantID)
	}

	scopes := m.config.Scopes
	if len(scopes) == 0 {
		scopes = []string{constants.BatchScope}
	}

	ccConfig := clientcredentials.Config{
		ClientID:     m.config.ClientID,
		ClientSecret: m.config.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       scopes,
	}

	if m.config.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.config.HTTPClient)
	}

	oauthToken, err := ccConfig.Token(ctx)
	if err != nil {
		return fmt.Errorf("client credentials token request failed: %w", err)
	}

	m.store.Set(&Token{
		AccessToken:  oauthToken.AccessToken,
		TokenType:    oauthToken.TokenType,
		RefreshToken: oauthToken.RefreshToken,
		ExpiresIn:    int(oauthToken.ExpiresIn),
		ExpiresAt:    oauthToken.Expiry,
	})

	return nil
}
