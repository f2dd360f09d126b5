package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister saves tokens between CLI invocations.
type ConfigPersister interface {
	UpdateAccessToken(batchURL, token string, expiresAt time.Time) error
}

// ConfigTokenManager wraps another TokenManager and persists every new token it hands out.
type ConfigTokenManager struct {
	inner           TokenManager
	configPersister ConfigPersister
	batchURL        string
	logger          batch.Logger
	mutex           sync.Mutex
	lastToken       string
	lastExpiry      time.Time
}

// NewConfigTokenManager creates a persisting token manager. A non-empty initialToken that has
// not expired is served first without contacting the token endpoint.
func NewConfigTokenManager(inner TokenManager, configPersister ConfigPersister, batchURL, initialToken string, initialExpiry time.Time) *ConfigTokenManager {
	if initialToken != "" && (&Token{AccessToken: initialToken, ExpiresAt: initialExpiry}).Valid() {
		inner.SetToken(initialToken, initialExpiry)
	}

	return &ConfigTokenManager{
		inner:           inner,
		configPersister: configPersister,
		batchURL:        batchURL,
		logger:          batch.NoopLogger{},
		lastToken:       initialToken,
		lastExpiry:      initialExpiry,
	}
}

// SetLogger sets the logger that receives persistence failures. A nil logger discards them.
func (m *ConfigTokenManager) SetLogger(logger batch.Logger) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if logger == nil {
		logger = batch.NoopLogger{}
	}

	m.logger = logger
}

// GetToken returns a valid access token and persists it when it changed.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	token, err := m.inner.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("getting access token: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if token != m.lastToken {
		m.lastToken = token
		m.lastExpiry = m.expiryOf()
		m.persistLocked()
	}

	return token, nil
}

// RefreshToken forces a token refresh and persists the result.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	err := m.inner.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("refreshing access token: %w", err)
	}

	token, err := m.inner.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("getting access token: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.lastToken = token
	m.lastExpiry = m.expiryOf()
	m.persistLocked()

	return nil
}

// SetToken manually sets the access token.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.inner.SetToken(token, expiresAt)
	m.lastToken = token
	m.lastExpiry = expiresAt
}

// GetTokenExpiry returns the expiry of the last token handed out.
func (m *ConfigTokenManager) GetTokenExpiry() time.Time {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.lastExpiry
}

type storeHolder interface {
	tokenStore() *TokenStore
}

func (m *OAuth2TokenManager) tokenStore() *TokenStore          { return m.store }
func (m *AzureCredentialTokenManager) tokenStore() *TokenStore { return m.store }
func (m *StaticTokenManager) tokenStore() *TokenStore          { return m.store }

func (m *ConfigTokenManager) expiryOf() time.Time {
	holder, ok := m.inner.(storeHolder)
	if !ok {
		return time.Time{}
	}

	token := holder.tokenStore().Get()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

func (m *ConfigTokenManager) persistLocked() {
	err := m.persistToken()
	if err != nil {
		m.logger.Warn("failed to persist access token", map[string]interface{}{
			"batch_url": m.batchURL,
			"error":     err.Error(),
		})
	}
}

func (m *ConfigTokenManager) persistToken() error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.UpdateAccessToken(m.batchURL, m.lastToken, m.lastExpiry)
	if err != nil {
		return fmt.Errorf("failed to update access token: %w", err)
	}

	return nil
}
