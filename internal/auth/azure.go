package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/fivetwenty-io/batch-client/internal/constants"
)

// AzureCredentialTokenManager obtains Batch tokens from an azcore credential.
type AzureCredentialTokenManager struct {
	credential azcore.TokenCredential
	scopes     []string
	store      *TokenStore
	mutex      sync.Mutex
}

// NewAzureCredentialTokenManager wraps credential with the Batch scope.
func NewAzureCredentialTokenManager(credential azcore.TokenCredential) *AzureCredentialTokenManager {
	return &AzureCredentialTokenManager{
		credential: credential,
		scopes:     []string{constants.BatchScope},
		store:      NewTokenStore(),
	}
}

// NewDefaultAzureCredentialTokenManager uses the Azure default credential chain
// (environment, workload identity, managed identity, Azure CLI).
func NewDefaultAzureCredentialTokenManager(tenantID string) (*AzureCredentialTokenManager, error) {
	credential, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		TenantID: tenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create default azure credential: %w", err)
	}

	return NewAzureCredentialTokenManager(credential), nil
}

// GetToken returns a cached token or requests a new one from the credential.
func (m *AzureCredentialTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

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

// RefreshToken forces a new token request.
func (m *AzureCredentialTokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.fetchLocked(ctx)
}

// SetToken manually sets the access token.
func (m *AzureCredentialTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, TokenType: "bearer", ExpiresAt: expiresAt})
}

func (m *AzureCredentialTokenManager) fetchLocked(ctx context.Context) error {
	accessToken, err := m.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: m.scopes})
	if err != nil {
		return fmt.Errorf("azure credential token request failed: %w", err)
	}

	m.store.Set(&Token{
		AccessToken: accessToken.Token,
		TokenType:   "bearer",
		ExpiresAt:   accessToken.ExpiresOn,
	})

	return nil
}
