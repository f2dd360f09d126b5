// Package batchclient provides the main entry point for creating Azure Batch clients
package batchclient

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/fivetwenty-io/batch-client/internal/client"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// Environment variables read by NewFromEnvironment.
const (
	EnvBatchEndpoint  = "AZURE_BATCH_ENDPOINT"
	EnvBatchAccount   = "AZURE_BATCH_ACCOUNT"
	EnvBatchAccessKey = "AZURE_BATCH_ACCESS_KEY"
	EnvTenantID       = "AZURE_TENANT_ID"
	EnvClientID       = "AZURE_CLIENT_ID"
	EnvClientSecret   = "AZURE_CLIENT_SECRET"
)

// Client is the client returned by the constructors. Close releases the cache connection.
type Client interface {
	batch.Client

	Close()
}

// New creates a new Azure Batch client. The config is copied; the caller's value is not modified.
func New(ctx context.Context, config *batch.Config) (Client, error) {
	if config == nil {
		return nil, batch.ErrConfigRequired
	}

	if config.BatchURL == "" {
		return nil, batch.ErrBatchURLRequired
	}

	normalized := *config
	normalized.BatchURL = NormalizeURL(config.BatchURL)

	// shared key signatures need the account name; it is the first label of the account host
	if normalized.AccountKey != "" && normalized.AccountName == "" {
		normalized.AccountName = AccountNameFromURL(normalized.BatchURL)
	}

	batchClient, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return batchClient, nil
}

// NormalizeURL trims trailing slashes and adds "https://" when no scheme is present.
func NormalizeURL(endpoint string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// AccountNameFromURL returns the account name of an account endpoint such as
// "https://myaccount.westeurope.batch.azure.com", or an empty string.
func AccountNameFromURL(endpoint string) string {
	parsed, err := url.Parse(NormalizeURL(endpoint))
	if err != nil {
		return ""
	}

	host := parsed.Hostname()
	if host == "" {
		return ""
	}

	name, _, _ := strings.Cut(host, ".")

	return name
}

// NewFromEnvironment creates a client from the AZURE_BATCH_* and AZURE_* service principal
// variables. Without a key or service principal the Azure default credential chain is used.
func NewFromEnvironment(ctx context.Context) (Client, error) {
	config := &batch.Config{
		BatchURL:     os.Getenv(EnvBatchEndpoint),
		AccountName:  os.Getenv(EnvBatchAccount),
		AccountKey:   os.Getenv(EnvBatchAccessKey),
		TenantID:     os.Getenv(EnvTenantID),
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
	}

	if config.AccountKey == "" && (config.ClientID == "" || config.ClientSecret == "") {
		config.UseAzureCredential = true
	}

	return New(ctx, config)
}

// NewWithEndpoint creates a new client with just an account endpoint (no auth).
func NewWithEndpoint(ctx context.Context, endpoint string) (Client, error) {
	return New(ctx, &batch.Config{
		BatchURL: endpoint,
	})
}

// NewWithToken creates a new client with an account endpoint and access token.
func NewWithToken(ctx context.Context, endpoint, token string) (Client, error) {
	return New(ctx, &batch.Config{
		BatchURL:    endpoint,
		AccessToken: token,
	})
}

// NewWithSharedKey creates a new client that signs requests with the account key.
func NewWithSharedKey(ctx context.Context, endpoint, accountName, accountKey string) (Client, error) {
	return New(ctx, &batch.Config{
		BatchURL:    endpoint,
		AccountName: accountName,
		AccountKey:  accountKey,
	})
}

// NewWithClientCredentials creates a new client for a Microsoft Entra service principal.
func NewWithClientCredentials(ctx context.Context, endpoint, tenantID, clientID, clientSecret string) (Client, error) {
	return New(ctx, &batch.Config{
		BatchURL:     endpoint,
		TenantID:     tenantID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}
