package client

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/batch-client/internal/auth"
	"github.com/fivetwenty-io/batch-client/internal/constants"
	"github.com/fivetwenty-io/batch-client/internal/http"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// Client implements the batch.Client interface.
type Client struct {
	httpClient   *http.Client
	authorizer   auth.Authorizer
	tokenManager auth.TokenManager
	cache        batch.Cache
	baseURL      string
	logger       batch.Logger

	// Resource clients
	pools        *PoolsClient
	jobs         *JobsClient
	tasks        *TasksClient
	certificates *CertificatesClient
	computeNodes *ComputeNodesClient
	files        *FilesClient
}

// createAuthorizer picks the authorizer for config. The token manager is nil for
// shared key and anonymous access.
func createAuthorizer(config *batch.Config) (auth.Authorizer, auth.TokenManager, error) {
	if config.AccountName != "" && config.AccountKey != "" {
		authorizer, err := auth.NewSharedKeyAuthorizer(config.AccountName, config.AccountKey)
		if err != nil {
			return nil, nil, fmt.Errorf("creating shared key authorizer: %w", err)
		}

		return authorizer, nil, nil
	}

	tokenManager, err := createTokenManager(config)
	if err != nil {
		return nil, nil, err
	}

	if tokenManager == nil {
		return auth.AnonymousAuthorizer{}, nil, nil
	}

	if config.TokenPersister != nil && config.AccessToken == "" {
		persisting := auth.NewConfigTokenManager(
			tokenManager, config.TokenPersister, config.BatchURL,
			config.PersistedToken, config.PersistedTokenExpiry,
		)
		persisting.SetLogger(config.Logger)
		tokenManager = persisting
	}

	return auth.NewBearerAuthorizer(tokenManager), tokenManager, nil
}

// createTokenManager creates appropriate token manager based on config.
func createTokenManager(config *batch.Config) (auth.TokenManager, error) {
	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken), nil
	}

	if config.ClientID != "" && config.ClientSecret != "" && (config.TenantID != "" || config.TokenURL != "") {
		return createOAuth2TokenManager(config), nil
	}

	if config.UseAzureCredential {
		manager, err := auth.NewDefaultAzureCredentialTokenManager(config.TenantID)
		if err != nil {
			return nil, fmt.Errorf("creating azure credential: %w", err)
		}

		return manager, nil
	}

	return nil, nil //nolint:nilnil // no authentication configured
}

// createOAuth2TokenManager creates a client credentials token manager.
func createOAuth2TokenManager(config *batch.Config) auth.TokenManager {
	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = auth.EntraTokenURL(constants.AADAuthorityHost, config.TenantID)
	}

	return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
		TenantID:     config.TenantID,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{constants.BatchScope},
	})
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *batch.Config, chain *batch.InterceptorChain) []http.Option {
	httpOpts := []http.Option{
		http.WithAPIVersion(config.APIVersion),
		http.WithAcceptLanguage(config.AcceptLanguage),
		http.WithClientRequestID(!config.DisableClientRequestID),
		http.WithTimeout(config.HTTPTimeout),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if chain.Len() > 0 {
		httpOpts = append(httpOpts, http.WithInterceptors(chain))
	}

	return httpOpts
}

// createInterceptors builds the built-in interceptor chain followed by config.Interceptors.
func createInterceptors(config *batch.Config) (*batch.InterceptorChain, error) {
	chain := batch.NewInterceptorChain()

	if config.CircuitBreaker != nil {
		breaker := batch.NewCircuitBreaker(config.CircuitBreaker)
		chain.AddRequestInterceptor(batch.CircuitBreakerRequestInterceptor(breaker))
		chain.AddResponseInterceptor(batch.CircuitBreakerResponseInterceptor(breaker))
	}

	if config.RequestsPerSecond > 0 {
		burst := max(int(config.RequestsPerSecond), 1)
		chain.AddRequestInterceptor(batch.RateLimitInterceptor(config.RequestsPerSecond, burst))
	}

	if config.MeterProvider != nil {
		metrics, err := batch.NewOTelMetrics(config.MeterProvider)
		if err != nil {
			return nil, fmt.Errorf("creating metrics: %w", err)
		}

		chain.AddRequestInterceptor(batch.MetricsRequestInterceptor())
		chain.AddResponseInterceptor(batch.OTelMetricsInterceptor(metrics))
	}

	if config.Logger != nil && !config.Debug {
		chain.AddRequestInterceptor(batch.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(batch.LoggingResponseInterceptor(config.Logger))
	}

	chain.Append(config.Interceptors)

	return chain, nil
}

// New creates a new Batch client.
func New(ctx context.Context, config *batch.Config) (*Client, error) {
	if config == nil {
		return nil, batch.ErrConfigRequired
	}

	if config.BatchURL == "" {
		return nil, batch.ErrBatchURLRequired
	}

	authorizer, tokenManager, err := createAuthorizer(config)
	if err != nil {
		return nil, err
	}

	return newClient(ctx, config, authorizer, tokenManager)
}

// NewWithAuthorizer creates a new Batch client that signs requests with authorizer.
func NewWithAuthorizer(ctx context.Context, config *batch.Config, authorizer auth.Authorizer) (*Client, error) {
	if config == nil {
		return nil, batch.ErrConfigRequired
	}

	if config.BatchURL == "" {
		return nil, batch.ErrBatchURLRequired
	}

	return newClient(ctx, config, authorizer, nil)
}

func newClient(ctx context.Context, config *batch.Config, authorizer auth.Authorizer, tokenManager auth.TokenManager) (*Client, error) {
	chain, err := createInterceptors(config)
	if err != nil {
		return nil, err
	}

	var cache batch.Cache = batch.NewNoOpCache()

	if config.Cache != nil {
		cache, err = batch.NewCacheFromConfig(ctx, config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating cache: %w", err)
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = batch.NoopLogger{}
	}

	client := &Client{
		httpClient:   http.NewClient(config.BatchURL, authorizer, createHTTPClientOptions(config, chain)...),
		authorizer:   authorizer,
		tokenManager: tokenManager,
		cache:        cache,
		baseURL:      config.BatchURL,
		logger:       logger,
	}

	// Initialize resource clients
	client.initializeResourceClients(config.Cache.TTL(), config.Cache.ETags())

	return client, nil
}

// GetTokenManager returns the token manager for this client, or nil for shared key and anonymous access.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// Cache returns the response cache.
func (c *Client) Cache() batch.Cache {
	return c.cache
}

// BaseURL returns the account endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if closer, ok := c.cache.(interface{ Close() }); ok {
		closer.Close()
	}
}

// Resource client accessors

// Pools implements batch.Client.Pools.
func (c *Client) Pools() batch.PoolsClient {
	return c.pools
}

// Jobs implements batch.Client.Jobs.
func (c *Client) Jobs() batch.JobsClient {
	return c.jobs
}

// Tasks implements batch.Client.Tasks.
func (c *Client) Tasks() batch.TasksClient {
	return c.tasks
}

// Certificates implements batch.Client.Certificates.
func (c *Client) Certificates() batch.CertificatesClient {
	return c.certificates
}

// ComputeNodes implements batch.Client.ComputeNodes.
func (c *Client) ComputeNodes() batch.ComputeNodesClient {
	return c.computeNodes
}

// Files implements batch.Client.Files.
func (c *Client) Files() batch.FilesClient {
	return c.files
}

// initializeResourceClients initializes all resource-specific clients over one invoker.
func (c *Client) initializeResourceClients(ttl time.Duration, etags bool) {
	inv := &invoker{
		http:   c.httpClient,
		cache:  c.cache,
		ttl:    ttl,
		etags:  etags,
		logger: c.logger,
	}

	c.pools = NewPoolsClient(inv)
	c.jobs = NewJobsClient(inv)
	c.tasks = NewTasksClient(inv)
	c.certificates = NewCertificatesClient(inv)
	c.computeNodes = NewComputeNodesClient(inv)
	c.files = NewFilesClient(inv)
}
