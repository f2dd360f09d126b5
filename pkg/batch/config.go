package batch

import (
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// TokenPersister saves bearer tokens so a later process can reuse them.
type TokenPersister interface {
	UpdateAccessToken(batchURL, token string, expiresAt time.Time) error
}

// Config represents client configuration for building a batch client.
//
// # Authentication precedence
//
// batchclient.New picks the first credential that is fully configured:
//  1. AccountName + AccountKey: every request is signed with the account's shared key.
//  2. AccessToken: used directly as a static Bearer token.
//  3. TenantID + ClientID + ClientSecret: Microsoft Entra client_credentials grant
//     for the Batch scope. TokenURL overrides the tenant token endpoint.
//  4. UseAzureCredential: the Azure default credential chain (environment,
//     workload identity, managed identity, Azure CLI).
//  5. No credentials: requests are sent without authentication.
//
// # Timeouts and retries
//
// Per-request deadlines should be set on the context passed to each call.
// HTTPTimeout bounds a single round trip. Retries are off unless RetryMax is set;
// when enabled they apply to connection failures and 429/5xx responses.
type Config struct {
	// Required fields

	// BatchURL is the account endpoint, e.g. "https://myaccount.westeurope.batch.azure.com".
	// batchclient.New trims a trailing slash and adds "https://" when no scheme is present.
	BatchURL string

	// Authentication options (provide one)

	// AccountName is the Batch account name used in shared key signatures.
	AccountName string

	// AccountKey is the base64 account key used with AccountName.
	AccountKey string

	// AccessToken, if set, is sent as a Bearer token.
	AccessToken string

	// TenantID is the Microsoft Entra tenant of the service principal.
	TenantID string

	// ClientID is the application (client) ID of the service principal.
	ClientID string

	// ClientSecret is the secret of the service principal.
	ClientSecret string

	// TokenURL overrides the OAuth2 token endpoint derived from TenantID.
	TokenURL string

	// UseAzureCredential enables the Azure default credential chain.
	UseAzureCredential bool

	// TokenPersister receives every new token obtained by the client credentials grant
	// or the Azure credential chain.
	TokenPersister TokenPersister

	// PersistedToken is a token saved by an earlier TokenPersister call. It is used until
	// PersistedTokenExpiry instead of requesting a new one.
	PersistedToken       string
	PersistedTokenExpiry time.Time

	// Protocol options

	// APIVersion is sent as the api-version query parameter. Defaults to constants.DefaultAPIVersion.
	APIVersion string

	// AcceptLanguage is sent on every request. Defaults to "en-US".
	AcceptLanguage string

	// DisableClientRequestID stops the client from generating client-request-id headers.
	DisableClientRequestID bool

	// Transport options

	// HTTPTimeout bounds a single round trip.
	HTTPTimeout time.Duration

	// RetryMax is the number of transport retries. Zero disables retries.
	RetryMax int

	// RetryWaitMin is the minimum wait between retries.
	RetryWaitMin time.Duration

	// RetryWaitMax is the maximum wait between retries.
	RetryWaitMax time.Duration

	// RequestsPerSecond enables client-side rate limiting when positive.
	RequestsPerSecond float64

	// UserAgent overrides the default User-Agent.
	UserAgent string

	// Optional features

	// Debug logs every request and response at debug level.
	Debug bool

	// Logger receives client logs. Nil disables logging.
	Logger Logger

	// Cache enables caching of single-resource reads. Nil disables caching.
	Cache *CacheConfig

	// MeterProvider records request metrics when set.
	MeterProvider metric.MeterProvider

	// CircuitBreaker rejects requests after repeated failures when set.
	CircuitBreaker *CircuitBreakerConfig

	// Interceptors run after the built-in interceptors.
	Interceptors *InterceptorChain
}
