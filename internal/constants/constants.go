package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Batch service protocol values.
const (
	// DefaultAPIVersion is the Batch REST API version sent when none is configured.
	DefaultAPIVersion = "2024-07-01.20.0"

	// DefaultAcceptLanguage is sent as Accept-Language when none is configured.
	DefaultAcceptLanguage = "en-US"

	// DefaultUserAgent identifies the client library.
	DefaultUserAgent = "batch-client-go/1.0"

	// BatchScope is the AAD scope for the Batch data plane.
	BatchScope = "https://batch.core.windows.net//.default"

	// AADAuthorityHost is the default Microsoft Entra authority.
	AADAuthorityHost = "https://login.microsoftonline.com"

	// ContentTypeJSON is the Content-Type used for request bodies.
	ContentTypeJSON = "application/json; odata=minimalmetadata; charset=utf-8"
)

// Header names used on the wire.
const (
	HeaderClientRequestID       = "client-request-id"
	HeaderReturnClientRequestID = "return-client-request-id"
	HeaderOcpDate               = "ocp-date"
	HeaderRequestID             = "request-id"
	HeaderAcceptLanguage        = "Accept-Language"
	HeaderAuthorization         = "Authorization"
	HeaderContentType           = "Content-Type"
	HeaderUserAgent             = "User-Agent"
	HeaderAccept                = "Accept"
	HeaderIfMatch               = "If-Match"
	HeaderETag                  = "ETag"
)

// Query parameter names.
const (
	QueryAPIVersion = "api-version"
	QueryFilter     = "$filter"
	QuerySelect     = "$select"
	QueryExpand     = "$expand"
	QueryMaxResults = "maxresults"
	QueryTimeout    = "timeout"
	QueryRecursive  = "recursive"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second
)

// Concurrency and batching limits.
const (
	// DefaultConcurrencyLimit limits concurrent operations.
	DefaultConcurrencyLimit = 3
)

// Time intervals and delays.
const (
	// DefaultPollInterval is used for polling operations.
	DefaultPollInterval = 2 * time.Second

	// MaxPollInterval caps the exponential poll interval.
	MaxPollInterval = 30 * time.Second

	// DefaultPollTimeout bounds state polling.
	DefaultPollTimeout = 15 * time.Minute

	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second
)

// Cache defaults.
const (
	// DefaultCacheSize is the default number of memory cache entries.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default lifetime of a cached response.
	DefaultCacheTTL = 30 * time.Second

	// DefaultNATSBucket is the default JetStream KV bucket.
	DefaultNATSBucket = "batch_client_cache"
)

// Circuit breaker defaults.
const (
	CircuitBreakerThreshold        = 5
	CircuitBreakerTimeout          = 30 * time.Second
	CircuitBreakerSuccessThreshold = 2
)

// State and status constants.
const (
	StatusClosed   = "closed"
	StatusOpen     = "open"
	StatusHalfOpen = "half-open"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// TimeDisplayFormat is used when rendering timestamps in tables.
	TimeDisplayFormat = "2006-01-02 15:04:05"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
