package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorMessage is the localized message of a Batch error.
type ErrorMessage struct {
	Lang  string `json:"lang,omitempty"  yaml:"lang,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// ErrorDetail is a key/value pair attached to a Batch error.
type ErrorDetail struct {
	Key   string `json:"key,omitempty"   yaml:"key,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// BatchError is the error body returned by the Batch service.
type BatchError struct {
	Code    string        `json:"code,omitempty"    yaml:"code,omitempty"`
	Message *ErrorMessage `json:"message,omitempty" yaml:"message,omitempty"`
	Values  []ErrorDetail `json:"values,omitempty"  yaml:"values,omitempty"`
}

// Text returns the message value or an empty string.
func (e BatchError) Text() string {
	if e.Message == nil {
		return ""
	}

	return e.Message.Value
}

// Common Batch error codes.
const (
	ErrorCodePoolNotFound        = "PoolNotFound"
	ErrorCodeJobNotFound         = "JobNotFound"
	ErrorCodeTaskNotFound        = "TaskNotFound"
	ErrorCodeNodeNotFound        = "NodeNotFound"
	ErrorCodeCertificateNotFound = "CertificateNotFound"
	ErrorCodeFileNotFound        = "FileNotFound"
	ErrorCodePoolExists          = "PoolExists"
	ErrorCodeJobExists           = "JobExists"
	ErrorCodeTaskExists          = "TaskExists"
	ErrorCodeServerBusy          = "ServerBusy"
)

// ValidationError reports a required parameter that was absent or could not be encoded.
// No request was sent.
type ValidationError struct {
	Operation string
	Parameter string
	// Err is the encoding failure, nil for a missing parameter.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: parameter %q is invalid: %v", e.Operation, e.Parameter, e.Err)
	}

	return fmt.Sprintf("%s: required parameter %q is missing", e.Operation, e.Parameter)
}

// Unwrap returns the encoding failure.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TransportError reports a request that never produced an HTTP response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying network or context error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTransport) hold for every TransportError.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// DecodingError reports a response body or header set that did not match the expected shape.
type DecodingError struct {
	Target     string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *DecodingError) Error() string {
	return fmt.Sprintf("decoding %s (status %d): %v", e.Target, e.StatusCode, e.Err)
}

// Unwrap returns the codec error.
func (e *DecodingError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDecoding) hold for every DecodingError.
func (e *DecodingError) Is(target error) bool {
	return target == ErrDecoding
}

// ServiceError is a non-success status returned by the service together with its decoded payload.
type ServiceError struct {
	StatusCode int
	Payload    BatchError
	RequestID  string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "batch service returned %d", e.StatusCode)

	if e.Payload.Code != "" {
		fmt.Fprintf(&builder, " %s", e.Payload.Code)
	}

	if text := e.Payload.Text(); text != "" {
		fmt.Fprintf(&builder, ": %s", firstLine(text))
	}

	if e.RequestID != "" {
		fmt.Fprintf(&builder, " (request-id: %s)", e.RequestID)
	}

	return builder.String()
}

// Is makes errors.Is(err, ErrService) hold for every ServiceError.
func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

// Error kind sentinels, usable with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrTransport  = errors.New("transport error")
	ErrDecoding   = errors.New("decoding error")
	ErrService    = errors.New("service error")
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrBatchURLRequired     = errors.New("batch account URL is required")
	ErrCircuitBreakerOpen   = errors.New("circuit breaker is open")
	ErrCacheMiss            = errors.New("cache miss")
	ErrCacheDisabled        = errors.New("cache disabled")
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
	ErrUnsupportedOperation = errors.New("unsupported operation type")
	ErrUnsupportedResource  = errors.New("unsupported resource type")
	ErrFutureSettled        = errors.New("future already settled")
	ErrNoMoreItems          = errors.New("no more items")
	ErrForeignNextLink      = errors.New("next link points outside the account")
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsDecoding reports whether err is a DecodingError.
func IsDecoding(err error) bool {
	return errors.Is(err, ErrDecoding)
}

// IsService reports whether err is a ServiceError.
func IsService(err error) bool {
	return errors.Is(err, ErrService)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}

// StatusCode returns the HTTP status carried by a ServiceError or DecodingError, or 0.
func StatusCode(err error) int {
	svcErr := &ServiceError{}
	if errors.As(err, &svcErr) {
		return svcErr.StatusCode
	}

	decErr := &DecodingError{}
	if errors.As(err, &decErr) {
		return decErr.StatusCode
	}

	return 0
}

// ErrorCode returns the Batch error code of a ServiceError, or an empty string.
func ErrorCode(err error) string {
	svcErr := &ServiceError{}
	if errors.As(err, &svcErr) {
		return svcErr.Payload.Code
	}

	return ""
}

// ParseBatchError parses an error body from JSON.
func ParseBatchError(data []byte) (*BatchError, error) {
	var batchErr BatchError

	err := json.Unmarshal(data, &batchErr)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch error: %w", err)
	}

	return &batchErr, nil
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}

	return text
}
