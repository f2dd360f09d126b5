package batch

import "context"

type ifMatchKey struct{}

// WithIfMatch makes mutating calls made with ctx conditional on the resource ETag.
// The service answers 412 Precondition Failed when the resource changed since etag was read.
// Reads ignore the condition.
func WithIfMatch(ctx context.Context, etag string) context.Context {
	return context.WithValue(ctx, ifMatchKey{}, etag)
}

// IfMatchFromContext returns the ETag set with WithIfMatch, or an empty string.
func IfMatchFromContext(ctx context.Context) string {
	etag, _ := ctx.Value(ifMatchKey{}).(string)

	return etag
}
