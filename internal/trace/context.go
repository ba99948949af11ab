package trace

import "context"

type requestIDKey struct{}

// WithRequestID returns a context carrying the given request ID, overriding
// any request ID already present.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom extracts the request ID previously attached with
// [WithRequestID]. The second return value is false if no request ID is set.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
