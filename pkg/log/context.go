package log

import (
	"context"
	"maps"
)

type contextKey struct{}

// scope is what a request context carries for logging.
type scope struct {
	requestID string
	fields    map[string]any
}

func scopeFrom(ctx context.Context) scope {
	if ctx == nil {
		return scope{}
	}
	s, _ := ctx.Value(contextKey{}).(scope)
	return s
}

// WithRequestID returns ctx tagged with a request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	s := scopeFrom(ctx)
	s.requestID = id
	return context.WithValue(ctx, contextKey{}, s)
}

// RequestIDFromContext returns the request ID of ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).requestID
}

// WithFields returns ctx carrying extra fields for every entry logged with
// it. Fields already on ctx are kept unless overridden.
func WithFields(ctx context.Context, keysAndValues ...any) context.Context {
	s := scopeFrom(ctx)
	fields := make(map[string]any, len(s.fields)+len(keysAndValues)/2)
	maps.Copy(fields, s.fields)
	addPairs(fields, keysAndValues)
	s.fields = fields
	return context.WithValue(ctx, contextKey{}, s)
}

// FieldsFromContext returns the fields carried by ctx. The map must not be
// modified.
func FieldsFromContext(ctx context.Context) map[string]any {
	return scopeFrom(ctx).fields
}
