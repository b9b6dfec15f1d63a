package activities

import "context"

type freshDataKey struct{}

// WithFreshData marks ctx so that API clients skip their response caches.
func WithFreshData(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshDataKey{}, true)
}

func FreshDataRequested(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshDataKey{}).(bool)
	return fresh
}
