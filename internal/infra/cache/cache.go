package cache

import "context"

// NoopAnalyticsCache satisfies service.AnalyticsCache without storing anything.
// Used when redis is not configured.
type NoopAnalyticsCache struct{}

// Get always reports a cache miss.
func (NoopAnalyticsCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the payload.
func (NoopAnalyticsCache) Set(_ context.Context, _ string, _ []byte) error {
	return nil
}

// Invalidate is a no-op.
func (NoopAnalyticsCache) Invalidate(_ context.Context, _ string) error {
	return nil
}
