package service

import "context"

// AnalyticsCache defines the interface for short-lived caching of computed
// analytics payloads. Implementations store opaque JSON bytes.
type AnalyticsCache interface {
	// Get retrieves a cached payload. The boolean reports a cache hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a payload under the key with the implementation's TTL.
	Set(ctx context.Context, key string, payload []byte) error

	// Invalidate drops every cached payload for the given business.
	Invalidate(ctx context.Context, businessKey string) error
}
