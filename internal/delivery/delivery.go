// Package delivery defines the contract every transport adapter implements.
package delivery

import "context"

// Delivery is a serving surface (HTTP, worker, ...) managed by the fx lifecycle.
type Delivery interface {
	// Serve blocks until the server stops or the context is cancelled.
	Serve(ctx context.Context) error
}
