// Package lifecycle holds shared timeouts for startup and shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle operations such as server shutdown and
// database pings.
const DefaultTimeout = 10 * time.Second
