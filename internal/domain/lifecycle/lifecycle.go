// Package lifecycle holds shared bounds for startup and shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds fx start/stop hooks such as database pings and server shutdown.
const DefaultTimeout = 10 * time.Second
