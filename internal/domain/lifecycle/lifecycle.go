// Package lifecycle holds shared timing for fx start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds OnStart/OnStop hooks that talk to external systems.
const DefaultTimeout = 5 * time.Second
