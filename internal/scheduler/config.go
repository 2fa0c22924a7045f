package scheduler

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Config fields are unset. The eviction
// tick is kept well below the keep-alive window so an idle resource is
// released close to the deadline.
const (
	defaultKeepAlive     = 5 * time.Minute
	defaultEvictInterval = 30 * time.Second
)

// Config encapsulates all tunables for Coordinator construction.
type Config struct {
	// KeepAlive is the minimum idle time before the loaded resource is
	// evicted.
	KeepAlive time.Duration
	// EvictInterval is how often the eviction check wakes.
	EvictInterval time.Duration
	// MaxQueueDepth bounds pending requests; 0 means unbounded. When set,
	// submissions beyond the bound are rejected, never silently dropped.
	MaxQueueDepth int
	// Publisher receives lifecycle events. Defaults to a no-op.
	Publisher EventPublisher
	// Logger used by the coordinator and resource manager.
	Logger zerolog.Logger
}

func (c *Config) applyDefaults() {
	if c.KeepAlive <= 0 {
		c.KeepAlive = defaultKeepAlive
	}
	if c.EvictInterval <= 0 {
		c.EvictInterval = defaultEvictInterval
	}
	if c.Publisher == nil {
		c.Publisher = noopPublisher{}
	}
}
