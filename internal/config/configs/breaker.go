package configs

import "time"

// Breaker configures the circuit breaker in front of the campaign store.
type Breaker struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// ConsecutiveFailures opens the breaker after this many store
	// unavailability errors in a row.
	ConsecutiveFailures uint32 `env:"CONSECUTIVE_FAILURES" envDefault:"3"`
	// MaxRequests is the number of trial requests let through while half-open.
	MaxRequests uint32 `env:"MAX_REQUESTS" envDefault:"1"`
	// Interval resets failure counts while closed. Zero never resets.
	Interval time.Duration `env:"INTERVAL" envDefault:"1m"`
	// Timeout is how long the breaker stays open before probing the store.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}
