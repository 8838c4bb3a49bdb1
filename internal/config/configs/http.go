package configs

import "time"

// HTTP defines configuration for the API server. Port is the only
// required knob; the rest tune CORS, rate limiting and shutdown.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`

	// CORSAllowedOrigins lists origins allowed to call the API from a
	// browser. "*" allows any origin.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// RateLimitRequests is the number of requests a single client IP may
	// make per RateLimitWindow.
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimitDisabled bool          `env:"RATE_LIMIT_DISABLED" envDefault:"false"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
