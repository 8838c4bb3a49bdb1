package configs

import (
	"net/url"
	"time"
)

// Dashboard configures the dashboard web view. APIBaseURL points at the
// campaign API the view reads from and writes to.
type Dashboard struct {
	Port           uint16        `env:"PORT" envDefault:"3000"`
	APIBaseURL     url.URL       `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	// RowsPerPage is the initial page size; must be 5, 10 or 20.
	RowsPerPage int `env:"ROWS_PER_PAGE" envDefault:"10"`
	// ShutdownTimeout bounds the graceful stop of the dashboard server.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
