package configs

// Fallback configures the read-only campaign snapshot served while the
// database is unreachable.
type Fallback struct {
	// File is a JSON array of campaigns. When it is missing or unreadable
	// the built-in sample campaigns are used.
	File string `env:"FILE" envDefault:"fallback_data.json"`
}
