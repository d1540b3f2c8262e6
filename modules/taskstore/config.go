package taskstore

import "os"

// Backend selects where task rows live.
type Backend string

const (
	// BackendFile stores tasks in a SQLite file on disk.
	BackendFile Backend = "file"
	// BackendMemory stores tasks in an ephemeral in-memory database.
	BackendMemory Backend = "memory"
)

// Config holds taskstore configuration, resolved once at startup.
type Config struct {
	Backend Backend
	Path    string
	Debug   bool
}

// DefaultConfig returns the default taskstore configuration.
func DefaultConfig() Config {
	return Config{
		Backend: BackendFile,
		Path:    "tasks.db",
	}
}

// ConfigFromEnv builds a Config from environment variables:
// TASKS_BACKEND ("file" or "memory"), TASKS_DB_PATH, DB_DEBUG.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if Backend(os.Getenv("TASKS_BACKEND")) == BackendMemory {
		cfg.Backend = BackendMemory
	}
	if path := os.Getenv("TASKS_DB_PATH"); path != "" {
		cfg.Path = path
	}
	cfg.Debug = os.Getenv("DB_DEBUG") == "true"
	return cfg
}

// DSN returns the SQLite data source name for the configured backend.
// The memory backend uses a shared cache so every pooled connection sees
// the same database.
func (c Config) DSN() string {
	if c.Backend == BackendMemory {
		return "file::memory:?cache=shared"
	}
	return c.Path
}
