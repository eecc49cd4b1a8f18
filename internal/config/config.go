package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Settings SettingsConfig `mapstructure:"settings" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Worker   WorkerConfig   `mapstructure:"worker" validate:"required"`
	Command  CommandConfig  `mapstructure:"command" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// SettingsConfig selects where the assistant's settings document and notes live.
type SettingsConfig struct {
	// Backend is "file" (JSON document on disk, notes in memory) or "postgres".
	Backend string `mapstructure:"backend" validate:"required,oneof=file postgres"`
	// Path of the JSON document for the file backend.
	Path string `mapstructure:"path" validate:"required_if=Backend file"`
	// DefaultAPIURL and DefaultModel override the built-in defaults used to
	// seed and back-fill the settings document. Empty keeps the built-in value.
	DefaultAPIURL string `mapstructure:"default_apiurl" validate:"omitempty,url"`
	DefaultModel  string `mapstructure:"default_model"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// LLMConfig contains settings for the generative-language exchange that are
// not part of the user-editable settings document.
type LLMConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=1"`
	MaxAttempts    int `mapstructure:"max_attempts" validate:"gte=1"`
	RetryDelayMS   int `mapstructure:"retry_delay_ms" validate:"gte=0"`
	// RetryMarker is the response substring that asks for a silent retry.
	RetryMarker string `mapstructure:"retry_marker" validate:"required"`
	// Acknowledgement is the model turn inserted after the system prompt.
	Acknowledgement string `mapstructure:"acknowledgement" validate:"required"`
}

// WorkerConfig sizes the background pool that runs generate commands.
type WorkerConfig struct {
	Count     int `mapstructure:"count" validate:"gte=1"`
	QueueSize int `mapstructure:"queue_size" validate:"gte=1"`
}

// CommandConfig throttles the host-facing command surface.
type CommandConfig struct {
	RatePerSecond float64 `mapstructure:"rate_per_second" validate:"gt=0"`
	Burst         int     `mapstructure:"burst" validate:"gte=1"`
}
