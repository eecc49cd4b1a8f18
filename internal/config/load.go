package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Defaults for the generative exchange.
const (
	DefaultRetryMarker     = "SPECIAL INSTRUCTION: think silently if needed."
	DefaultAcknowledgement = "Understood. I will follow your instructions exactly."
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SCRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("settings.backend", "file")
	v.SetDefault("settings.path", "config.json")
	v.SetDefault("settings.default_apiurl", "")
	v.SetDefault("settings.default_model", "")

	v.SetDefault("database.url", "")

	v.SetDefault("llm.timeout_seconds", 60)
	v.SetDefault("llm.max_attempts", 3)
	v.SetDefault("llm.retry_delay_ms", 1000)
	v.SetDefault("llm.retry_marker", DefaultRetryMarker)
	v.SetDefault("llm.acknowledgement", DefaultAcknowledgement)

	v.SetDefault("worker.count", 1)
	v.SetDefault("worker.queue_size", 16)

	v.SetDefault("command.rate_per_second", 1.0)
	v.SetDefault("command.burst", 3)
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if cfg.Settings.Backend == "postgres" && cfg.Database.URL == "" {
		return errors.New("validation failed: database.url is required for the postgres backend")
	}
	return nil
}
