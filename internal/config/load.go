package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "QUIZGEN"

// keys lists every configuration key so that environment variables are bound
// even when no config file mentions them.
var keys = []string{
	"server.port", "server.log_level", "server.workers", "server.queue_size",
	"database.url",
	"storage.backend", "storage.endpoint", "storage.access_key", "storage.secret_key",
	"storage.region", "storage.bucket", "storage.use_ssl",
	"llm.backend", "llm.gemini_api_key", "llm.project", "llm.location",
	"llm.model_name", "llm.prompt_dir", "llm.request_timeout",
	"discord.bot_token", "discord.channel_id",
	"pipeline.chunk_size", "pipeline.free_plan_limit", "pipeline.recent_window_size",
	"pipeline.summary_prefix_size", "pipeline.summary_input_limit",
}

// Load configuration from environment variables and an optional config.yaml
// in the working directory. Environment variables take precedence over values
// from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory for config.yaml and tolerates its absence.
func LoadFile(path string) (*Config, error) {
	return load(path, func(cfg *Config) error {
		return validator.New().Struct(cfg)
	})
}

// LoadDatabase loads the same sources as LoadFile but validates only the
// server and database sections. Commands that never touch storage or the
// model, such as migrations, use it.
func LoadDatabase(path string) (*Config, error) {
	return load(path, func(cfg *Config) error {
		validate := validator.New()
		if err := validate.Struct(cfg.Server); err != nil {
			return err
		}
		return validate.Struct(cfg.Database)
	})
}

func load(path string, validate func(*Config) error) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.workers", 2)
	v.SetDefault("server.queue_size", 100)

	v.SetDefault("storage.backend", "minio")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.use_ssl", true)

	v.SetDefault("llm.backend", "gemini")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.request_timeout", 60*time.Second)

	v.SetDefault("pipeline.chunk_size", 1100)
	v.SetDefault("pipeline.free_plan_limit", 5)
	v.SetDefault("pipeline.recent_window_size", 6)
	v.SetDefault("pipeline.summary_prefix_size", 600)
	v.SetDefault("pipeline.summary_input_limit", 2000)
}
