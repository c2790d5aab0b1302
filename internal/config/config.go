package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Discord  DiscordConfig  `mapstructure:"discord"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
}

// ServerConfig contains the HTTP intake and worker pool settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Workers   int    `mapstructure:"workers" validate:"required,gt=0"`
	QueueSize int    `mapstructure:"queue_size" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// StorageConfig selects and configures the object store documents are read from.
type StorageConfig struct {
	Backend   string `mapstructure:"backend" validate:"required,oneof=minio gcs"`
	Endpoint  string `mapstructure:"endpoint" validate:"required_if=Backend minio"`
	AccessKey string `mapstructure:"access_key" validate:"required_if=Backend minio"`
	SecretKey string `mapstructure:"secret_key" validate:"required_if=Backend minio"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket" validate:"required"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Backend        string        `mapstructure:"backend" validate:"required,oneof=gemini vertex"`
	GeminiAPIKey   string        `mapstructure:"gemini_api_key" validate:"required_if=Backend gemini"`
	Project        string        `mapstructure:"project" validate:"required_if=Backend vertex"`
	Location       string        `mapstructure:"location" validate:"required_if=Backend vertex"`
	ModelName      string        `mapstructure:"model_name" validate:"required"`
	PromptDir      string        `mapstructure:"prompt_dir"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gte=0"`
}

// DiscordConfig contains the error reporting channel. Reporting falls back to
// the log when BotToken is empty.
type DiscordConfig struct {
	BotToken  string `mapstructure:"bot_token"`
	ChannelID string `mapstructure:"channel_id" validate:"required_with=BotToken"`
}

// PipelineConfig contains the chunking, deduplication and quota limits.
type PipelineConfig struct {
	ChunkSize         int `mapstructure:"chunk_size" validate:"required,gt=0"`
	FreePlanLimit     int `mapstructure:"free_plan_limit" validate:"gte=0"`
	RecentWindowSize  int `mapstructure:"recent_window_size" validate:"required,gt=0"`
	SummaryPrefixSize int `mapstructure:"summary_prefix_size" validate:"required,gt=0"`
	SummaryInputLimit int `mapstructure:"summary_input_limit" validate:"required,gt=0"`
}
