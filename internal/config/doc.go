// Package config handles configuration loading, parsing, and validation
// from environment variables (QUIZGEN_ prefix) and an optional YAML file.
// It provides type-safe access to the settings of the worker: HTTP intake,
// database, object storage, language model, Discord reporting and the
// chunking/quota limits of the generation pipeline.
package config
