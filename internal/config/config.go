// Package config loads and validates application configuration.
package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds HTTP server settings.
	Server ServerConfig `yaml:"server"`

	// Dataset holds groundwater dataset settings.
	Dataset DatasetConfig `yaml:"dataset"`

	// LLM holds language model provider settings.
	LLM LLMConfig `yaml:"llm"`

	// LogLevel is the logging level (debug, info, warn, error, fatal).
	LogLevel string `yaml:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the port the API server listens on.
	Port int `yaml:"port"`

	// CORSOrigins lists origins allowed by the CORS middleware.
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatasetConfig holds groundwater dataset settings.
type DatasetConfig struct {
	// Path is the location of the groundwater CSV file.
	Path string `yaml:"path"`
}

// LLMConfig holds language model provider settings.
type LLMConfig struct {
	// Provider selects the model backend: anthropic, gemini, ollama or mock.
	Provider string `yaml:"provider"`

	// Model is the model identifier passed to the provider.
	Model string `yaml:"model"`

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64 `yaml:"temperature"`

	// OllamaBaseURL is the base URL of a local Ollama server.
	OllamaBaseURL string `yaml:"ollama_base_url"`

	// MockScriptPath optionally points to a YAML script for the mock provider.
	MockScriptPath string `yaml:"mock_script_path"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Dataset: DatasetConfig{
			Path: "ingres_one.csv",
		},
		LLM: LLMConfig{
			Provider:    "anthropic",
			MaxTokens:   4096,
			Temperature: 0.0,
		},
		LogLevel: "info",
	}
}

// ApplyEnvOverrides applies environment variable overrides. Secrets are
// only ever read from the environment, never from the config file.
func (c *Config) ApplyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if path := os.Getenv("DATASET_PATH"); path != "" {
		c.Dataset.Path = path
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return NewConfigError("server.port must be between 1 and 65535")
	}

	if c.Dataset.Path == "" {
		return NewConfigError("dataset.path must not be empty")
	}

	switch c.LLM.Provider {
	case "anthropic", "gemini", "ollama", "mock":
	default:
		return NewConfigError("llm.provider must be one of: anthropic, gemini, ollama, mock")
	}

	if c.LLM.MaxTokens < 1 {
		return NewConfigError("llm.max_tokens must be at least 1")
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return NewConfigError("llm.temperature must be between 0 and 2")
	}

	return nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	message string
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

// Error returns the error message.
func (e *ConfigError) Error() string {
	return e.message
}
