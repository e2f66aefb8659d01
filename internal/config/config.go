// Package config loads application configuration from a YAML file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds every setting the application reads at startup. It maps
// one-to-one to configs/config.yaml.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Ollama OllamaConfig `mapstructure:"ollama"`
	Index  IndexConfig  `mapstructure:"index"`
	Watch  WatchConfig  `mapstructure:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// OllamaConfig holds settings for the local Ollama runtime serving both the
// chat model and the embedding model.
type OllamaConfig struct {
	BaseURL      string  `mapstructure:"base_url"`
	Model        string  `mapstructure:"model"`
	EmbedModel   string  `mapstructure:"embed_model"`
	MaxNewTokens int     `mapstructure:"max_new_tokens"`
	Temperature  float64 `mapstructure:"temperature"`
}

// IndexConfig holds vector index settings.
type IndexConfig struct {
	Dir  string `mapstructure:"dir"`
	TopK int    `mapstructure:"top_k"`
}

// WatchConfig enables drop-in ingestion from a watched directory.
type WatchConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Load reads the YAML file at path and returns the parsed configuration
// with defaults applied for anything left unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.model", "llama2:7b-chat")
	v.SetDefault("ollama.embed_model", "all-minilm")
	v.SetDefault("ollama.max_new_tokens", 512)
	v.SetDefault("ollama.temperature", 0.5)
	v.SetDefault("index.dir", "vectorstore/db")
	v.SetDefault("index.top_k", 4)
	v.SetDefault("watch.dir", "data")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
