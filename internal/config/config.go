// Package config loads the docbot YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the docbot configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	VectorStore VectorStoreConfig `yaml:"vectorstore"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Secret      SecretConfig      `yaml:"secret"`
	Classifier  ClassifierConfig  `yaml:"classifier"`
	Sources     SourcesConfig     `yaml:"sources"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name        string `yaml:"name"`
	HTTPAddr    string `yaml:"http_addr"`
	ShutdownSec int    `yaml:"shutdown_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// VectorStoreConfig selects and configures the documentation vector store.
type VectorStoreConfig struct {
	Driver      string            `yaml:"driver"` // turbopuffer (default), redis
	Turbopuffer TurbopufferConfig `yaml:"turbopuffer"`
	Redis       RedisConfig       `yaml:"redis"`
}

// TurbopufferConfig holds turbopuffer settings.
type TurbopufferConfig struct {
	BaseURL string `yaml:"base_url"`
	TopK    int    `yaml:"top_k"`
}

// RedisConfig holds Redis or Valkey connection settings.
type RedisConfig struct {
	Addrs       []string `yaml:"addrs"`
	Username    string   `yaml:"username"`
	Password    string   `yaml:"password"`
	DB          int      `yaml:"db"`
	IndexPrefix string   `yaml:"index_prefix"`
	TopK        int      `yaml:"top_k"`
}

// EmbeddingConfig holds the query embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// SecretConfig selects where the vector store credential comes from.
type SecretConfig struct {
	Name      string            `yaml:"name"`
	Source    string            `yaml:"source"` // env (default), prefect, nats, redis, static
	EnvPrefix string            `yaml:"env_prefix"`
	Value     string            `yaml:"value"`
	Prefect   PrefectConfig     `yaml:"prefect"`
	NATS      NATSConfig        `yaml:"nats"`
	Redis     SecretRedisConfig `yaml:"redis"`
}

// SecretRedisConfig locates secrets stored as plain Redis keys.
type SecretRedisConfig struct {
	RedisConfig `yaml:",inline"`
	KeyPrefix   string `yaml:"key_prefix"`
}

// PrefectConfig locates the Prefect API holding secret blocks.
type PrefectConfig struct {
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`
}

// NATSConfig locates a JetStream key-value bucket.
type NATSConfig struct {
	URL    string `yaml:"url"`
	Bucket string `yaml:"bucket"`
}

// ClassifierConfig selects the code example classifier.
type ClassifierConfig struct {
	Kind    string `yaml:"kind"` // keyword (default), openai
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// SourcesConfig overrides the documents the tools fetch.
type SourcesConfig struct {
	ReleaseNotesURL string `yaml:"release_notes_url"`
	ExamplesBaseURL string `yaml:"examples_base_url"`
}

var (
	vectorStoreDrivers = []string{"turbopuffer", "redis"}
	secretSources      = []string{"env", "prefect", "nats", "redis", "static"}
	classifierKinds    = []string{"keyword", "openai"}
	logLevels          = []string{"debug", "info", "warn", "error"}
	logFormats         = []string{"console", "json"}
)

// Load reads the YAML file at path. ${VAR} and ${VAR:-default} references
// are replaced from the environment before parsing. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = "docbot"
	}
	if c.Server.ShutdownSec <= 0 {
		c.Server.ShutdownSec = 10
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.VectorStore.Driver == "" {
		c.VectorStore.Driver = "turbopuffer"
	}
	if c.Secret.Name == "" {
		c.Secret.Name = "tpuf-api-key"
	}
	if c.Secret.Source == "" {
		c.Secret.Source = "env"
	}
	if c.Secret.NATS.Bucket == "" {
		c.Secret.NATS.Bucket = "docbot-secrets"
	}
	if c.Classifier.Kind == "" {
		c.Classifier.Kind = "keyword"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %s, got %q", strings.Join(logLevels, ", "), c.Logging.Level)
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format must be one of %s, got %q", strings.Join(logFormats, ", "), c.Logging.Format)
	}
	if !slices.Contains(vectorStoreDrivers, c.VectorStore.Driver) {
		return fmt.Errorf("vectorstore.driver must be one of %s, got %q", strings.Join(vectorStoreDrivers, ", "), c.VectorStore.Driver)
	}
	if c.VectorStore.Driver == "redis" && len(c.VectorStore.Redis.Addrs) == 0 {
		return fmt.Errorf("vectorstore.redis.addrs is required")
	}
	if !slices.Contains(secretSources, c.Secret.Source) {
		return fmt.Errorf("secret.source must be one of %s, got %q", strings.Join(secretSources, ", "), c.Secret.Source)
	}
	switch c.Secret.Source {
	case "prefect":
		if c.Secret.Prefect.APIURL == "" {
			return fmt.Errorf("secret.prefect.api_url is required")
		}
	case "redis":
		if len(c.Secret.Redis.Addrs) == 0 {
			return fmt.Errorf("secret.redis.addrs is required")
		}
	case "static":
		if c.Secret.Value == "" {
			return fmt.Errorf("secret.value is required")
		}
	}
	if !slices.Contains(classifierKinds, c.Classifier.Kind) {
		return fmt.Errorf("classifier.kind must be one of %s, got %q", strings.Join(classifierKinds, ", "), c.Classifier.Kind)
	}
	return nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
