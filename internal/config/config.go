package config

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Sender   SenderConfig   `mapstructure:"sender"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds the RPC HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	PoolMin        int32         `mapstructure:"pool_min"`
	PoolMax        int32         `mapstructure:"pool_max"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// StorageConfig selects the recipient store backend.
type StorageConfig struct {
	// Backend is "postgres" (production) or "memory" (development, tests).
	Backend string `mapstructure:"backend"`
}

// AuthConfig holds the handoff protocol configuration.
type AuthConfig struct {
	// SigningSecret is base64 and must decode to at least 32 bytes.
	// The first 32 decoded bytes are the AES-256 key; the same secret
	// signs handoff tokens.
	SigningSecret string        `mapstructure:"signing_secret"`
	BaseDomain    string        `mapstructure:"base_domain"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
}

// SenderConfig holds message sender configuration.
type SenderConfig struct {
	// Kind is "telegram" or "stdout".
	Kind        string        `mapstructure:"kind"`
	BotToken    string        `mapstructure:"bot_token"`
	Endpoint    string        `mapstructure:"endpoint"`
	SendTimeout time.Duration `mapstructure:"send_timeout"`
}

// DispatchConfig holds delivery queue and worker configuration.
type DispatchConfig struct {
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"` // stdout (default), file
	FilePath  string `mapstructure:"file_path"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
	MaxFiles  int    `mapstructure:"max_files"`
}

// signingKeySize is the AES-256 key length the signing secret must cover.
const signingKeySize = 32

// Load reads configuration from the given config directory path.
// It looks for a file named "config.yaml" in that directory.
// Environment variables with prefix NOTIFY_RELAY_ override file values.
// For example, NOTIFY_RELAY_AUTH_SIGNING_SECRET overrides auth.signing_secret.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.SetEnvPrefix("NOTIFY_RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration invariants that must hold before startup.
func (c *Config) Validate() error {
	if _, err := c.SigningKey(); err != nil {
		return err
	}
	return nil
}

// SigningKey decodes the configured signing secret and returns the 32-byte
// AES-256 key derived from it. A secret shorter than 32 bytes after decoding
// is a fatal configuration error.
func (c *Config) SigningKey() ([]byte, error) {
	if c.Auth.SigningSecret == "" {
		return nil, fmt.Errorf("auth.signing_secret is required")
	}

	decoded, err := base64.StdEncoding.DecodeString(c.Auth.SigningSecret)
	if err != nil {
		return nil, fmt.Errorf("auth.signing_secret is not valid base64: %w", err)
	}
	if len(decoded) < signingKeySize {
		return nil, fmt.Errorf("auth.signing_secret decodes to %d bytes, need at least %d", len(decoded), signingKeySize)
	}

	return decoded[:signingKeySize], nil
}
