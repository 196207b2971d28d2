package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Auth    AuthConfig    `mapstructure:"auth"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Storage StorageConfig `mapstructure:"storage"`
	Tasks   TasksConfig   `mapstructure:"tasks"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ReadTimeout    int      `mapstructure:"read_timeout_seconds"`
	WriteTimeout   int      `mapstructure:"write_timeout_seconds"`
}

// LogConfig controls log verbosity.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig controls token issuance and the demo user table.
type AuthConfig struct {
	JWTSecret       string            `mapstructure:"jwt_secret"`
	Issuer          string            `mapstructure:"issuer"`
	AccessTokenTTL  int               `mapstructure:"access_token_ttl_minutes"`
	RefreshTokenTTL int               `mapstructure:"refresh_token_ttl_hours"`
	Users           map[string]string `mapstructure:"users"`
}

// LLMConfig points at the external chat-completions provider.
type LLMConfig struct {
	APIKey           string `mapstructure:"api_key"`
	BaseURL          string `mapstructure:"base_url"`
	Model            string `mapstructure:"model"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
	MaxInputTokens   int    `mapstructure:"max_input_tokens"`
	MaxResponseBytes int64  `mapstructure:"max_response_bytes"`
}

// StorageConfig controls where uploads and saved proposals live.
type StorageConfig struct {
	UploadDir      string `mapstructure:"upload_dir"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

// TasksConfig bounds the in-memory task registry.
type TasksConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"`
	MaxEntries int `mapstructure:"max_entries"`
}

// AccessTokenDuration returns the access token lifetime.
func (c AuthConfig) AccessTokenDuration() time.Duration {
	return time.Duration(c.AccessTokenTTL) * time.Minute
}

// RefreshTokenDuration returns the refresh token lifetime.
func (c AuthConfig) RefreshTokenDuration() time.Duration {
	return time.Duration(c.RefreshTokenTTL) * time.Hour
}

// Timeout returns the outbound LLM call timeout.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TaskTTL returns the registry record lifetime.
func (c TasksConfig) TaskTTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5174"})
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 300)

	v.SetDefault("log.level", "info")

	v.SetDefault("auth.jwt_secret", "your-secret-key")
	v.SetDefault("auth.issuer", "bidwriter")
	v.SetDefault("auth.access_token_ttl_minutes", 30)
	v.SetDefault("auth.refresh_token_ttl_hours", 168)
	v.SetDefault("auth.users", map[string]string{"admin": "admin123"})

	v.SetDefault("llm.base_url", "https://api.deepseek.com/v1")
	v.SetDefault("llm.model", "deepseek-chat")
	v.SetDefault("llm.timeout_seconds", 120)
	v.SetDefault("llm.max_input_tokens", 24000)
	v.SetDefault("llm.max_response_bytes", int64(8*1024*1024))

	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.max_upload_bytes", int64(16*1024*1024))

	v.SetDefault("tasks.ttl_minutes", 120)
	v.SetDefault("tasks.max_entries", 4096)
}

// Load reads configuration from the optional file path, the default search
// locations, and BIDWRITER_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bidwriter")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BIDWRITER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		// Missing default config file is fine; env + defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
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

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must not be empty")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl_minutes must be positive")
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm.base_url must not be empty")
	}
	if c.Tasks.MaxEntries <= 0 {
		return fmt.Errorf("tasks.max_entries must be positive")
	}
	return nil
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
