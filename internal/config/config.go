// Package config loads service configuration from the environment and an
// optional JSON file, and holds the admin passphrase and session settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults applied when neither the environment nor the config file sets a value.
const (
	DefaultPort           = 8080
	DefaultLocalStorePath = "data/vibetank.db"
	DefaultChatModel      = "gemini-2.0-flash-lite-001"
)

// placeholderValue is what an unset variable renders as when a deploy
// template interpolates it into a string.
const placeholderValue = "undefined"

// Config represents the service configuration.
// All fields are optional; missing values use defaults.
type Config struct {
	Port int `json:"port,omitempty"`

	// Remote document store
	RemoteDatabaseURL string `json:"remote_database_url,omitempty"` // PostgreSQL connection URL
	RemoteDatabaseKey string `json:"remote_database_key,omitempty"` // Access credential, sent as the connection password

	// Local slot store
	LocalStorePath string `json:"local_store_path,omitempty"`

	// Admin
	AdminPassword string `json:"admin_password,omitempty"` // Default shared passphrase; empty disables login

	// Chat proxy
	ChatAPIKey string `json:"chat_api_key,omitempty"` // Gemini API key
	ChatModel  string `json:"chat_model,omitempty"`

	// Behavior
	CORSOrigin string `json:"cors_origin,omitempty"`
	Verbose    bool   `json:"verbose,omitempty"` // Debug logging
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:           DefaultPort,
		LocalStorePath: DefaultLocalStorePath,
		ChatModel:      DefaultChatModel,
		CORSOrigin:     "*",
	}
}

// FromEnv reads configuration from environment variables.
// Unset variables leave the matching field empty.
func FromEnv() (Config, error) {
	cfg := Config{
		RemoteDatabaseURL: os.Getenv("REMOTE_DATABASE_URL"),
		RemoteDatabaseKey: os.Getenv("REMOTE_DATABASE_KEY"),
		LocalStorePath:    os.Getenv("LOCAL_STORE_PATH"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		ChatAPIKey:        os.Getenv("GOOGLE_GENERATIVE_AI_API_KEY"),
		ChatModel:         os.Getenv("CHAT_MODEL"),
		CORSOrigin:        os.Getenv("CORS_ORIGIN"),
	}
	if cfg.ChatAPIKey == "" {
		cfg.ChatAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if verboseStr := os.Getenv("LOG_VERBOSE"); verboseStr != "" {
		verbose, err := strconv.ParseBool(verboseStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_VERBOSE: %v", err)
		}
		cfg.Verbose = verbose
	}

	return cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: environment first, then the
// optional file at path, then Defaults.
func Load(path string) (Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	cfg = cfg.MergeWithDefaults(Defaults())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.LocalStorePath == "" {
		return fmt.Errorf("config error: 'local_store_path' is required")
	}
	if c.RemoteDatabaseURL != "" && !isPlaceholder(c.RemoteDatabaseURL) &&
		!strings.HasPrefix(c.RemoteDatabaseURL, "postgres://") &&
		!strings.HasPrefix(c.RemoteDatabaseURL, "postgresql://") {
		return fmt.Errorf("config error: 'remote_database_url' must be a postgres:// URL")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.RemoteDatabaseURL == "" {
		result.RemoteDatabaseURL = defaults.RemoteDatabaseURL
	}
	if result.RemoteDatabaseKey == "" {
		result.RemoteDatabaseKey = defaults.RemoteDatabaseKey
	}
	if result.LocalStorePath == "" {
		result.LocalStorePath = defaults.LocalStorePath
	}
	if result.AdminPassword == "" {
		result.AdminPassword = defaults.AdminPassword
	}
	if result.ChatAPIKey == "" {
		result.ChatAPIKey = defaults.ChatAPIKey
	}
	if result.ChatModel == "" {
		result.ChatModel = defaults.ChatModel
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: either source can switch it on
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// IsRemoteConfigured reports whether both the remote URL and credential
// are set to real values.
func (c *Config) IsRemoteConfigured() bool {
	return !isPlaceholder(c.RemoteDatabaseURL) && !isPlaceholder(c.RemoteDatabaseKey)
}

// ChatConfigured reports whether the chat proxy has a credential.
func (c *Config) ChatConfigured() bool {
	return !isPlaceholder(c.ChatAPIKey)
}

func isPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == placeholderValue
}
