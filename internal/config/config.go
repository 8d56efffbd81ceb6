// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Server    ServerConfig
	Discovery DiscoveryConfig
	History   HistoryConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds local storage configuration.
type DataConfig struct {
	// BasePath holds the badger database and the archive search index.
	BasePath string
}

// ServerConfig holds the local dashboard API configuration.
type ServerConfig struct {
	Port           string        // default: 8787
	ReadTimeout    time.Duration // default: 15s
	WriteTimeout   time.Duration // default: 45s, must outlive a discovery call
	IdleTimeout    time.Duration // default: 60s
	AllowedOrigins []string      // CORS origins for the browser dashboard
}

// DiscoveryConfig holds generative-search provider configuration.
type DiscoveryConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout bounds one discovery round-trip; expiry counts as a provider failure.
	Timeout time.Duration
}

// HistoryConfig holds search history configuration.
type HistoryConfig struct {
	// DebounceInterval is the quiet period after the last query change before it is logged.
	DebounceInterval time.Duration
}

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(os.Args[1:])
}

// LoadConfigFrom loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfigFrom(args []string) (*Config, error) {
	fs := flag.NewFlagSet("signaldeck", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Base path for local data")

	serverPort := fs.String("port", "", "Server port (default: 8787)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 45s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	allowedOrigins := fs.String("allowed-origins", "", "Comma separated CORS origins")

	apiKey := fs.String("api-key", "", "Generative search API key")
	model := fs.String("model", "", "Generative search model")
	baseURL := fs.String("provider-url", "", "Generative search API base URL")
	discoveryTimeout := fs.String("discovery-timeout", "", "Discovery call timeout (default: 20s)")

	debounce := fs.String("history-debounce", "", "Quiet period before a query is logged (default: 600ms)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Missing .env is fine; existing environment variables are never overwritten.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Server: ServerConfig{
			Port:           getConfigValue(*serverPort, "SERVER_PORT", "8787"),
			AllowedOrigins: splitList(getConfigValue(*allowedOrigins, "ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		},
		Discovery: DiscoveryConfig{
			APIKey:  getConfigValue(*apiKey, "GEMINI_API_KEY", os.Getenv("API_KEY")),
			Model:   getConfigValue(*model, "GEMINI_MODEL", "gemini-3-flash-preview"),
			BaseURL: getConfigValue(*baseURL, "GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		},
	}

	durations := []struct {
		flagValue, envKey, def string
		dest                   *time.Duration
	}{
		{*readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{*writeTimeout, "SERVER_WRITE_TIMEOUT", "45s", &cfg.Server.WriteTimeout},
		{*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{*discoveryTimeout, "DISCOVERY_TIMEOUT", "20s", &cfg.Discovery.Timeout},
		{*debounce, "HISTORY_DEBOUNCE", "600ms", &cfg.History.DebounceInterval},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flagValue, d.envKey, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, raw, err)
		}
		*d.dest = parsed
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	if c.Discovery.Timeout <= 0 {
		return errors.New("discovery timeout must be positive")
	}

	if c.History.DebounceInterval <= 0 {
		return errors.New("history debounce interval must be positive")
	}

	// An empty API key is allowed: discovery then degrades to empty results.

	return nil
}

// DatabasePath returns the badger directory under the data path.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Data.BasePath, "db")
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute, defaulting to ~/SignalDeck.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	expanded, err := expandPath(c.Data.BasePath, filepath.Join(homeDir, "SignalDeck"))
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// splitList splits a comma separated value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
