package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Auth backends.
const (
	AuthBackendJSON   = "json"
	AuthBackendSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	PageSize    int    `json:"pageSize"`
	RecentLimit int    `json:"recentLimit"`
	SeedPath    string `json:"seedPath"`
	AuthBackend string `json:"authBackend"`
	AuthDelayMs int    `json:"authDelayMs"`
	LogLevel    string `json:"logLevel"`
	LogFile     string `json:"logFile"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		PageSize:    12,
		RecentLimit: 10,
		AuthBackend: AuthBackendJSON,
		AuthDelayMs: 1000,
		LogLevel:    "info",
	}
}

// AuthDelay returns the mock auth delay.
func (c Config) AuthDelay() time.Duration {
	return time.Duration(c.AuthDelayMs) * time.Millisecond
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.PageSize <= 0 {
		c.PageSize = defaults.PageSize
	}
	if c.RecentLimit <= 0 {
		c.RecentLimit = defaults.RecentLimit
	}
	if c.AuthBackend != AuthBackendJSON && c.AuthBackend != AuthBackendSQLite {
		c.AuthBackend = defaults.AuthBackend
	}
	if c.AuthDelayMs < 0 {
		c.AuthDelayMs = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// ApplyEnv overrides fields from STASH_* environment variables. When
// envPath is given, that .env file is loaded first; otherwise ./.env is
// loaded if it exists. Variables already set in the environment win.
func (c *Config) ApplyEnv(envPath ...string) error {
	if len(envPath) > 0 {
		if err := godotenv.Load(envPath[0]); err != nil {
			return fmt.Errorf("load env file %s: %w", envPath[0], err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	c.PageSize = getEnvAsInt("STASH_PAGE_SIZE", c.PageSize)
	c.SeedPath = getEnvAsString("STASH_SEED_PATH", c.SeedPath)
	c.AuthBackend = getEnvAsString("STASH_AUTH_BACKEND", c.AuthBackend)
	c.LogLevel = getEnvAsString("STASH_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnvAsString("STASH_LOG_FILE", c.LogFile)
	c.applyDefaults()

	return nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ConfigDir returns ~/.config/stash.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "stash"), nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/stash/config.json
func DefaultConfigFilePath() (string, error) {
	return inConfigDir("config.json")
}

// DefaultLogFilePath returns the default log path: ~/.config/stash/stash.log
func DefaultLogFilePath() (string, error) {
	return inConfigDir("stash.log")
}

// DefaultAuthPath returns where the given auth backend keeps its state:
// ~/.config/stash/auth.json or ~/.config/stash/auth.db
func DefaultAuthPath(backend string) (string, error) {
	if backend == AuthBackendSQLite {
		return inConfigDir("auth.db")
	}
	return inConfigDir("auth.json")
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
