package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAPIBaseURL  = "http://localhost:8080"
	defaultLogLevel    = "info"
	defaultConfigDir   = ".durian"
	defaultTimeoutSecs = 30
	defaultDebounceMS  = 300
)

type Config struct {
	APIBaseURL     string `mapstructure:"api_base_url"`
	ConfigDir      string `mapstructure:"config_dir"`
	CacheDBPath    string `mapstructure:"cache_db_path"`
	SessionPath    string `mapstructure:"session_path"`
	LogLevel       string `mapstructure:"log_level"`
	LogJSON        bool   `mapstructure:"log_json"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	DebounceMillis int    `mapstructure:"debounce_millis"`
}

// Load resolves the client configuration: defaults, then an optional .env
// file, then an optional config.yaml in the config dir, then DURIAN_*
// environment variables. Command-line flags override on top of this in
// the command layer.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("DURIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_base_url", defaultAPIBaseURL)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_json", false)
	v.SetDefault("config_dir", defaultConfigDir)
	v.SetDefault("timeout_seconds", defaultTimeoutSecs)
	v.SetDefault("debounce_millis", defaultDebounceMS)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := v.GetString("config_dir")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	cfg := &Config{
		APIBaseURL:     v.GetString("api_base_url"),
		ConfigDir:      configDir,
		CacheDBPath:    v.GetString("cache_db_path"),
		SessionPath:    v.GetString("session_path"),
		LogLevel:       v.GetString("log_level"),
		LogJSON:        v.GetBool("log_json"),
		TimeoutSeconds: v.GetInt("timeout_seconds"),
		DebounceMillis: v.GetInt("debounce_millis"),
	}

	if cfg.CacheDBPath == "" {
		cfg.CacheDBPath = filepath.Join(configDir, "cache.db")
	}
	if cfg.SessionPath == "" {
		cfg.SessionPath = filepath.Join(configDir, "session.json")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive")
	}
	if c.DebounceMillis < 0 {
		return fmt.Errorf("debounce_millis must not be negative")
	}
	return nil
}
