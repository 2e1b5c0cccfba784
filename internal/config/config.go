package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Solver  SolverConfig  `mapstructure:"solver"`
	Repos   ReposConfig   `mapstructure:"repos"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PathsConfig contains path-related configuration
type PathsConfig struct {
	DataDir string `mapstructure:"data_dir"`
	DBFile  string `mapstructure:"db_file"`
	LogFile string `mapstructure:"log_file"`
}

// SolverConfig holds the request defaults; command line flags override them
type SolverConfig struct {
	BestEffort      bool     `mapstructure:"best_effort"`
	SkipInteractive bool     `mapstructure:"skip_interactive"`
	FromRepos       []string `mapstructure:"from_repos"`
}

// ReposConfig contains repository defaults
type ReposConfig struct {
	// DefaultPriority is given to repositories that do not declare one
	DefaultPriority int `mapstructure:"default_priority"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Color string `mapstructure:"color"`
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("toml")

	// Add config paths
	homeDir, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "pkgreq"))
	}
	v.AddConfigPath(".")

	return load(v)
}

// LoadFile loads configuration from an explicit file
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	// Set defaults
	setDefaults(v)

	// Environment variable overrides
	v.SetEnvPrefix("PKGREQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Expand paths
	cfg.Paths.DataDir = expandPath(cfg.Paths.DataDir)
	cfg.Paths.DBFile = expandPath(cfg.Paths.DBFile)
	cfg.Paths.LogFile = expandPath(cfg.Paths.LogFile)

	return &cfg, nil
}

// Validate checks values that viper cannot type-check
func (c *Config) Validate() error {
	switch c.Logging.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("logging.color: unknown mode %q", c.Logging.Color)
	}
	if c.Repos.DefaultPriority < 0 {
		return fmt.Errorf("repos.default_priority: must not be negative, got %d", c.Repos.DefaultPriority)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = os.Getenv("HOME")
	}
	if homeDir == "" {
		homeDir = "."
	}

	dataDir := filepath.Join(homeDir, ".local", "share", "pkgreq")
	v.SetDefault("paths.data_dir", dataDir)
	v.SetDefault("paths.db_file", filepath.Join(dataDir, "pkgreq.db"))
	v.SetDefault("paths.log_file", filepath.Join(dataDir, "pkgreq.log"))

	v.SetDefault("solver.best_effort", false)
	v.SetDefault("solver.skip_interactive", false)
	v.SetDefault("solver.from_repos", []string{})

	v.SetDefault("repos.default_priority", 99)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.color", "auto")
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand ~
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	// Expand environment variables
	path = os.ExpandEnv(path)

	return path
}
