package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultConfigFile is read from the working directory when no explicit
// config path is given.
const DefaultConfigFile = "rasterlab.toml"

// Config holds the settings shared by every subcommand. Values come from the
// defaults, then the TOML file, then RASTERLAB_* environment variables, then
// command line flags.
type Config struct {
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
	OutputDir  string `toml:"output_dir"`
	Precision  int    `toml:"precision"`
	UpdateRepo string `toml:"update_repo"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		LogLevel:   "info",
		LogFormat:  "console",
		OutputDir:  "output",
		Precision:  6,
		UpdateRepo: "Fepozopo/rasterlab",
	}
}

// LoadConfig resolves the configuration. An optional .env file is loaded
// first so it can set RASTERLAB_CONFIG and the override variables. path may
// be empty, in which case $RASTERLAB_CONFIG or DefaultConfigFile is used if
// present.
func LoadConfig(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		if p := os.Getenv("RASTERLAB_CONFIG"); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultConfigFile
		}
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if explicit {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("RASTERLAB_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("RASTERLAB_LOG_FORMAT"); ok && v != "" {
		c.LogFormat = v
	}
	if v, ok := lookup("RASTERLAB_OUTPUT_DIR"); ok && v != "" {
		c.OutputDir = v
	}
	if v, ok := lookup("RASTERLAB_PRECISION"); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid RASTERLAB_PRECISION %q: %w", v, err)
		}
		c.Precision = n
	}
	return nil
}

// Validate checks the settings that have a fixed domain.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	if c.Precision < 0 || c.Precision > 17 {
		return fmt.Errorf("precision must be in [0,17], got %d", c.Precision)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}
