package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Engine constants
const (
	EngineSQLite  = "sqlite3" // in-process, github.com/mattn/go-sqlite3
	EnginePureGo  = "sqlite"  // in-process, modernc.org/sqlite
	EngineDuckDB  = "duckdb"  // duckdb CLI subprocess
	DefaultEngine = EngineSQLite
)

// Defaults
const (
	DefaultFileName        = "wrapped.yaml"
	DefaultWindowStart     = "2025-01-01"
	DefaultTopContactLimit = 10
	DefaultTopEmojiLimit   = 5
	DefaultDuckDBBinary    = "duckdb"
	WindowLayout           = "2006-01-02"
)

// Environment overrides
const (
	EnvDBPath      = "WRAPPED_DB_PATH"
	EnvEngine      = "WRAPPED_ENGINE"
	EnvDuckDBBin   = "WRAPPED_DUCKDB_BIN"
	EnvWindowStart = "WRAPPED_WINDOW_START"
)

// Config represents the report configuration.
type Config struct {
	DBPath          string            `yaml:"db_path"`
	Engine          string            `yaml:"engine"`     // sqlite3, sqlite or duckdb
	DuckDBBin       string            `yaml:"duckdb_bin"` // client binary for the duckdb engine
	WindowStart     string            `yaml:"window_start"`
	Overrides       map[string]string `yaml:"overrides"`    // identifier -> display name
	Skip            []string          `yaml:"skip"`         // identifiers never reported
	MustInclude     []string          `yaml:"must_include"` // identifiers always reported if they have messages
	TopContactLimit int               `yaml:"top_contact_limit"`
	TopEmojiLimit   int               `yaml:"top_emoji_limit"`
	ContactsOutput  string            `yaml:"contacts_output"` // contacts JSON file, empty to skip
	EmojiOutput     string            `yaml:"emoji_output"`    // emoji JSON file, empty to skip
	Verbose         bool              `yaml:"verbose"`
}

// Default returns a config with every default applied.
func Default() *Config {
	return &Config{
		Engine:          DefaultEngine,
		DuckDBBin:       DefaultDuckDBBinary,
		WindowStart:     DefaultWindowStart,
		Overrides:       map[string]string{},
		TopContactLimit: DefaultTopContactLimit,
		TopEmojiLimit:   DefaultTopEmojiLimit,
	}
}

// Load reads the YAML config at path over the defaults, then applies .env and
// environment overrides. An empty path tries wrapped.yaml in the working
// directory and silently falls back to defaults when it is absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	_ = godotenv.Load(".env")
	cfg.applyEnv()

	if cfg.Overrides == nil {
		cfg.Overrides = map[string]string{}
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		c.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvEngine)); v != "" {
		c.Engine = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDuckDBBin)); v != "" {
		c.DuckDBBin = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvWindowStart)); v != "" {
		c.WindowStart = v
	}
}

// Save writes cfg as YAML to path.
func Save(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Window parses WindowStart as a UTC date.
func (c *Config) Window() (time.Time, error) {
	t, err := time.Parse(WindowLayout, strings.TrimSpace(c.WindowStart))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid window_start %q (want YYYY-MM-DD): %w", c.WindowStart, err)
	}
	return t, nil
}

// Validate checks the options that cannot be fixed up silently.
func (c *Config) Validate() error {
	switch c.Engine {
	case EngineSQLite, EnginePureGo, EngineDuckDB:
	default:
		return fmt.Errorf("unknown engine %q (want %s, %s or %s)", c.Engine, EngineSQLite, EnginePureGo, EngineDuckDB)
	}
	if _, err := c.Window(); err != nil {
		return err
	}
	if c.TopContactLimit < 0 {
		return fmt.Errorf("top_contact_limit must not be negative, got %d", c.TopContactLimit)
	}
	if c.TopEmojiLimit < 0 {
		return fmt.Errorf("top_emoji_limit must not be negative, got %d", c.TopEmojiLimit)
	}
	return nil
}
