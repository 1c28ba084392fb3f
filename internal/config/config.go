package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"clipdeck/internal/composition"
)

// API contains connection settings for the composition service.
type API struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"` // seconds, 0 = no timeout
}

// Labels is the explicit button label table.
// TOML keys are strings, so positions and ids are parsed on use.
type Labels struct {
	ByPosition map[string]string `toml:"by_position"`
	ByID       map[string]string `toml:"by_id"`
}

// Deck contains connect protocol and layout settings.
type Deck struct {
	FixedSlot int    `toml:"fixed_slot"`
	Fanout    bool   `toml:"fanout"`
	Columns   int    `toml:"columns"`
	Labels    Labels `toml:"labels"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Config is the top-level clipdeck configuration.
type Config struct {
	API     API     `toml:"api"`
	Deck    Deck    `toml:"deck"`
	Logging Logging `toml:"logging"`
}

// Timeout returns the API request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.RequestTimeout) * time.Second
}

// Overrides converts the label table into composition overrides.
// Keys that are not integers are rejected by Validate, so they are skipped here.
func (c Config) Overrides() composition.Overrides {
	o := composition.Overrides{
		ByPosition: make(map[int]string, len(c.Deck.Labels.ByPosition)),
		ByID:       make(map[int64]string, len(c.Deck.Labels.ByID)),
	}
	for k, v := range c.Deck.Labels.ByPosition {
		if n, err := strconv.Atoi(strings.TrimSpace(k)); err == nil {
			o.ByPosition[n] = v
		}
	}
	for k, v := range c.Deck.Labels.ByID {
		if n, err := strconv.ParseInt(strings.TrimSpace(k), 10, 64); err == nil {
			o.ByID[n] = v
		}
	}
	return o
}

// DefaultPath returns ~/.config/clipdeck/config.toml, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "clipdeck", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".config", "clipdeck", "config.toml"), nil
}

// Load reads the configuration at path (or the default path when empty).
// A missing file is not an error. It returns the resolved path and whether
// the file existed.
func Load(path string) (Config, string, bool, error) {
	cfg := Default()

	resolved := path
	if resolved == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, "", false, err
		}
		resolved = p
	}
	resolved, err := ExpandPath(resolved)
	if err != nil {
		return Config{}, "", false, err
	}

	exists := false
	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		exists = true
		// Label tables replace the defaults rather than merging with them.
		cfg.Deck.Labels = Labels{}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, resolved, true, fmt.Errorf("parse config %q: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, resolved, false, fmt.Errorf("read config %q: %w", resolved, err)
	}

	// .env is optional; values already in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, resolved, exists, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg)

	if cfg.Logging.File, err = ExpandPath(cfg.Logging.File); err != nil {
		return Config{}, resolved, exists, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, resolved, exists, err
	}
	return cfg, resolved, exists, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CLIPDECK_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("CLIPDECK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) (string, error) {
	if p == "" || !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
