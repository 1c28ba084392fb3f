package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Validate checks the configuration for values the client cannot work with.
func (c Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url %q must be an absolute URL", c.API.BaseURL))
	}
	if c.API.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("api.request_timeout must be >= 0, got %d", c.API.RequestTimeout))
	}
	if c.Deck.FixedSlot < 1 {
		errs = append(errs, fmt.Errorf("deck.fixed_slot must be >= 1, got %d", c.Deck.FixedSlot))
	}
	if c.Deck.Columns < 1 {
		errs = append(errs, fmt.Errorf("deck.columns must be >= 1, got %d", c.Deck.Columns))
	}
	for k := range c.Deck.Labels.ByPosition {
		if n, err := strconv.Atoi(strings.TrimSpace(k)); err != nil || n < 0 {
			errs = append(errs, fmt.Errorf("deck.labels.by_position key %q is not a position", k))
		}
	}
	for k := range c.Deck.Labels.ByID {
		if _, err := strconv.ParseInt(strings.TrimSpace(k), 10, 64); err != nil {
			errs = append(errs, fmt.Errorf("deck.labels.by_id key %q is not a clip id", k))
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	return errors.Join(errs...)
}
