package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"clipdeck/internal/api"
	"clipdeck/internal/config"
	"clipdeck/internal/logging"
	"clipdeck/internal/trace"
	"clipdeck/internal/viewer"
)

// commandContext carries flags and lazily built dependencies shared by all
// subcommands.
type commandContext struct {
	configFlag  string
	baseURLFlag string
	verbose     bool

	config     *config.Config
	configPath string
	sessionID  string
	logger     *zap.Logger
	tracer     *trace.Provider
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, path, _, err := config.Load(c.configFlag)
	if err != nil {
		return nil, err
	}
	if c.baseURLFlag != "" {
		cfg.API.BaseURL = c.baseURLFlag
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	c.config = &cfg
	c.configPath = path
	return c.config, nil
}

// setup builds the logger and tracer. Interactive sessions log to the
// configured file; everything else logs to stderr.
func (c *commandContext) setup(ctx context.Context, interactive bool) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	c.sessionID = logging.NewSessionID()

	opts := logging.Options{Level: cfg.Logging.Level, Verbose: c.verbose}
	if interactive {
		opts.File = cfg.Logging.File
	}
	if c.logger, err = logging.New(opts, c.sessionID); err != nil {
		return err
	}
	if c.tracer, err = trace.Setup(ctx, c.sessionID); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	c.logger.Debug("config loaded",
		zap.String("path", c.configPath),
		zap.String("base_url", cfg.API.BaseURL),
		zap.Int("fixed_slot", cfg.Deck.FixedSlot),
		zap.Bool("fanout", cfg.Deck.Fanout),
	)
	return nil
}

func (c *commandContext) close() {
	if c.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.tracer.Shutdown(ctx); err != nil && c.logger != nil {
			c.logger.Warn("trace shutdown", zap.Error(err))
		}
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func (c *commandContext) client() *api.Client {
	return api.New(c.config.API.BaseURL,
		api.WithTimeout(c.config.Timeout()),
		api.WithLogger(c.logger),
		api.WithTracer(c.tracer.Tracer()),
	)
}

func (c *commandContext) viewer(fanout bool) *viewer.Viewer {
	return viewer.New(c.client(), viewer.Options{
		FixedSlot: c.config.Deck.FixedSlot,
		Fanout:    fanout,
		Overrides: c.config.Overrides(),
		Logger:    c.logger,
		Tracer:    c.tracer.Tracer(),
	})
}
