package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProvider(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateUnified(); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateProvider() error {
	if c.Provider.SocketTimeout <= 0 {
		return errors.New("provider.socket_timeout must be positive")
	}
	if c.Provider.ProbeTimeout <= 0 {
		return errors.New("provider.probe_timeout must be positive")
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.MaxRetries < 1 {
		return errors.New("fetch.max_retries must be at least 1")
	}
	if c.Fetch.RetryDelayMS < 0 {
		return errors.New("fetch.retry_delay_ms must not be negative")
	}
	if c.Fetch.PoolSize < 1 {
		return errors.New("fetch.pool_size must be at least 1")
	}
	return nil
}

func (c *Config) validateUnified() error {
	if c.Unified.BranchTimeout <= 0 {
		return errors.New("unified.branch_timeout must be positive")
	}
	return nil
}

func (c *Config) validateDefaults() error {
	if c.Defaults.AudioBitrate <= 0 {
		return errors.New("defaults.audio_bitrate must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
