package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if err := c.validateExtract(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateExtract() error {
	if c.Extract.CRF < 0 || c.Extract.CRF > 51 {
		return errors.New("extract.crf must be between 0 and 51")
	}
	if c.Extract.BeforeSeconds < 0 {
		return errors.New("extract.before_seconds must not be negative")
	}
	if c.Extract.AfterSeconds < 0 {
		return errors.New("extract.after_seconds must not be negative")
	}
	return nil
}
