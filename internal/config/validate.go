package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapcrit/pkg/adapter"
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration against the registered dialects and
// adapters. Callers must import the dialect and adapter packages they need.
func (c *Config) Validate() error {
	var errs []error
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		errs = append(errs, fmt.Errorf("dialect: %w", err))
	}
	if !slices.Contains(OutputFormats, strings.ToLower(c.Output)) {
		errs = append(errs, fmt.Errorf("output: unknown format %q (want one of %s)", c.Output, strings.Join(OutputFormats, ", ")))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log_format: unknown format %q", c.LogFormat))
	}
	if c.Target != nil {
		if err := c.Target.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("target: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks that the target names a registered adapter.
func (t *TargetConfig) Validate() error {
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}
	if t.Port < 0 || t.Port > 65535 {
		return fmt.Errorf("port %d out of range", t.Port)
	}
	return nil
}
