// Package commands implements the leapcrit subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcrit/internal/cli/output"
	"github.com/leapstack-labs/leapcrit/internal/config"
	"github.com/leapstack-labs/leapcrit/pkg/adapter"
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
	"github.com/leapstack-labs/leapcrit/pkg/meta"
)

// ErrNoCatalog is returned when neither a schema file nor a target is configured.
var ErrNoCatalog = errors.New("no catalog configured: set schema_file or target")

type envKey struct{}

// Env is the configuration and logger shared by every command.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
}

// WithEnv stores env in ctx.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// EnvFrom returns the Env stored in ctx, or defaults.
func EnvFrom(ctx context.Context) *Env {
	if ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*Env); ok {
			return env
		}
	}
	return &Env{Config: config.Default(), Logger: slog.New(slog.DiscardHandler)}
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the command's context and
// streams.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	env := EnvFrom(cmd.Context())
	return &CommandContext{
		Cfg:      env.Config,
		Logger:   env.Logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(env.Config.Output)),
	}
}

// Dialect returns the configured dialect.
func (c *CommandContext) Dialect() (*dialect.Dialect, error) {
	return dialect.Lookup(c.Cfg.Dialect)
}

// Catalog loads table metadata from the schema file, or by introspecting the
// target database when no schema file is set.
func (c *CommandContext) Catalog(ctx context.Context) (*meta.Catalog, error) {
	if c.Cfg.SchemaFile != "" {
		cat, err := meta.LoadSchemaFile(c.Cfg.SchemaFile)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("loaded schema file", "path", c.Cfg.SchemaFile)
		return cat, nil
	}
	if c.Cfg.Target == nil {
		return nil, ErrNoCatalog
	}

	cfg := c.Cfg.Target.AdapterConfig()
	a, err := adapter.NewAdapter(*cfg, c.Logger)
	if err != nil {
		return nil, err
	}
	if err := a.Connect(ctx, *cfg); err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Type, err)
	}
	defer func() { _ = a.Close() }()

	cat, err := meta.Load(ctx, meta.NewIntrospected(a, meta.DefaultConcurrency))
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("introspected target", "type", cfg.Type)
	return cat, nil
}
