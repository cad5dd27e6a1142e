// Package config loads leapcrit configuration.
//
// Values are layered from defaults, a YAML file, LEAPCRIT_ environment
// variables and explicitly set command-line flags, in that order.
package config

import (
	"time"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// File names searched in the working directory when no file is given.
var FileNames = []string{"leapcrit.yaml", "leapcrit.yml"}

// Default configuration values.
const (
	DefaultDialect        = "ansi"
	DefaultOutput         = "auto" // TTY=text, otherwise markdown
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"
	DefaultConnectTimeout = 10 * time.Second
)

// Output formats accepted by the output key.
var OutputFormats = []string{"auto", "text", "json", "markdown"}

// Config holds all leapcrit configuration.
type Config struct {
	Dialect    string        `koanf:"dialect"`
	SchemaFile string        `koanf:"schema_file"`
	Output     string        `koanf:"output"`
	LogLevel   string        `koanf:"log_level"`
	LogFormat  string        `koanf:"log_format"`
	Target     *TargetConfig `koanf:"target"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// TargetConfig describes the database introspected for catalog metadata.
type TargetConfig struct {
	Type           string            `koanf:"type"` // duckdb, postgres, sqlite, mysql
	Database       string            `koanf:"database"`
	Host           string            `koanf:"host"`
	Port           int               `koanf:"port"`
	User           string            `koanf:"user"`
	Password       string            `koanf:"password"`
	Schema         string            `koanf:"schema"`
	Options        map[string]string `koanf:"options"`
	ConnectTimeout time.Duration     `koanf:"connect_timeout"`
}

// AdapterConfig converts the target into the adapter connection config.
func (t *TargetConfig) AdapterConfig() *core.AdapterConfig {
	return &core.AdapterConfig{
		Type:           t.Type,
		Path:           t.Database,
		Host:           t.Host,
		Port:           t.Port,
		Database:       t.Database,
		Username:       t.User,
		Password:       t.Password,
		Schema:         t.Schema,
		Options:        t.Options,
		ConnectTimeout: t.ConnectTimeout,
	}
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Dialect:   DefaultDialect,
		Output:    DefaultOutput,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

func defaults() map[string]any {
	return map[string]any{
		"dialect":    DefaultDialect,
		"output":     DefaultOutput,
		"log_level":  DefaultLogLevel,
		"log_format": DefaultLogFormat,
	}
}
