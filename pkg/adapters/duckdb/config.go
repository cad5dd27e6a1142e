package duckdb

import (
	"fmt"
	"net/url"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds DuckDB-specific configuration.
// Parsed from adapter.Config.Options using mapstructure.
type Params struct {
	// AccessMode is "automatic", "read_only" or "read_write".
	AccessMode string `mapstructure:"access_mode"`

	// Threads limits the worker threads DuckDB uses; zero keeps the default.
	Threads int `mapstructure:"threads"`

	// MemoryLimit such as "1GB".
	MemoryLimit string `mapstructure:"memory_limit"`
}

// ParseParams decodes adapter options into Params. Option values are strings,
// so numeric fields are decoded weakly.
func ParseParams(options map[string]string) (*Params, error) {
	p := &Params{}
	if len(options) == 0 {
		return p, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(options); err != nil {
		return nil, fmt.Errorf("invalid duckdb options: %w", err)
	}
	return p, nil
}

// dsn appends the params to path as DuckDB configuration query arguments,
// sorted by key.
func (p *Params) dsn(path string) string {
	q := url.Values{}
	if p.AccessMode != "" {
		q.Set("access_mode", p.AccessMode)
	}
	if p.Threads > 0 {
		q.Set("threads", fmt.Sprint(p.Threads))
	}
	if p.MemoryLimit != "" {
		q.Set("memory_limit", p.MemoryLimit)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
