package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// Factory builds a catalog adapter. A nil logger discards output.
type Factory func(*slog.Logger) Adapter

// ErrNoTargetType is returned by NewAdapter when the target names no adapter.
var ErrNoTargetType = errors.New("catalog target type not specified")

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a catalog adapter available under name. Names are case
// insensitive; registering a name again replaces the earlier factory.
// Adapter packages call it from init, so importing one is enough to make it
// selectable as target.type.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = factory
}

// Get returns the factory registered under name.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[strings.ToLower(name)]
	return f, ok
}

// NewAdapter returns an unconnected adapter for the database cfg targets.
// The caller connects it and reads table metadata through it.
func NewAdapter(cfg core.AdapterConfig, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, ErrNoTargetType
	}
	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{Type: cfg.Type, Available: ListAdapters()}
	}
	return factory(logger), nil
}

// ListAdapters returns the registered names in sorted order.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name selects a catalog adapter.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// UnknownAdapterError is returned when target.type names no registered
// catalog adapter.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	avail := "none"
	if len(e.Available) > 0 {
		avail = strings.Join(e.Available, ", ")
	}
	return fmt.Sprintf("no catalog adapter for target type %q (registered: %s); "+
		"set target.type to one of them or describe the tables with --schema", e.Type, avail)
}
