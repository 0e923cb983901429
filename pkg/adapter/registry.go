package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Factory builds an unconnected adapter.
type Factory func(*slog.Logger) Adapter

// Info describes a registered adapter type.
type Info struct {
	Name        string
	Description string
	// ReadOnly adapters serve lookups only; seeds cannot be loaded into them.
	ReadOnly bool
}

// RegisterOption sets metadata on a registration.
type RegisterOption func(*Info)

// WithDescription sets the one-line description shown by the version command.
func WithDescription(desc string) RegisterOption {
	return func(i *Info) { i.Description = desc }
}

// ReadOnly marks the adapter type as lookup-only.
func ReadOnly() RegisterOption {
	return func(i *Info) { i.ReadOnly = true }
}

type registration struct {
	info    Info
	factory Factory
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]registration)
)

// Register adds an adapter factory under a case-insensitive name.
// Called by adapter implementations in their init() functions.
func Register(name string, factory Factory, opts ...RegisterOption) {
	key := strings.ToLower(name)
	info := Info{Name: key}
	for _, opt := range opts {
		opt(&info)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[key] = registration{info: info, factory: factory}
}

func lookup(name string) (registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	reg, ok := registry[strings.ToLower(name)]
	return reg, ok
}

// Get retrieves an adapter factory by name.
func Get(name string) (Factory, bool) {
	reg, ok := lookup(name)
	return reg.factory, ok
}

// Describe returns the metadata of a registered adapter type.
func Describe(name string) (Info, bool) {
	reg, ok := lookup(name)
	return reg.info, ok
}

// IsReadOnly reports whether the named adapter type refuses seeding.
// Unknown names are not read-only.
func IsReadOnly(name string) bool {
	info, ok := Describe(name)
	return ok && info.ReadOnly
}

// NewAdapter creates a new adapter instance based on config type.
// A nil logger is replaced with a discard logger.
func NewAdapter(cfg Config, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("adapter type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{
			Type:      cfg.Type,
			Available: ListAdapters(),
		}
	}
	return factory(DiscardLogger(logger)), nil
}

// ListAdapters returns all registered adapter names (sorted).
func ListAdapters() []string {
	infos := Registered()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

// Registered returns the metadata of every registered adapter, sorted by name.
func Registered() []Info {
	registryMu.RLock()
	defer registryMu.RUnlock()
	infos := make([]Info, 0, len(registry))
	for _, reg := range registry {
		infos = append(infos, reg.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// IsRegistered checks if an adapter type is registered.
func IsRegistered(name string) bool {
	_, ok := lookup(name)
	return ok
}

// UnknownAdapterError is returned when an unknown adapter type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q (available: %s); check target.type in pingerdash.yaml",
		e.Type, strings.Join(e.Available, ", "))
}
