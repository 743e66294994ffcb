package env

import (
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Env)
)

// Define constructs an Env from cfg and registers it under its schema name,
// replacing any earlier definition of the same name. The registered
// instance is shared: every Instance call for the name returns the same Env
// with the same resolution cache.
func Define(cfg Config) (*Env, error) {
	e, err := New(cfg)
	if err != nil {
		return nil, err
	}
	registryMu.Lock()
	registry[e.name] = e
	registryMu.Unlock()
	return e, nil
}

// MustDefine is Define that panics on error. Intended for package-level
// schema definitions.
func MustDefine(cfg Config) *Env {
	e, err := Define(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Instance returns the registered Env for name.
func Instance(name string) (*Env, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := registry[name]
	return e, ok
}

// Instances returns the registered schema names in sorted order.
func Instances() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Undefine removes the registered Env for name.
func Undefine(name string) {
	registryMu.Lock()
	delete(registry, name)
	registryMu.Unlock()
}
