package generate

import (
	"errors"
	"fmt"
	"maps"
	"math/rand"
	"slices"
)

// ErrUnknownGenerator is returned when a name has no registered algorithm.
var ErrUnknownGenerator = errors.New("unknown generator")

// CreatorFunc returns a generator value.
type CreatorFunc func() Generator

// ConfigParserFunc turns a raw stage into a ProcessConfig.
type ConfigParserFunc func(raw RawConfig, rng *rand.Rand) (ProcessConfig, error)

// SizerFunc reports the map size a stage requires, when it requires one.
type SizerFunc func(raw RawConfig, env *Env) (w, h int, ok bool)

type entry struct {
	create CreatorFunc
	parse  ConfigParserFunc
	size   SizerFunc
}

// Registry maps algorithm names to their behaviors. Build one at startup and
// hand it to the driver; it is not safe for concurrent registration.
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// NewDefaultRegistry returns a registry holding the built-in algorithms.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}

// Register adds an algorithm. A nil parser selects ParseConfig; size may be
// nil. Registering an empty name, a nil creator or the same name twice is a
// programming error and panics.
func (r *Registry) Register(name string, create CreatorFunc, parse ConfigParserFunc, size SizerFunc) {
	if name == "" {
		panic("generate: Register with empty name")
	}
	if create == nil {
		panic("generate: Register " + name + " with nil creator")
	}
	if _, dup := r.entries[name]; dup {
		panic("generate: Register called twice for " + name)
	}
	if parse == nil {
		parse = ParseConfig
	}
	r.entries[name] = entry{create: create, parse: parse, size: size}
}

// CreateByName returns a generator for name.
func (r *Registry) CreateByName(name string) (Generator, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownGenerator)
	}
	return e.create(), nil
}

// CreateConfigByName parses raw with the parser registered for name.
func (r *Registry) CreateConfigByName(name string, raw RawConfig, rng *rand.Rand) (ProcessConfig, error) {
	e, ok := r.entries[name]
	if !ok {
		return ProcessConfig{}, fmt.Errorf("%q: %w", name, ErrUnknownGenerator)
	}
	raw.Generator = name
	return e.parse(raw, rng)
}

// MapSize asks the sizer registered for name which dimensions the stage
// needs. ok is false when the algorithm works on any size.
func (r *Registry) MapSize(name string, raw RawConfig, env *Env) (w, h int, ok bool) {
	e, found := r.entries[name]
	if !found || e.size == nil {
		return 0, 0, false
	}
	return e.size(raw, env)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.entries))
}
