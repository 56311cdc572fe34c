// Package models maps raw decoded JSON payloads onto the declared
// response entities of the market-data API. A Registry holds one
// Descriptor per entity; Unmarshal walks a payload and hydrates
// generic Entity values according to the requested response type.
package models

import (
	"fmt"
	"sort"
	"sync"
)

// Registry resolves entity type names to descriptors. It is populated
// at construction and read-only afterwards, so concurrent Resolve
// calls need no locking.
type Registry struct {
	entities map[string]*Descriptor
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the shared registry holding the built-in response
// entities.
func Default() *Registry {
	defaultOnce.Do(func() { defaultReg = NewRegistry() })
	return defaultReg
}

// NewRegistry builds a fresh registry with all built-in response
// entities registered.
func NewRegistry() *Registry {
	r := &Registry{entities: make(map[string]*Descriptor, len(builtinDescriptors))}
	for _, d := range builtinDescriptors {
		r.register(d)
	}
	return r
}

func (r *Registry) register(d *Descriptor) {
	if _, dup := r.entities[d.Name]; dup {
		panic(fmt.Sprintf("models: duplicate entity %s", d.Name))
	}
	r.entities[d.Name] = d
}

// Resolve returns the descriptor registered under name.
func (r *Registry) Resolve(name string) (*Descriptor, error) {
	d, ok := r.entities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return d, nil
}

// Types returns the registered entity names in sorted order.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
