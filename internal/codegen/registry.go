package codegen

import (
	"maps"
	"slices"

	"salad-rustgen/internal/rust"
	"salad-rustgen/internal/schema"
)

// registry maps qualified schema names to their resolved paths and holds the
// worklist of named schemas still to be lowered.
type registry struct {
	resolved map[string]rust.Path
	// pending is a stack: the last pushed schema is lowered first, so unions
	// synthesized while lowering a schema are lowered before its siblings.
	pending []schema.Named
	// known holds every schema ever pushed, by name.
	known map[string]schema.Named
}

func newRegistry() *registry {
	return &registry{
		resolved: make(map[string]rust.Path),
		known:    make(map[string]schema.Named),
	}
}

// enqueue pushes schemas in reverse so they pop in their original order.
func (r *registry) enqueue(schemas []schema.Named) {
	for i := len(schemas) - 1; i >= 0; i-- {
		r.push(schemas[i])
	}
}

func (r *registry) push(s schema.Named) {
	r.pending = append(r.pending, s)
	r.known[s.SchemaName()] = s
}

func (r *registry) pop() (schema.Named, bool) {
	if len(r.pending) == 0 {
		return nil, false
	}

	last := len(r.pending) - 1
	s := r.pending[last]
	r.pending[last] = nil
	r.pending = r.pending[:last]

	return s, true
}

// resolve records the path of name. Entries are never replaced.
func (r *registry) resolve(name string, path rust.Path) {
	if _, ok := r.resolved[name]; !ok {
		r.resolved[name] = path
	}
}

func (r *registry) lookup(name string) (rust.Path, bool) {
	path, ok := r.resolved[name]
	return path, ok
}

func (r *registry) lookupKnown(name string) (schema.Named, bool) {
	s, ok := r.known[name]
	return s, ok
}

// names returns every known schema name, sorted.
func (r *registry) names() []string {
	return slices.Sorted(maps.Keys(r.known))
}
