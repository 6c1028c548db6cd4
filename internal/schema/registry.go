package schema

import (
	"go/types"
	"maps"

	"contract-generator/internal/common"
)

// Registry deduplicates named struct schemas by qualified name. Every
// reference to a name shares the one schema built for it.
type Registry struct {
	used  map[string]types.Type
	built map[string]*Node
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		used:  make(map[string]types.Type),
		built: make(map[string]*Node),
	}
}

// Register marks a qualified name as used. The first type registered under
// a name is the one its schema is built from.
func (r *Registry) Register(qualified string, t types.Type) {
	if _, ok := r.used[qualified]; !ok {
		r.used[qualified] = t
	}
}

// Names returns every used name, sorted.
func (r *Registry) Names() []string {
	return common.SortedKeys(r.used)
}

// Types returns a copy of the name to type table.
func (r *Registry) Types() map[string]types.Type {
	return maps.Clone(r.used)
}

// ResolveAll builds a schema for every used name and returns the full table.
// Building may register further names, so it runs until nothing is pending.
func (r *Registry) ResolveAll(build func(qualified string, t types.Type) *Node) map[string]*Node {
	for {
		var pending []string

		for _, name := range r.Names() {
			if _, ok := r.built[name]; !ok {
				pending = append(pending, name)
			}
		}

		if len(pending) == 0 {
			return maps.Clone(r.built)
		}

		for _, name := range pending {
			// a recursive build may already have filled the slot
			if _, ok := r.built[name]; ok {
				continue
			}

			r.built[name] = build(name, r.used[name])
		}
	}
}
