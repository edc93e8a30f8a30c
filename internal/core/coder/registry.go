package coder

import (
	"github.com/typemark/typemark/internal/core/layout"
	"github.com/typemark/typemark/internal/core/schema"
)

// LayoutRegistry maps account type names to their derived binary layouts.
// Populated once at construction and never mutated, so lookups need no
// locking.
type LayoutRegistry struct {
	layouts map[string]*layout.Layout
	names   []string
}

// newLayoutRegistry derives a layout for every definition in the
// collection. Any derivation failure aborts construction; no partial
// registry is ever returned.
func newLayoutRegistry(types *schema.Collection) (*LayoutRegistry, error) {
	defs := types.Defs()
	r := &LayoutRegistry{
		layouts: make(map[string]*layout.Layout, len(defs)),
		names:   make([]string, 0, len(defs)),
	}
	for _, def := range defs {
		l, err := layout.Derive(def, types)
		if err != nil {
			return nil, err
		}
		r.layouts[def.Name] = l
		r.names = append(r.names, def.Name)
	}
	return r, nil
}

// Lookup returns the layout registered under name.
func (r *LayoutRegistry) Lookup(name string) (*layout.Layout, bool) {
	l, ok := r.layouts[name]
	return l, ok
}

// Names returns the registered type names in registration order. The
// caller must not modify the returned slice.
func (r *LayoutRegistry) Names() []string {
	return r.names
}
