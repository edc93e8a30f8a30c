// Package schema holds the abstract description of record types: an ordered
// collection of named type definitions, each a tree of type references.
// Collections are parsed once from an IDL document and never mutated; the
// layout package derives concrete binary codecs from them.
package schema

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateType = errors.New("duplicate type name")
	ErrInvalidSchema = errors.New("invalid schema")
)

// TypeRef describes one type occurrence. Exactly the fields relevant to
// Kind are populated: Elem for option/vec/array, Len for array, Fields for
// struct, Variants for enum, Defined for a named reference.
type TypeRef struct {
	Kind     Kind
	Elem     *TypeRef
	Len      int
	Fields   []FieldDef
	Variants []VariantDef
	Defined  string
}

// FieldDef is a named, typed struct field.
type FieldDef struct {
	Name string
	Type TypeRef
}

// VariantDef is one enum variant. Variants without fields are unit variants.
type VariantDef struct {
	Name   string
	Fields []FieldDef
}

// TypeDef is a named top-level type in a collection.
type TypeDef struct {
	Name string
	Type TypeRef
}

// Collection is an ordered set of type definitions with unique names.
// It is immutable after construction.
type Collection struct {
	defs   []TypeDef
	byName map[string]int
}

// NewCollection builds a collection from definitions in order. A repeated
// name is an error.
func NewCollection(defs []TypeDef) (*Collection, error) {
	c := &Collection{
		defs:   make([]TypeDef, len(defs)),
		byName: make(map[string]int, len(defs)),
	}
	copy(c.defs, defs)
	for i, def := range c.defs {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: type at index %d has no name", ErrInvalidSchema, i)
		}
		if _, ok := c.byName[def.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateType, def.Name)
		}
		c.byName[def.Name] = i
	}
	return c, nil
}

// Len returns the number of definitions.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.defs)
}

// Defs returns the definitions in declaration order. The caller must not
// modify the returned slice.
func (c *Collection) Defs() []TypeDef {
	if c == nil {
		return nil
	}
	return c.defs
}

// Names returns the type names in declaration order.
func (c *Collection) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.defs))
	for i, def := range c.defs {
		names[i] = def.Name
	}
	return names
}

// Lookup returns the definition registered under name.
func (c *Collection) Lookup(name string) (TypeDef, bool) {
	if c == nil {
		return TypeDef{}, false
	}
	i, ok := c.byName[name]
	if !ok {
		return TypeDef{}, false
	}
	return c.defs[i], true
}
