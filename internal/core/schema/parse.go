package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// The IDL document shape, shared by the JSON and YAML forms:
//
//	types:
//	  - name: Counter
//	    type:
//	      kind: struct
//	      fields:
//	        - {name: count, type: u64}
//
// A type reference is either a bare name ("u64", "string", or the name of
// another definition) or an object with a "kind" plus the kind's parameters.

type document struct {
	Types []typeDefDoc `json:"types" yaml:"types"`
}

type typeDefDoc struct {
	Name string     `json:"name" yaml:"name"`
	Type typeRefDoc `json:"type" yaml:"type"`
}

type fieldDoc struct {
	Name string     `json:"name" yaml:"name"`
	Type typeRefDoc `json:"type" yaml:"type"`
}

type variantDoc struct {
	Name   string     `json:"name" yaml:"name"`
	Fields []fieldDoc `json:"fields" yaml:"fields"`
}

type refObjectDoc struct {
	Kind     string       `json:"kind" yaml:"kind"`
	Elem     *typeRefDoc  `json:"elem" yaml:"elem"`
	Len      int          `json:"len" yaml:"len"`
	Name     string       `json:"name" yaml:"name"`
	Fields   []fieldDoc   `json:"fields" yaml:"fields"`
	Variants []variantDoc `json:"variants" yaml:"variants"`
}

type typeRefDoc struct {
	ref TypeRef
}

func (t *typeRefDoc) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		t.ref = refFromName(name)
		return nil
	}
	var obj refObjectDoc
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	ref, err := obj.toRef()
	if err != nil {
		return err
	}
	t.ref = ref
	return nil
}

func (t *typeRefDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		t.ref = refFromName(name)
		return nil
	}
	var obj refObjectDoc
	if err := node.Decode(&obj); err != nil {
		return err
	}
	ref, err := obj.toRef()
	if err != nil {
		return err
	}
	t.ref = ref
	return nil
}

// refFromName resolves a bare name: a primitive spelling maps to its kind,
// anything else is a reference to another definition.
func refFromName(name string) TypeRef {
	if kind, ok := kindByName[name]; ok {
		return TypeRef{Kind: kind}
	}
	return TypeRef{Kind: KindDefined, Defined: name}
}

func (o refObjectDoc) toRef() (TypeRef, error) {
	switch o.Kind {
	case "option", "vec":
		if o.Elem == nil {
			return TypeRef{}, fmt.Errorf("%w: %s requires an elem type", ErrInvalidSchema, o.Kind)
		}
		kind := KindOption
		if o.Kind == "vec" {
			kind = KindVec
		}
		elem := o.Elem.ref
		return TypeRef{Kind: kind, Elem: &elem}, nil
	case "array":
		if o.Elem == nil {
			return TypeRef{}, fmt.Errorf("%w: array requires an elem type", ErrInvalidSchema)
		}
		if o.Len <= 0 {
			return TypeRef{}, fmt.Errorf("%w: array requires a positive len, got %d", ErrInvalidSchema, o.Len)
		}
		elem := o.Elem.ref
		return TypeRef{Kind: KindArray, Elem: &elem, Len: o.Len}, nil
	case "struct":
		fields, err := fieldsFromDocs(o.Fields)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{Kind: KindStruct, Fields: fields}, nil
	case "enum":
		if len(o.Variants) == 0 {
			return TypeRef{}, fmt.Errorf("%w: enum requires at least one variant", ErrInvalidSchema)
		}
		variants := make([]VariantDef, len(o.Variants))
		for i, v := range o.Variants {
			if v.Name == "" {
				return TypeRef{}, fmt.Errorf("%w: enum variant at index %d has no name", ErrInvalidSchema, i)
			}
			fields, err := fieldsFromDocs(v.Fields)
			if err != nil {
				return TypeRef{}, fmt.Errorf("variant %q: %w", v.Name, err)
			}
			variants[i] = VariantDef{Name: v.Name, Fields: fields}
		}
		return TypeRef{Kind: KindEnum, Variants: variants}, nil
	case "defined":
		if o.Name == "" {
			return TypeRef{}, fmt.Errorf("%w: defined reference requires a name", ErrInvalidSchema)
		}
		return TypeRef{Kind: KindDefined, Defined: o.Name}, nil
	case "":
		return TypeRef{}, fmt.Errorf("%w: type object has no kind", ErrInvalidSchema)
	default:
		if kind, ok := kindByName[o.Kind]; ok {
			return TypeRef{Kind: kind}, nil
		}
		return TypeRef{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidSchema, o.Kind)
	}
}

func fieldsFromDocs(docs []fieldDoc) ([]FieldDef, error) {
	fields := make([]FieldDef, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for i, f := range docs {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field at index %d has no name", ErrInvalidSchema, i)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = struct{}{}
		fields[i] = FieldDef{Name: f.Name, Type: f.Type.ref}
	}
	return fields, nil
}

func (d document) toCollection() (*Collection, error) {
	defs := make([]TypeDef, len(d.Types))
	for i, td := range d.Types {
		defs[i] = TypeDef{Name: td.Name, Type: td.Type.ref}
	}
	return NewCollection(defs)
}

// ParseJSON parses a JSON IDL document into a collection.
func ParseJSON(data []byte) (*Collection, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return doc.toCollection()
}

// ParseYAML parses a YAML IDL document into a collection.
func ParseYAML(data []byte) (*Collection, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return doc.toCollection()
}
