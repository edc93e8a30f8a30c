// Package layout derives concrete binary codecs from abstract schema
// definitions. A derived Layout encodes values into exactly-sized buffers
// and decodes them back, following a positional little-endian format:
// fixed-width scalars, u32 length prefixes for strings/bytes/vectors, one
// tag byte for options, one index byte for enum variants, struct fields in
// declaration order, no self-description.
package layout

import (
	"errors"
	"fmt"

	"github.com/typemark/typemark/internal/core/schema"
	"github.com/typemark/typemark/pkg/encoding"
)

var (
	ErrUnresolvedType  = errors.New("unresolved type reference")
	ErrRecursiveType   = errors.New("recursive type definition")
	ErrTooManyVariants = errors.New("enum exceeds 256 variants")
)

// Layout is the binary encode/decode capability derived from one type
// definition. It is immutable and safe for concurrent use.
type Layout struct {
	name string
	root codec
}

// Name returns the type name the layout was derived from.
func (l *Layout) Name() string {
	return l.name
}

// Encode serializes value into a buffer sized to exactly what the value
// produced. Decoding the result does not require the original schema to be
// re-supplied, only the same layout.
func (l *Layout) Encode(value any) ([]byte, error) {
	w := encoding.NewWriter(64)
	if err := l.root.encode(w, value); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decode deserializes a value from data. Trailing bytes beyond the encoded
// value are permitted: record stores commonly pad account buffers to a
// fixed allocation size.
func (l *Layout) Decode(data []byte) (any, error) {
	r := encoding.NewReader(data)
	v, err := l.root.decode(r)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Derive builds the layout for def. References to other definitions are
// resolved against all; an unresolved or cyclic reference is a derivation
// error.
func Derive(def schema.TypeDef, all *schema.Collection) (*Layout, error) {
	b := &builder{all: all, building: map[string]bool{def.Name: true}}
	root, err := b.build(def.Type)
	if err != nil {
		return nil, fmt.Errorf("derive layout for %q: %w", def.Name, err)
	}
	return &Layout{name: def.Name, root: root}, nil
}

type builder struct {
	all      *schema.Collection
	building map[string]bool
}

func (b *builder) build(ref schema.TypeRef) (codec, error) {
	switch ref.Kind {
	case schema.KindBool:
		return boolCodec{}, nil
	case schema.KindU8, schema.KindU16, schema.KindU32, schema.KindU64:
		return uintCodec{bits: scalarBits(ref.Kind)}, nil
	case schema.KindI8, schema.KindI16, schema.KindI32, schema.KindI64:
		return intCodec{bits: scalarBits(ref.Kind)}, nil
	case schema.KindF32:
		return float32Codec{}, nil
	case schema.KindF64:
		return float64Codec{}, nil
	case schema.KindString:
		return stringCodec{}, nil
	case schema.KindBytes:
		return bytesCodec{}, nil
	case schema.KindOption:
		elem, err := b.build(*ref.Elem)
		if err != nil {
			return nil, err
		}
		return &optionCodec{elem: elem}, nil
	case schema.KindVec:
		if ref.Elem.Kind == schema.KindU8 {
			return bytesCodec{}, nil
		}
		elem, err := b.build(*ref.Elem)
		if err != nil {
			return nil, err
		}
		return &vecCodec{elem: elem}, nil
	case schema.KindArray:
		if ref.Elem.Kind == schema.KindU8 {
			return byteArrayCodec{n: ref.Len}, nil
		}
		elem, err := b.build(*ref.Elem)
		if err != nil {
			return nil, err
		}
		return &arrayCodec{elem: elem, n: ref.Len}, nil
	case schema.KindStruct:
		return b.buildStruct(ref.Fields)
	case schema.KindEnum:
		if len(ref.Variants) > 256 {
			return nil, fmt.Errorf("%w: %d", ErrTooManyVariants, len(ref.Variants))
		}
		variants := make([]enumVariant, len(ref.Variants))
		for i, v := range ref.Variants {
			fields, err := b.buildStruct(v.Fields)
			if err != nil {
				return nil, fmt.Errorf("variant %q: %w", v.Name, err)
			}
			variants[i] = enumVariant{name: v.Name, fields: fields}
		}
		return &enumCodec{variants: variants}, nil
	case schema.KindDefined:
		return b.buildDefined(ref.Defined)
	default:
		return nil, fmt.Errorf("unsupported kind %s", ref.Kind)
	}
}

func (b *builder) buildDefined(name string) (codec, error) {
	if b.building[name] {
		return nil, fmt.Errorf("%w: %q refers to itself", ErrRecursiveType, name)
	}
	def, ok := b.all.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedType, name)
	}
	b.building[name] = true
	c, err := b.build(def.Type)
	delete(b.building, name)
	if err != nil {
		return nil, fmt.Errorf("defined type %q: %w", name, err)
	}
	return c, nil
}

func (b *builder) buildStruct(defs []schema.FieldDef) (*structCodec, error) {
	fields := make([]structField, len(defs))
	for i, f := range defs {
		c, err := b.build(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		_, optional := c.(*optionCodec)
		fields[i] = structField{name: f.Name, codec: c, optional: optional}
	}
	return &structCodec{fields: fields}, nil
}

func scalarBits(k schema.Kind) int {
	switch k {
	case schema.KindU8, schema.KindI8:
		return 8
	case schema.KindU16, schema.KindI16:
		return 16
	case schema.KindU32, schema.KindI32:
		return 32
	default:
		return 64
	}
}
