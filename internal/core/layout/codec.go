package layout

import (
	"fmt"
	"math"

	"github.com/typemark/typemark/pkg/encoding"
)

// codec is one node of a derived layout tree. Implementations are stateless
// after construction.
type codec interface {
	encode(w *encoding.Writer, v any) error
	decode(r *encoding.Reader) (any, error)
}

type boolCodec struct{}

func (boolCodec) encode(w *encoding.Writer, v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", v)
	}
	w.WriteBool(b)
	return nil
}

func (boolCodec) decode(r *encoding.Reader) (any, error) {
	return r.ReadBool()
}

type uintCodec struct {
	bits int
}

func (c uintCodec) encode(w *encoding.Writer, v any) error {
	u, err := asUint(v, c.bits)
	if err != nil {
		return err
	}
	switch c.bits {
	case 8:
		w.WriteU8(uint8(u))
	case 16:
		w.WriteU16(uint16(u))
	case 32:
		w.WriteU32(uint32(u))
	default:
		w.WriteU64(u)
	}
	return nil
}

func (c uintCodec) decode(r *encoding.Reader) (any, error) {
	switch c.bits {
	case 8:
		return r.ReadU8()
	case 16:
		return r.ReadU16()
	case 32:
		return r.ReadU32()
	default:
		return r.ReadU64()
	}
}

type intCodec struct {
	bits int
}

func (c intCodec) encode(w *encoding.Writer, v any) error {
	i, err := asInt(v, c.bits)
	if err != nil {
		return err
	}
	switch c.bits {
	case 8:
		w.WriteU8(uint8(i))
	case 16:
		w.WriteU16(uint16(i))
	case 32:
		w.WriteU32(uint32(i))
	default:
		w.WriteU64(uint64(i))
	}
	return nil
}

func (c intCodec) decode(r *encoding.Reader) (any, error) {
	switch c.bits {
	case 8:
		u, err := r.ReadU8()
		return int8(u), err
	case 16:
		u, err := r.ReadU16()
		return int16(u), err
	case 32:
		u, err := r.ReadU32()
		return int32(u), err
	default:
		u, err := r.ReadU64()
		return int64(u), err
	}
}

type float32Codec struct{}

func (float32Codec) encode(w *encoding.Writer, v any) error {
	f, err := asFloat(v)
	if err != nil {
		return err
	}
	w.WriteU32(math.Float32bits(float32(f)))
	return nil
}

func (float32Codec) decode(r *encoding.Reader) (any, error) {
	u, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return math.Float32frombits(u), nil
}

type float64Codec struct{}

func (float64Codec) encode(w *encoding.Writer, v any) error {
	f, err := asFloat(v)
	if err != nil {
		return err
	}
	w.WriteU64(math.Float64bits(f))
	return nil
}

func (float64Codec) decode(r *encoding.Reader) (any, error) {
	u, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	return math.Float64frombits(u), nil
}

type stringCodec struct{}

func (stringCodec) encode(w *encoding.Writer, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", v)
	}
	if len(s) > math.MaxUint32 {
		return fmt.Errorf("string of %d bytes exceeds u32 length prefix", len(s))
	}
	w.WriteU32(uint32(len(s)))
	w.WriteBytes([]byte(s))
	return nil
}

func (stringCodec) decode(r *encoding.Reader) (any, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	p, err := r.ReadN(int(n))
	if err != nil {
		return nil, err
	}
	return string(p), nil
}

// bytesCodec covers both the bytes shorthand and vec<u8>.
type bytesCodec struct{}

func (bytesCodec) encode(w *encoding.Writer, v any) error {
	p, err := asBytes(v)
	if err != nil {
		return err
	}
	if len(p) > math.MaxUint32 {
		return fmt.Errorf("byte slice of %d bytes exceeds u32 length prefix", len(p))
	}
	w.WriteU32(uint32(len(p)))
	w.WriteBytes(p)
	return nil
}

func (bytesCodec) decode(r *encoding.Reader) (any, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	p, err := r.ReadN(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, nil
}

// byteArrayCodec covers array<u8; N>: raw bytes, no length prefix.
type byteArrayCodec struct {
	n int
}

func (c byteArrayCodec) encode(w *encoding.Writer, v any) error {
	p, err := asBytes(v)
	if err != nil {
		return err
	}
	if len(p) != c.n {
		return fmt.Errorf("expected %d bytes, got %d", c.n, len(p))
	}
	w.WriteBytes(p)
	return nil
}

func (c byteArrayCodec) decode(r *encoding.Reader) (any, error) {
	p, err := r.ReadN(c.n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, c.n)
	copy(out, p)
	return out, nil
}

type optionCodec struct {
	elem codec
}

func (c *optionCodec) encode(w *encoding.Writer, v any) error {
	if v == nil {
		w.WriteU8(0)
		return nil
	}
	w.WriteU8(1)
	return c.elem.encode(w, v)
}

func (c *optionCodec) decode(r *encoding.Reader) (any, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		return c.elem.decode(r)
	default:
		return nil, fmt.Errorf("invalid option tag 0x%02x at offset %d", tag, r.Offset()-1)
	}
}

type vecCodec struct {
	elem codec
}

func (c *vecCodec) encode(w *encoding.Writer, v any) error {
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("expected []any, got %T", v)
	}
	if len(items) > math.MaxUint32 {
		return fmt.Errorf("vector of %d elements exceeds u32 length prefix", len(items))
	}
	w.WriteU32(uint32(len(items)))
	for i, item := range items {
		if err := c.elem.encode(w, item); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func (c *vecCodec) decode(r *encoding.Reader) (any, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	// Every element occupies at least one byte, so a count beyond the
	// remaining bytes is malformed. Checked before allocating.
	if int(n) > r.Remaining() {
		return nil, fmt.Errorf("vector count %d exceeds %d remaining bytes at offset %d: %w",
			n, r.Remaining(), r.Offset()-4, encoding.ErrUnexpectedEOF)
	}
	items := make([]any, n)
	for i := range items {
		item, err := c.elem.decode(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items[i] = item
	}
	return items, nil
}

type arrayCodec struct {
	elem codec
	n    int
}

func (c *arrayCodec) encode(w *encoding.Writer, v any) error {
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("expected []any, got %T", v)
	}
	if len(items) != c.n {
		return fmt.Errorf("expected %d elements, got %d", c.n, len(items))
	}
	for i, item := range items {
		if err := c.elem.encode(w, item); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func (c *arrayCodec) decode(r *encoding.Reader) (any, error) {
	items := make([]any, c.n)
	for i := range items {
		item, err := c.elem.decode(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items[i] = item
	}
	return items, nil
}

type structField struct {
	name     string
	codec    codec
	optional bool
}

type structCodec struct {
	fields []structField
}

func (c *structCodec) encode(w *encoding.Writer, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("expected map[string]any, got %T", v)
	}
	for _, f := range c.fields {
		fv, present := m[f.name]
		if !present {
			if !f.optional {
				return fmt.Errorf("missing field %q", f.name)
			}
			fv = nil
		}
		if err := f.codec.encode(w, fv); err != nil {
			return fmt.Errorf("field %q: %w", f.name, err)
		}
	}
	return nil
}

func (c *structCodec) decode(r *encoding.Reader) (any, error) {
	m := make(map[string]any, len(c.fields))
	for _, f := range c.fields {
		fv, err := f.codec.decode(r)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.name, err)
		}
		m[f.name] = fv
	}
	return m, nil
}

type enumVariant struct {
	name   string
	fields *structCodec
}

// enumCodec encodes values of the form map[variantName]map[fieldName]any,
// with exactly one key. Unit variants carry an empty field map.
type enumCodec struct {
	variants []enumVariant
}

func (c *enumCodec) encode(w *encoding.Writer, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("expected single-key map[string]any, got %T", v)
	}
	if len(m) != 1 {
		return fmt.Errorf("expected exactly one variant key, got %d", len(m))
	}
	for name, fv := range m {
		idx := -1
		for i, variant := range c.variants {
			if variant.name == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("unknown variant %q", name)
		}
		w.WriteU8(uint8(idx))
		if fv == nil {
			fv = map[string]any{}
		}
		if err := c.variants[idx].fields.encode(w, fv); err != nil {
			return fmt.Errorf("variant %q: %w", name, err)
		}
	}
	return nil
}

func (c *enumCodec) decode(r *encoding.Reader) (any, error) {
	idx, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if int(idx) >= len(c.variants) {
		return nil, fmt.Errorf("variant index %d out of range (%d variants) at offset %d",
			idx, len(c.variants), r.Offset()-1)
	}
	variant := c.variants[idx]
	fields, err := variant.fields.decode(r)
	if err != nil {
		return nil, fmt.Errorf("variant %q: %w", variant.name, err)
	}
	return map[string]any{variant.name: fields}, nil
}
