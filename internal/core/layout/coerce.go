package layout

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Numeric coercion for encode. Values arrive as whatever Go type the caller
// (or a JSON decoder) produced; anything that fits the target width losslessly
// is accepted, anything else is a conformance error.

func asUint(v any, bits int) (uint64, error) {
	var u uint64
	switch n := v.(type) {
	case uint8:
		u = uint64(n)
	case uint16:
		u = uint64(n)
	case uint32:
		u = uint64(n)
	case uint64:
		u = n
	case uint:
		u = uint64(n)
	case int8:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d for u%d", n, bits)
		}
		u = uint64(n)
	case int16:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d for u%d", n, bits)
		}
		u = uint64(n)
	case int32:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d for u%d", n, bits)
		}
		u = uint64(n)
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d for u%d", n, bits)
		}
		u = uint64(n)
	case int:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d for u%d", n, bits)
		}
		u = uint64(n)
	case float64:
		if n < 0 || n != math.Trunc(n) || n > math.MaxUint64 {
			return 0, fmt.Errorf("value %v is not a valid u%d", n, bits)
		}
		u = uint64(n)
	case json.Number:
		parsed, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not a valid u%d", n.String(), bits)
		}
		u = parsed
	default:
		return 0, fmt.Errorf("expected u%d, got %T", bits, v)
	}
	if bits < 64 && u > (uint64(1)<<bits)-1 {
		return 0, fmt.Errorf("value %d overflows u%d", u, bits)
	}
	return u, nil
}

func asInt(v any, bits int) (int64, error) {
	var i int64
	switch n := v.(type) {
	case int8:
		i = int64(n)
	case int16:
		i = int64(n)
	case int32:
		i = int64(n)
	case int64:
		i = n
	case int:
		i = int64(n)
	case uint8:
		i = int64(n)
	case uint16:
		i = int64(n)
	case uint32:
		i = int64(n)
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows i%d", n, bits)
		}
		i = int64(n)
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows i%d", n, bits)
		}
		i = int64(n)
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n > math.MaxInt64 {
			return 0, fmt.Errorf("value %v is not a valid i%d", n, bits)
		}
		i = int64(n)
	case json.Number:
		parsed, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not a valid i%d", n.String(), bits)
		}
		i = parsed
	default:
		return 0, fmt.Errorf("expected i%d, got %T", bits, v)
	}
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if i < -limit || i > limit-1 {
			return 0, fmt.Errorf("value %d overflows i%d", i, bits)
		}
	}
	return i, nil
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("value %q is not a valid float", n.String())
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("expected float, got %T", v)
	}
}

// asBytes accepts []byte directly or a []any of byte-sized integers, which
// is what a generic JSON decode of a byte list produces.
func asBytes(v any) ([]byte, error) {
	switch p := v.(type) {
	case []byte:
		return p, nil
	case []any:
		out := make([]byte, len(p))
		for i, item := range p {
			u, err := asUint(item, 8)
			if err != nil {
				return nil, fmt.Errorf("byte %d: %w", i, err)
			}
			out[i] = byte(u)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected []byte, got %T", v)
	}
}
