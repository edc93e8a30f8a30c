package schema

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable 64-bit hash over the canonical form of the
// collection. Two processes built from the same IDL produce the same
// fingerprint regardless of whether it was parsed from JSON or YAML, so
// readers and writers can cheaply detect that their schema sets diverged.
// It identifies the collection; it is not a versioning scheme.
func (c *Collection) Fingerprint() uint64 {
	var sb strings.Builder
	for _, def := range c.Defs() {
		sb.WriteString("def ")
		sb.WriteString(def.Name)
		sb.WriteByte('=')
		writeCanonical(&sb, def.Type)
		sb.WriteByte('\n')
	}
	return xxhash.Sum64String(sb.String())
}

func writeCanonical(sb *strings.Builder, ref TypeRef) {
	switch ref.Kind {
	case KindOption, KindVec:
		sb.WriteString(ref.Kind.String())
		sb.WriteByte('(')
		writeCanonical(sb, *ref.Elem)
		sb.WriteByte(')')
	case KindArray:
		fmt.Fprintf(sb, "array[%d](", ref.Len)
		writeCanonical(sb, *ref.Elem)
		sb.WriteByte(')')
	case KindStruct:
		sb.WriteString("struct{")
		writeCanonicalFields(sb, ref.Fields)
		sb.WriteByte('}')
	case KindEnum:
		sb.WriteString("enum{")
		for i, v := range ref.Variants {
			if i > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(v.Name)
			sb.WriteByte('{')
			writeCanonicalFields(sb, v.Fields)
			sb.WriteByte('}')
		}
		sb.WriteByte('}')
	case KindDefined:
		sb.WriteString("defined(")
		sb.WriteString(ref.Defined)
		sb.WriteByte(')')
	default:
		sb.WriteString(ref.Kind.String())
	}
}

func writeCanonicalFields(sb *strings.Builder, fields []FieldDef) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(f.Name)
		sb.WriteByte(':')
		writeCanonical(sb, f.Type)
	}
}
