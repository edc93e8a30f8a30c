package schema

// Kind identifies the shape of a type reference.
type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindU64
	KindI64
	KindF32
	KindF64
	KindString
	KindBytes
	KindOption
	KindVec
	KindArray
	KindStruct
	KindEnum
	KindDefined
)

var kindNames = [...]string{
	KindBool:    "bool",
	KindU8:      "u8",
	KindI8:      "i8",
	KindU16:     "u16",
	KindI16:     "i16",
	KindU32:     "u32",
	KindI32:     "i32",
	KindU64:     "u64",
	KindI64:     "i64",
	KindF32:     "f32",
	KindF64:     "f64",
	KindString:  "string",
	KindBytes:   "bytes",
	KindOption:  "option",
	KindVec:     "vec",
	KindArray:   "array",
	KindStruct:  "struct",
	KindEnum:    "enum",
	KindDefined: "defined",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether the kind is a fixed scalar with no nested
// type parameters.
func (k Kind) IsPrimitive() bool {
	return k <= KindF64
}

// kindByName maps the IDL spelling of a primitive (and of string/bytes)
// back to its kind. Composite kinds are declared as objects, not names.
var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		kind := Kind(k)
		if kind.IsPrimitive() || kind == KindString || kind == KindBytes {
			m[name] = kind
		}
	}
	return m
}()
