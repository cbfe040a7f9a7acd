package varpath

import (
	"fmt"
	"reflect"
)

// Kind identifies the variant held by a Value.
type Kind int

// Value kinds. The zero Kind is KindInvalid, so the zero Value is Invalid.
const (
	KindInvalid Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindText
	KindSafeText
	KindSequence
	KindMapping
	KindOpaque
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return KindNameBool
	case KindInteger:
		return KindNameInteger
	case KindFloat:
		return KindNameFloat
	case KindText:
		return KindNameText
	case KindSafeText:
		return KindNameSafeText
	case KindSequence:
		return KindNameSequence
	case KindMapping:
		return KindNameMapping
	case KindOpaque:
		return KindNameOpaque
	default:
		return KindNameInvalid
	}
}

// Value is the runtime representation of any datum flowing through path
// resolution. It is a closed sum type: exactly one variant is populated,
// selected by Kind.
//
// Values are small and meant to be passed by value. Copying a Sequence
// shares its backing slice, copying a Mapping shares the *Mapping, and
// copying an Opaque duplicates the reference, never the referenced data.
// The engine does not own Opaque referents; the caller keeps them alive
// for the duration of the render.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	seq  []Value
	m    *Mapping
	typ  TypeID
	ref  any
}

// Invalid returns the absence/failure marker. It renders as empty output.
func Invalid() Value { return Value{} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int creates an integer value.
func Int(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float creates a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text creates a plain text value, subject to escaping on output.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// SafeText creates a text value marked as pre-escaped.
func SafeText(s string) Value { return Value{kind: KindSafeText, s: s} }

// Sequence creates an ordered list value.
func Sequence(values ...Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{kind: KindSequence, seq: values}
}

// MappingValue wraps a Mapping. A nil mapping becomes an empty ordered one.
func MappingValue(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{kind: KindMapping, m: m}
}

// Opaque wraps caller-owned native data, keyed by its dynamic type.
// A nil ref, typed or untyped, yields Invalid.
func Opaque(ref any) Value {
	if isNilRef(ref) {
		return Invalid()
	}
	return Value{kind: KindOpaque, typ: TypeIDOf(ref), ref: ref}
}

// OpaqueOf wraps ref under an explicit type identity.
func OpaqueOf(id TypeID, ref any) Value {
	if id.IsZero() || isNilRef(ref) {
		return Invalid()
	}
	return Value{kind: KindOpaque, typ: id, ref: ref}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v is anything but Invalid.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsSafe reports whether v is SafeText.
func (v Value) IsSafe() bool { return v.kind == KindSafeText }

// IsText reports whether v is Text or SafeText.
func (v Value) IsText() bool { return v.kind == KindText || v.kind == KindSafeText }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInteger }

// AsFloat returns the float payload. Integers convert.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInteger:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsText returns the string payload of Text and SafeText.
func (v Value) AsText() (string, bool) { return v.s, v.IsText() }

// AsSequence returns the elements of a Sequence.
func (v Value) AsSequence() ([]Value, bool) { return v.seq, v.kind == KindSequence }

// AsMapping returns the Mapping payload.
func (v Value) AsMapping() (*Mapping, bool) { return v.m, v.kind == KindMapping }

// Ref returns the native reference held by an Opaque value.
func (v Value) Ref() (any, bool) { return v.ref, v.kind == KindOpaque }

// TypeID returns the type identity of an Opaque value, zero otherwise.
func (v Value) TypeID() TypeID { return v.typ }

// Len returns the element count of a Sequence or Mapping, the byte length of text,
// and 0 for everything else.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return v.m.Len()
	case KindText, KindSafeText:
		return len(v.s)
	default:
		return 0
	}
}

// Truthy follows the usual template truthiness: Invalid, false, zero numbers,
// empty text and empty collections are false; Opaque values are true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInteger:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindText, KindSafeText:
		return len(v.s) > 0
	case KindSequence:
		return len(v.seq) > 0
	case KindMapping:
		return v.m.Len() > 0
	case KindOpaque:
		return true
	default:
		return false
	}
}

// Equal reports structural equality. Sequences and Mappings compare element-wise;
// Opaque values are equal when they share type identity and reference, never by
// inspecting the referent.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInvalid:
		return true
	case KindBool:
		return v.b == other.b
	case KindInteger:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindText, KindSafeText:
		return v.s == other.s
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		return v.m.equal(other.m)
	case KindOpaque:
		return v.typ == other.typ && sameReference(v.ref, other.ref)
	default:
		return false
	}
}

// sameReference compares two native references by identity.
func sameReference(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if ra.Kind() == reflect.Slice && ra.Len() != rb.Len() {
			return false
		}
		return ra.Pointer() == rb.Pointer()
	}
	if ra.Comparable() {
		return ra.Equal(rb)
	}
	return false
}

// String returns a debugging representation, not template output.
// Use RenderText for output.
func (v Value) String() string {
	switch v.kind {
	case KindBool, KindInteger, KindFloat:
		return RenderText(v, false)
	case KindText:
		return fmt.Sprintf("%q", v.s)
	case KindSafeText:
		return fmt.Sprintf("safe(%q)", v.s)
	case KindSequence:
		return fmt.Sprintf("%v", v.seq)
	case KindMapping:
		return v.m.String()
	case KindOpaque:
		return fmt.Sprintf("opaque(%s)", v.typ)
	default:
		return KindNameInvalid
	}
}
