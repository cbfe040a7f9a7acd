package varpath

import (
	"math"
	"reflect"
)

// TypeID is the stable identity of a native Go type, used as the Type
// Registry key. The zero TypeID identifies nothing.
type TypeID struct {
	t reflect.Type
}

// TypeOf returns the identity of T.
func TypeOf[T any]() TypeID {
	return TypeID{t: reflect.TypeOf((*T)(nil)).Elem()}
}

// TypeIDOf returns the identity of v's dynamic type.
func TypeIDOf(v any) TypeID {
	if v == nil {
		return TypeID{}
	}
	return TypeID{t: reflect.TypeOf(v)}
}

// IsZero reports whether id identifies no type.
func (id TypeID) IsZero() bool { return id.t == nil }

// Type returns the underlying reflect.Type (nil for the zero TypeID).
func (id TypeID) Type() reflect.Type { return id.t }

// String returns the Go type name.
func (id TypeID) String() string {
	if id.t == nil {
		return KindNameInvalid
	}
	return id.t.String()
}

// SafeString is a string explicitly marked as pre-escaped. ValueOf turns it
// into a SafeText value; it has no lookup or sequence capabilities.
type SafeString string

// ValueOf converts native data into a Value. It never fails: shapes with no
// direct Value variant become Opaque and are resolved later through the
// Type Registry (or fail resolution there, not here).
func ValueOf(native any) Value {
	switch v := native.(type) {
	case nil:
		return Invalid()
	case Value:
		return v
	case *Value:
		if v == nil {
			return Invalid()
		}
		return *v
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case uint64:
		return fromUint(v)
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case string:
		return Text(v)
	case SafeString:
		return SafeText(string(v))
	case []Value:
		return Sequence(v...)
	case *Mapping:
		if v == nil {
			return Invalid()
		}
		return MappingValue(v)
	}

	return Opaque(native)
}

// isNilRef reports whether ref is nil or a typed nil pointer, map, slice,
// interface, func or chan.
func isNilRef(ref any) bool {
	if ref == nil {
		return true
	}
	rv := reflect.ValueOf(ref)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// fromUint keeps values above MaxInt64 representable.
func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}
	return Int(int64(u))
}
