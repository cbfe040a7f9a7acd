package varpath

import (
	"github.com/itsatony/go-varpath/internal"
)

// EnumWhole is the Index of an Enum that denotes the whole enumeration.
const EnumWhole = -1

// Enum properties
const (
	EnumPropName  = "name"
	EnumPropKey   = "key"
	EnumPropValue = "value"
	EnumPropCount = "count"
)

// Enum is a value that is either one member of a named enumeration or the
// enumeration as a whole. A member renders as its key and is not iterable;
// the whole enumeration iterates its members in declaration order:
//
//	colors := varpath.NewEnum("Color", "red", "green", "blue")
//	// {% for c in colors %}{{ c.key }}={{ c.value }} {% endfor %}
//	// {{ selected.key }} with selected = colors.Member(1)
type Enum struct {
	Name  string
	Keys  []string
	Index int
}

// NewEnum creates the whole-enumeration value.
func NewEnum(name string, keys ...string) Enum {
	return Enum{Name: name, Keys: keys, Index: EnumWhole}
}

// Member returns the i-th member, or the whole enumeration when i is out of range.
func (e Enum) Member(i int) Enum {
	if i < 0 || i >= len(e.Keys) {
		i = EnumWhole
	}
	return Enum{Name: e.Name, Keys: e.Keys, Index: i}
}

// MemberByKey returns the member with the given key.
func (e Enum) MemberByKey(key string) (Enum, bool) {
	for i, k := range e.Keys {
		if k == key {
			return e.Member(i), true
		}
	}
	return e, false
}

// IsWhole reports whether e denotes the whole enumeration.
func (e Enum) IsWhole() bool {
	return e.Index < 0 || e.Index >= len(e.Keys)
}

// Key returns the member key, or "" for the whole enumeration.
func (e Enum) Key() string {
	if e.IsWhole() {
		return StringValueEmpty
	}
	return e.Keys[e.Index]
}

// String renders a member as its key and the whole enumeration as its name.
func (e Enum) String() string {
	if e.IsWhole() {
		return e.Name
	}
	return e.Key()
}

func registerEnum(r *Registry) {
	mustRegister(RegisterRecord(r, enumLookup))
	mustRegister(r.RegisterToSequence(TypeOf[Enum](), enumToSequence))
}

func enumLookup(e Enum, property string) Value {
	switch property {
	case EnumPropName:
		return Text(e.Name)
	case EnumPropCount:
		return Int(int64(len(e.Keys)))
	case EnumPropKey:
		if e.IsWhole() {
			return Invalid()
		}
		return Text(e.Key())
	case EnumPropValue:
		if e.IsWhole() {
			return Invalid()
		}
		return Int(int64(e.Index))
	}
	if i, ok := internal.ParseIndex(property); ok && i < len(e.Keys) {
		return Opaque(e.Member(i))
	}
	return Invalid()
}

// enumToSequence is value dependent: a single member is not iterable, the
// whole enumeration yields one member per key.
func enumToSequence(v Value) Iteration {
	ref, _ := v.Ref()
	e, ok := ref.(Enum)
	if !ok || !e.IsWhole() {
		return NotIterable()
	}
	members := make([]Value, len(e.Keys))
	for i := range e.Keys {
		members[i] = Opaque(e.Member(i))
	}
	return Elements(members...)
}
