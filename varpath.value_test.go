package varpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringerRecord struct{ label string }

func (s stringerRecord) String() string { return s.label }

func TestValue_ZeroIsInvalid(t *testing.T) {
	var v Value
	assert.Equal(t, KindInvalid, v.Kind())
	assert.False(t, v.IsValid())
	assert.True(t, v.Equal(Invalid()))
	assert.Equal(t, KindNameInvalid, v.String())
}

func TestValue_Accessors(t *testing.T) {
	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	i, ok := Int(42).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(42), i)

	f, ok := Int(3).AsFloat()
	assert.True(t, ok, "integers convert to float")
	assert.Equal(t, 3.0, f)

	_, ok = Text("3").AsFloat()
	assert.False(t, ok)

	s, ok := SafeText("<b>").AsText()
	assert.True(t, ok)
	assert.Equal(t, "<b>", s)
	assert.True(t, SafeText("x").IsSafe())
	assert.False(t, Text("x").IsSafe())

	seq, ok := Sequence().AsSequence()
	assert.True(t, ok)
	assert.NotNil(t, seq)
	assert.Empty(t, seq)

	m, ok := MappingValue(nil).AsMapping()
	assert.True(t, ok)
	assert.Equal(t, 0, m.Len())

	_, ok = Text("x").Ref()
	assert.False(t, ok)
}

func TestValue_Opaque(t *testing.T) {
	t.Run("nil ref is invalid", func(t *testing.T) {
		assert.False(t, Opaque(nil).IsValid())
		assert.False(t, OpaqueOf(TypeOf[int](), nil).IsValid())
		assert.False(t, OpaqueOf(TypeID{}, 1).IsValid())
	})

	t.Run("typed nil ref is invalid", func(t *testing.T) {
		var rec *stringerRecord
		var m map[string]int
		var fn func()
		assert.False(t, Opaque(rec).IsValid())
		assert.False(t, Opaque(m).IsValid())
		assert.False(t, Opaque(fn).IsValid())
		assert.False(t, OpaqueOf(TypeOf[*stringerRecord](), rec).IsValid())
		assert.False(t, ValueOf(rec).IsValid())
	})

	t.Run("keeps dynamic type", func(t *testing.T) {
		v := Opaque(stringerRecord{label: "x"})
		assert.Equal(t, KindOpaque, v.Kind())
		assert.Equal(t, TypeOf[stringerRecord](), v.TypeID())
	})

	t.Run("explicit type identity", func(t *testing.T) {
		v := OpaqueOf(TypeOf[Enum](), 7)
		assert.Equal(t, TypeOf[Enum](), v.TypeID())
	})

	t.Run("equality by reference", func(t *testing.T) {
		p := &stringerRecord{label: "a"}
		q := &stringerRecord{label: "a"}
		assert.True(t, Opaque(p).Equal(Opaque(p)))
		assert.False(t, Opaque(p).Equal(Opaque(q)))

		slice := []string{"a"}
		assert.True(t, Opaque(slice).Equal(Opaque(slice)))
		assert.False(t, Opaque(slice).Equal(Opaque([]string{"a"})))

		assert.True(t, Opaque(stringerRecord{label: "a"}).Equal(Opaque(stringerRecord{label: "a"})))
	})
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"ints", Int(1), Int(1), true},
		{"int vs float", Int(1), Float(1), false},
		{"text vs safe text", Text("a"), SafeText("a"), false},
		{"sequences", Sequence(Int(1), Text("a")), Sequence(Int(1), Text("a")), true},
		{"sequence length", Sequence(Int(1)), Sequence(Int(1), Int(2)), false},
		{
			"mappings ignore order",
			MappingValue(NewMapping().Set("a", Int(1)).Set("b", Int(2))),
			MappingValue(NewMapping().Set("b", Int(2)).Set("a", Int(1))),
			true,
		},
		{
			"mapping values differ",
			MappingValue(NewMapping().Set("a", Int(1))),
			MappingValue(NewMapping().Set("a", Int(2))),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		truthy bool
	}{
		{"invalid", Invalid(), false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero", Int(0), false},
		{"nonzero", Int(-1), true},
		{"zero float", Float(0), false},
		{"empty text", Text(""), false},
		{"text", Text("x"), true},
		{"empty sequence", Sequence(), false},
		{"sequence", Sequence(Invalid()), true},
		{"empty mapping", MappingValue(NewMapping()), false},
		{"opaque", Opaque(stringerRecord{}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.truthy, tt.value.Truthy())
		})
	}
}

func TestValue_Len(t *testing.T) {
	assert.Equal(t, 2, Sequence(Int(1), Int(2)).Len())
	assert.Equal(t, 1, MappingValue(NewMapping().Set("a", Int(1))).Len())
	assert.Equal(t, 3, Text("abc").Len())
	assert.Equal(t, 0, Int(99).Len())
	assert.Equal(t, 0, Invalid().Len())
}

func TestValueOf(t *testing.T) {
	var nilPtr *stringerRecord
	var nilMap map[string]any
	var nilSlice []string

	tests := []struct {
		name     string
		native   any
		expected Value
	}{
		{"nil", nil, Invalid()},
		{"bool", true, Bool(true)},
		{"int", 7, Int(7)},
		{"int8", int8(-8), Int(-8)},
		{"uint16", uint16(16), Int(16)},
		{"uint64 small", uint64(64), Int(64)},
		{"uint64 overflow", uint64(math.MaxUint64), Float(float64(uint64(math.MaxUint64)))},
		{"float32", float32(1.5), Float(1.5)},
		{"string", "s", Text("s")},
		{"safe string", SafeString("<i>"), SafeText("<i>")},
		{"value passthrough", Int(5), Int(5)},
		{"value pointer", func() *Value { v := Text("p"); return &v }(), Text("p")},
		{"value slice", []Value{Int(1)}, Sequence(Int(1))},
		{"nil pointer", nilPtr, Invalid()},
		{"nil map", nilMap, Invalid()},
		{"nil slice", nilSlice, Invalid()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValueOf(tt.native)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}

	t.Run("mapping pointer", func(t *testing.T) {
		m := NewMapping().Set("a", Int(1))
		got, ok := ValueOf(m).AsMapping()
		require.True(t, ok)
		assert.Same(t, m, got)
	})

	t.Run("everything else is opaque", func(t *testing.T) {
		for _, native := range []any{stringerRecord{}, []string{"a"}, map[string]int{}, &stringerRecord{}} {
			v := ValueOf(native)
			assert.Equal(t, KindOpaque, v.Kind())
			assert.Equal(t, TypeIDOf(native), v.TypeID())
		}
	})
}

func TestTypeID(t *testing.T) {
	assert.True(t, TypeID{}.IsZero())
	assert.Equal(t, KindNameInvalid, TypeID{}.String())
	assert.True(t, TypeIDOf(nil).IsZero())

	assert.Equal(t, TypeOf[[]string](), TypeIDOf([]string{}))
	assert.NotEqual(t, TypeOf[[]string](), TypeOf[[]int]())
	assert.Equal(t, "[]string", TypeOf[[]string]().String())
	assert.NotEqual(t, TypeOf[stringerRecord](), TypeOf[*stringerRecord]())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, KindNameSafeText, KindSafeText.String())
	assert.Equal(t, KindNameOpaque, KindOpaque.String())
	assert.Equal(t, KindNameInvalid, Kind(99).String())
}

func TestMapping(t *testing.T) {
	t.Run("insertion order", func(t *testing.T) {
		m := NewMapping().Set("b", Int(2)).Set("a", Int(1)).Set("c", Int(3))
		assert.True(t, m.Ordered())
		assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
		assert.True(t, Sequence(m.Values()...).Equal(Sequence(Int(2), Int(1), Int(3))))
	})

	t.Run("overwrite keeps position", func(t *testing.T) {
		m := NewMapping().Set("a", Int(1)).Set("b", Int(2)).Set("a", Int(9))
		assert.Equal(t, []string{"a", "b"}, m.Keys())
		v, ok := m.Get("a")
		require.True(t, ok)
		assert.True(t, v.Equal(Int(9)))
	})

	t.Run("items align with values", func(t *testing.T) {
		m := NewMapping().Set("x", Text("1")).Set("y", Text("2"))
		items, values := m.Items(), m.Values()
		require.Len(t, items, 2)
		for i, item := range items {
			pair, ok := item.AsSequence()
			require.True(t, ok)
			require.Len(t, pair, 2)
			assert.True(t, pair[1].Equal(values[i]))
		}
		pair, _ := items[0].AsSequence()
		assert.True(t, pair[0].Equal(Text("x")))
	})

	t.Run("range stops early", func(t *testing.T) {
		m := NewMapping().Set("a", Int(1)).Set("b", Int(2))
		var seen []string
		m.Range(func(k string, _ Value) bool {
			seen = append(seen, k)
			return false
		})
		assert.Equal(t, []string{"a"}, seen)
	})

	t.Run("keys are copies", func(t *testing.T) {
		m := NewMapping().Set("a", Int(1))
		keys := m.Keys()
		keys[0] = "z"
		assert.Equal(t, []string{"a"}, m.Keys())
	})

	t.Run("nil mapping", func(t *testing.T) {
		var m *Mapping
		assert.Equal(t, 0, m.Len())
		assert.False(t, m.Has("a"))
		assert.False(t, m.Ordered())
		assert.Empty(t, m.Values())
	})

	t.Run("mapping of go map is unordered", func(t *testing.T) {
		m := MappingOf(map[string]any{"a": 1, "b": "two"})
		assert.False(t, m.Ordered())
		assert.ElementsMatch(t, []string{"a", "b"}, m.Keys())
		v, _ := m.Get("b")
		assert.True(t, v.Equal(Text("two")))
	})

	t.Run("string", func(t *testing.T) {
		m := NewMapping().Set("a", Int(1)).Set("b", Text("x"))
		assert.Equal(t, `{a: 1, b: "x"}`, m.String())
	})
}

func TestIteration(t *testing.T) {
	none := NotIterable()
	assert.False(t, none.Iterable())
	assert.Equal(t, 0, none.Len())
	assert.Empty(t, none.Values())

	empty := Elements()
	assert.True(t, empty.Iterable(), "an empty collection is still iterable")
	assert.Equal(t, 0, empty.Len())

	it := Elements(Int(1), Int(2))
	assert.True(t, it.Iterable())
	assert.Equal(t, 2, it.Len())
	assert.True(t, it.Sequence().Equal(Sequence(Int(1), Int(2))))
}
