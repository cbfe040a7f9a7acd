package varpath

import (
	"container/list"
	"time"
)

// registerBuiltins seeds a registry with adapters for the container shapes a
// host application is likely to put into a template context.
func registerBuiltins(r *Registry) {
	// terminal: known, no capabilities
	mustRegister(r.Register(TypeOf[SafeString](), TypeDescriptor{}))

	// ordered
	mustRegister(RegisterSlice[any](r))
	mustRegister(RegisterSlice[string](r))
	mustRegister(RegisterSlice[int](r))
	mustRegister(RegisterSlice[int64](r))
	mustRegister(RegisterSlice[float64](r))
	mustRegister(RegisterSlice[bool](r))
	mustRegister(RegisterSlice[map[string]any](r))
	mustRegister(r.RegisterOrderedContainer(TypeOf[*list.List](), linkedListToSequence))

	// keyed, hash-like: unordered
	mustRegister(RegisterMap[any](r))
	mustRegister(RegisterMap[string](r))
	mustRegister(RegisterMap[int](r))

	registerGodsAdapters(r)

	// records
	mustRegister(RegisterRecord(r, timeLookup))
	mustRegister(RegisterRecord(r, func(t *time.Time, property string) Value {
		if t == nil {
			return Invalid()
		}
		return timeLookup(*t, property)
	}))
	registerEnum(r)
	registerRowSet(r)
}

// RegisterSlice registers []T as an ordered container. Elements are converted
// with ValueOf, so records inside the slice stay Opaque and resolve through
// their own registration.
func RegisterSlice[T any](r *Registry) error {
	return r.RegisterOrderedContainer(TypeOf[[]T](), func(v Value) Iteration {
		ref, _ := v.Ref()
		items, ok := ref.([]T)
		if !ok {
			return NotIterable()
		}
		values := make([]Value, len(items))
		for i, item := range items {
			values[i] = ValueOf(item)
		}
		return Elements(values...)
	})
}

// RegisterMap registers map[string]V as a keyed container. Go maps are
// hash-like, so the resulting Mapping is unordered.
func RegisterMap[V any](r *Registry) error {
	return r.RegisterKeyedContainer(TypeOf[map[string]V](), func(v Value) *Mapping {
		ref, _ := v.Ref()
		native, ok := ref.(map[string]V)
		if !ok {
			return nil
		}
		m := NewUnorderedMapping()
		for k, item := range native {
			m.Set(k, ValueOf(item))
		}
		return m
	})
}

// linkedListToSequence walks a container/list front to back.
func linkedListToSequence(v Value) Iteration {
	ref, _ := v.Ref()
	l, ok := ref.(*list.List)
	if !ok || l == nil {
		return NotIterable()
	}
	values := make([]Value, 0, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		values = append(values, ValueOf(e.Value))
	}
	return Elements(values...)
}

// timeLookup exposes calendar fields of a time.Time.
func timeLookup(t time.Time, property string) Value {
	switch property {
	case TimePropYear:
		return Int(int64(t.Year()))
	case TimePropMonth:
		return Int(int64(t.Month()))
	case TimePropDay:
		return Int(int64(t.Day()))
	case TimePropHour:
		return Int(int64(t.Hour()))
	case TimePropMinute:
		return Int(int64(t.Minute()))
	case TimePropSecond:
		return Int(int64(t.Second()))
	case TimePropWeekday:
		return Text(t.Weekday().String())
	case TimePropUnix:
		return Int(t.Unix())
	default:
		return Invalid()
	}
}

// time.Time properties
const (
	TimePropYear    = "year"
	TimePropMonth   = "month"
	TimePropDay     = "day"
	TimePropHour    = "hour"
	TimePropMinute  = "minute"
	TimePropSecond  = "second"
	TimePropWeekday = "weekday"
	TimePropUnix    = "unix"
)
