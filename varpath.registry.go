package varpath

import (
	"fmt"
	"sync"

	"github.com/itsatony/go-varpath/internal"
	"go.uber.org/zap"
)

// LookupFunc resolves a named property on an Opaque value of a registered type.
// Returning Invalid means the property does not exist.
type LookupFunc func(v Value, property string) Value

// ToSequenceFunc converts an Opaque value to its members. It may inspect the
// value, not just its type, and return NotIterable when the value currently
// denotes a single element rather than a collection.
type ToSequenceFunc func(v Value) Iteration

// ToMappingFunc normalizes a keyed native container. The adapter decides
// whether the returned Mapping is ordered.
type ToMappingFunc func(v Value) *Mapping

// Shape classifies how the resolver treats values of a registered type.
type Shape int

// Shapes. Ordered and keyed containers are unwrapped into Sequence and Mapping
// before path segments are applied; records are resolved through Lookup.
const (
	ShapeRecord Shape = iota
	ShapeOrdered
	ShapeKeyed
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeOrdered:
		return ShapeNameOrdered
	case ShapeKeyed:
		return ShapeNameKeyed
	default:
		return ShapeNameRecord
	}
}

// TypeDescriptor holds the capabilities registered for one native type.
// Every capability is optional.
type TypeDescriptor struct {
	Shape      Shape
	Lookup     LookupFunc
	ToSequence ToSequenceFunc
	ToMapping  ToMappingFunc
}

// Registry maps native type identities to capability functions so the
// resolver can reach into application data it has no compile-time knowledge of.
//
// Registration and lookup are both synchronized with one reader-writer lock:
// registering while renders are in flight is safe. Capability functions are
// invoked outside the lock.
type Registry struct {
	types  *internal.Table[TypeID, TypeDescriptor]
	logger *zap.Logger
}

// NewRegistry creates a registry seeded with the built-in container adapters.
func NewRegistry(logger *zap.Logger) *Registry {
	r := NewEmptyRegistry(logger)
	registerBuiltins(r)
	r.logger.Debug(LogMsgRegistryCreated, zap.Int(LogFieldCount, r.Count()))
	return r
}

// NewEmptyRegistry creates a registry with no entries.
func NewEmptyRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		types:  internal.NewTable[TypeID, TypeDescriptor](),
		logger: logger,
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns a process-wide registry, created on first use.
// Engines only share it when configured with WithRegistry(DefaultRegistry()).
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(nil)
	})
	return defaultRegistry
}

// Register installs desc for id, replacing any previous descriptor entirely.
// A descriptor without capabilities marks the type as known but inert.
func (r *Registry) Register(id TypeID, desc TypeDescriptor) error {
	if id.IsZero() {
		return NewRegistrationError(ErrMsgZeroTypeID, id)
	}
	if r.types.Has(id) {
		r.logger.Debug(LogMsgDescriptorReplaced, zap.String(LogFieldType, id.String()))
	}
	r.types.Set(id, desc)
	return nil
}

// RegisterLookup installs or replaces the lookup capability for id.
// Other capabilities already registered for id are kept.
func (r *Registry) RegisterLookup(id TypeID, fn LookupFunc) error {
	if id.IsZero() {
		return NewRegistrationError(ErrMsgZeroTypeID, id)
	}
	if fn == nil {
		return NewRegistrationError(ErrMsgNilLookup, id)
	}
	r.types.Update(id, func(d TypeDescriptor, _ bool) TypeDescriptor {
		d.Lookup = fn
		return d
	})
	r.logCapability(id, CapabilityLookup)
	return nil
}

// RegisterToSequence installs or replaces the sequence capability for id.
func (r *Registry) RegisterToSequence(id TypeID, fn ToSequenceFunc) error {
	if id.IsZero() {
		return NewRegistrationError(ErrMsgZeroTypeID, id)
	}
	if fn == nil {
		return NewRegistrationError(ErrMsgNilToSequence, id)
	}
	r.types.Update(id, func(d TypeDescriptor, _ bool) TypeDescriptor {
		d.ToSequence = fn
		return d
	})
	r.logCapability(id, CapabilityToSequence)
	return nil
}

// RegisterOrderedContainer registers id as an ordered container: values of
// the type are unwrapped into a Sequence by fn and indexed numerically.
func (r *Registry) RegisterOrderedContainer(id TypeID, fn ToSequenceFunc) error {
	if id.IsZero() {
		return NewRegistrationError(ErrMsgZeroTypeID, id)
	}
	if fn == nil {
		return NewRegistrationError(ErrMsgNilToSequence, id)
	}
	r.types.Update(id, func(d TypeDescriptor, _ bool) TypeDescriptor {
		d.Shape = ShapeOrdered
		d.ToSequence = fn
		return d
	})
	r.logCapability(id, CapabilityToSequence)
	return nil
}

// RegisterKeyedContainer registers id as a keyed container: values of the
// type are unwrapped into a Mapping by fn.
func (r *Registry) RegisterKeyedContainer(id TypeID, fn ToMappingFunc) error {
	if id.IsZero() {
		return NewRegistrationError(ErrMsgZeroTypeID, id)
	}
	if fn == nil {
		return NewRegistrationError(ErrMsgNilToMapping, id)
	}
	r.types.Update(id, func(d TypeDescriptor, _ bool) TypeDescriptor {
		d.Shape = ShapeKeyed
		d.ToMapping = fn
		return d
	})
	r.logCapability(id, CapabilityToMapping)
	return nil
}

func (r *Registry) logCapability(id TypeID, capability string) {
	r.logger.Debug(LogMsgCapabilityRegistered,
		zap.String(LogFieldType, id.String()),
		zap.String(LogFieldCapability, capability))
}

// HasRegisteredLookup reports whether id has a lookup capability.
func (r *Registry) HasRegisteredLookup(id TypeID) bool {
	d, ok := r.types.Get(id)
	return ok && d.Lookup != nil
}

// HasRegisteredToSequence reports whether id has a sequence capability.
func (r *Registry) HasRegisteredToSequence(id TypeID) bool {
	d, ok := r.types.Get(id)
	return ok && d.ToSequence != nil
}

// Descriptor returns the descriptor registered for id.
func (r *Registry) Descriptor(id TypeID) (TypeDescriptor, bool) {
	return r.types.Get(id)
}

// Types returns the names of all registered types, sorted.
func (r *Registry) Types() []string {
	return r.types.Names(TypeID.String)
}

// Count returns the number of registered types.
func (r *Registry) Count() int {
	return r.types.Len()
}

// Lookup resolves property on an Opaque value. It never fails loudly: a
// non-opaque value, an unknown type, a type without a lookup capability or
// a panicking capability all yield Invalid plus a warning.
func (r *Registry) Lookup(v Value, property string) Value {
	result, _ := r.lookup(v, property)
	return result
}

func (r *Registry) lookup(v Value, property string) (Value, FailureKind) {
	if !v.IsValid() {
		return Invalid(), FailureNotApplicable
	}
	if v.Kind() != KindOpaque {
		r.logger.Warn(LogMsgNotOpaque,
			zap.String(LogFieldKind, v.Kind().String()),
			zap.String(LogFieldProperty, property))
		return Invalid(), FailureNotApplicable
	}

	id := v.TypeID()
	d, ok := r.types.Get(id)
	if !ok {
		r.logger.Warn(LogMsgUnknownType,
			zap.String(LogFieldType, id.String()),
			zap.String(LogFieldProperty, property))
		return Invalid(), FailureUnknownType
	}
	if d.Lookup == nil {
		r.logger.Warn(LogMsgNoLookup,
			zap.String(LogFieldType, id.String()),
			zap.String(LogFieldProperty, property))
		return Invalid(), FailureMissingCapability
	}

	result, failed := r.invoke(id, CapabilityLookup, func() Value { return d.Lookup(v, property) })
	if failed {
		return Invalid(), FailureCapabilityFailed
	}
	if !result.IsValid() {
		return result, FailureKeyNotFound
	}
	return result, FailureNone
}

// ToSequence converts an Opaque value to its members. Unknown types, types
// without the capability and non-opaque values yield NotIterable.
func (r *Registry) ToSequence(v Value) Iteration {
	it, _ := r.toSequence(v)
	return it
}

func (r *Registry) toSequence(v Value) (Iteration, FailureKind) {
	if v.Kind() != KindOpaque {
		return NotIterable(), FailureNotApplicable
	}

	id := v.TypeID()
	d, ok := r.types.Get(id)
	if !ok {
		r.logger.Warn(LogMsgUnknownTypeList, zap.String(LogFieldType, id.String()))
		return NotIterable(), FailureUnknownType
	}
	if d.ToSequence == nil {
		r.logger.Warn(LogMsgNoToSequence, zap.String(LogFieldType, id.String()))
		return NotIterable(), FailureMissingCapability
	}

	var it Iteration
	_, failed := r.invoke(id, CapabilityToSequence, func() Value {
		it = d.ToSequence(v)
		return Invalid()
	})
	if failed {
		return NotIterable(), FailureCapabilityFailed
	}
	return it, FailureNone
}

// Normalize unwraps an Opaque value whose type is registered as a container:
// ordered containers become a Sequence, keyed containers a Mapping. Any other
// value is returned unchanged.
func (r *Registry) Normalize(v Value) Value {
	if v.Kind() != KindOpaque {
		return v
	}
	d, ok := r.types.Get(v.TypeID())
	if !ok {
		return v
	}

	switch {
	case d.Shape == ShapeOrdered && d.ToSequence != nil:
		var it Iteration
		if _, failed := r.invoke(v.TypeID(), CapabilityToSequence, func() Value {
			it = d.ToSequence(v)
			return Invalid()
		}); failed {
			return Invalid()
		}
		return it.Sequence()
	case d.Shape == ShapeKeyed && d.ToMapping != nil:
		var m *Mapping
		if _, failed := r.invoke(v.TypeID(), CapabilityToMapping, func() Value {
			m = d.ToMapping(v)
			return Invalid()
		}); failed || m == nil {
			return Invalid()
		}
		return MappingValue(m)
	default:
		return v
	}
}

// invoke runs a capability, turning a panic into a warning.
func (r *Registry) invoke(id TypeID, capability string, fn func() Value) (result Value, failed bool) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn(LogMsgCapabilityPanicked,
				zap.String(LogFieldType, id.String()),
				zap.String(LogFieldCapability, capability),
				zap.String(LogFieldPanic, fmt.Sprint(p)))
			result, failed = Invalid(), true
		}
	}()
	return fn(), false
}

// mustRegister panics on registration errors; used for built-ins only.
func mustRegister(err error) {
	if err != nil {
		panic(fmt.Sprintf("%s: %v", ErrMsgRegistrationPanic, err))
	}
}
