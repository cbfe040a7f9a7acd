package varpath

import (
	"github.com/itsatony/go-varpath/internal"
	"go.uber.org/zap"
)

// Engine resolves dotted variable paths against a Context. It is the entry
// point a renderer uses for variable output, loop domains and filter calls.
//
// An Engine is safe for concurrent use by multiple renders, each with its own
// Context. The registry it holds may be extended while renders run.
type Engine struct {
	registry *Registry
	filters  *FilterSet
	config   *engineConfig
	logger   *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := config.registry
	if registry == nil {
		registry = NewRegistry(logger)
	}
	filters := config.filters
	if filters == nil {
		filters = NewFilterSet(logger)
		RegisterBuiltinFilters(filters)
	}

	logger.Debug(LogMsgEngineCreated, zap.Int(LogFieldCount, registry.Count()))

	return &Engine{
		registry: registry,
		filters:  filters,
		config:   config,
		logger:   logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Registry returns the engine's type registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Filters returns the engine's filter set.
func (e *Engine) Filters() *FilterSet {
	return e.filters
}

// Autoescape reports whether the engine escapes Text output.
func (e *Engine) Autoescape() bool {
	return e.config.autoescape
}

// Resolve resolves path segment by segment against ctx. Any failure yields
// Invalid; failures are logged at debug level and never returned.
func (e *Engine) Resolve(ctx *Context, path []string) Value {
	return e.walk(ctx, path, false).Value
}

// ResolvePath splits a dotted path and resolves it.
func (e *Engine) ResolvePath(ctx *Context, path string) Value {
	return e.Resolve(ctx, internal.SplitPath(path))
}

// Iterate returns the members a loop over v would visit. Sequences iterate
// their elements; Opaque values go through the registry's sequence
// capability. Mappings are not directly iterable: ask for .values or .items.
func (e *Engine) Iterate(v Value) Iteration {
	switch v.Kind() {
	case KindSequence:
		seq, _ := v.AsSequence()
		return Elements(seq...)
	case KindMapping:
		e.logger.Debug(LogMsgIterateMapping)
		return NotIterable()
	case KindOpaque:
		if d, ok := e.registry.Descriptor(v.TypeID()); ok && d.Shape == ShapeKeyed {
			e.logger.Debug(LogMsgIterateMapping, zap.String(LogFieldType, v.TypeID().String()))
			return NotIterable()
		}
		return e.registry.ToSequence(v)
	default:
		return NotIterable()
	}
}

// IteratePath resolves path and iterates the result.
func (e *Engine) IteratePath(ctx *Context, path string) Iteration {
	return e.Iterate(e.ResolvePath(ctx, path))
}

// Render resolves path and converts the result to output text using the
// engine's autoescape setting. Unresolvable paths render as "".
func (e *Engine) Render(ctx *Context, path string) string {
	return e.RenderValue(e.ResolvePath(ctx, path))
}

// RenderValue converts v to output text. Registered containers render as "".
func (e *Engine) RenderValue(v Value) string {
	return RenderText(e.registry.Normalize(v), e.config.autoescape)
}

// ApplyFilter runs the named filter with the engine's autoescape setting.
// Registered containers are unwrapped before the filter sees them.
func (e *Engine) ApplyFilter(name string, input Value, arg Argument) Value {
	return e.filters.Apply(name, e.registry.Normalize(input), arg, e.config.autoescape)
}
