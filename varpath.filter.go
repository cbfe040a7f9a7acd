package varpath

import (
	"fmt"

	"github.com/itsatony/go-varpath/internal"
	"go.uber.org/zap"
)

// Argument is the optional textual argument of a filter call
// ({{ value|filter:"argument" }}).
type Argument struct {
	Text string
	Set  bool
}

// NoArg is the absent argument.
var NoArg = Argument{}

// Arg creates a present argument.
func Arg(s string) Argument {
	return Argument{Text: s, Set: true}
}

// Or returns the argument text, or def when the argument is absent.
func (a Argument) Or(def string) string {
	if !a.Set {
		return def
	}
	return a.Text
}

// FilterFunc transforms a value for output. Implementations must not panic
// on type mismatches: they degrade to a best-effort textual conversion or
// empty output. The result should be Text or SafeText, and SafeText inputs
// must not be escaped again when autoescape is set.
type FilterFunc func(input Value, arg Argument, autoescape bool) Value

// FilterSet is a named collection of filters with first-come-wins
// registration. It is safe for concurrent use.
type FilterSet struct {
	filters *internal.Table[string, FilterFunc]
	logger  *zap.Logger
}

// NewFilterSet creates an empty filter set.
func NewFilterSet(logger *zap.Logger) *FilterSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgFilterSetCreated)
	return &FilterSet{
		filters: internal.NewTable[string, FilterFunc](),
		logger:  logger,
	}
}

// Register adds a filter. Registering a name twice returns an error and
// keeps the first filter.
func (s *FilterSet) Register(name string, fn FilterFunc) error {
	if name == StringValueEmpty {
		return NewFilterError(ErrMsgEmptyFilterName, name)
	}
	if fn == nil {
		return NewFilterError(ErrMsgNilFilter, name)
	}
	if !s.filters.SetIfAbsent(name, fn) {
		s.logger.Warn(LogMsgFilterCollision, zap.String(LogFieldFilter, name))
		return NewFilterError(ErrMsgFilterExists, name)
	}
	s.logger.Debug(LogMsgFilterRegistered, zap.String(LogFieldFilter, name))
	return nil
}

// MustRegister adds a filter and panics if registration fails.
func (s *FilterSet) MustRegister(name string, fn FilterFunc) {
	if err := s.Register(name, fn); err != nil {
		panic(err)
	}
}

// Has reports whether a filter is registered under name.
func (s *FilterSet) Has(name string) bool {
	return s.filters.Has(name)
}

// Names returns all filter names, sorted.
func (s *FilterSet) Names() []string {
	return s.filters.Names(func(name string) string { return name })
}

// Apply invokes the named filter. It never fails: an unknown filter passes
// the input through as text, a panicking filter yields empty text, and a
// non-text result is converted to Text. All of these are logged as warnings.
func (s *FilterSet) Apply(name string, input Value, arg Argument, autoescape bool) (result Value) {
	fn, ok := s.filters.Get(name)
	if !ok {
		s.logger.Warn(LogMsgUnknownFilter, zap.String(LogFieldFilter, name))
		return keepSafe(input, textOf(input))
	}

	defer func() {
		if p := recover(); p != nil {
			s.logger.Warn(LogMsgFilterPanicked,
				zap.String(LogFieldFilter, name),
				zap.String(LogFieldPanic, fmt.Sprint(p)))
			result = Text(StringValueEmpty)
		}
	}()

	out := fn(input, arg, autoescape)
	if out.IsText() {
		return out
	}
	return Text(textOf(out))
}

// keepSafe returns s as SafeText when input was SafeText, Text otherwise.
func keepSafe(input Value, s string) Value {
	if input.IsSafe() {
		return SafeText(s)
	}
	return Text(s)
}
