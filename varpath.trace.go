package varpath

import (
	"fmt"
	"strings"

	"github.com/itsatony/go-varpath/internal"
)

// FailureKind classifies why a path did not resolve. None of these abort a
// render: every one collapses to Invalid at the failing segment.
type FailureKind int

// Failure kinds
const (
	FailureNone FailureKind = iota
	// FailureUnboundName: the root name is not bound in any active scope.
	FailureUnboundName
	// FailureUnknownType: an Opaque value's type has no registry entry.
	FailureUnknownType
	// FailureMissingCapability: the type is known but lacks the needed capability.
	FailureMissingCapability
	// FailureIndexOutOfRange: a numeric segment past the end of a Sequence.
	FailureIndexOutOfRange
	// FailureNotAnIndex: a non-numeric segment applied to a Sequence.
	FailureNotAnIndex
	// FailureKeyNotFound: the key is absent from a Mapping (and is not a
	// reserved name), or a record lookup returned nothing.
	FailureKeyNotFound
	// FailureNotApplicable: the segment cannot apply to the value's shape.
	FailureNotApplicable
	// FailureEmptySegment: the path or one of its segments is empty.
	FailureEmptySegment
	// FailureCapabilityFailed: a registered capability panicked.
	FailureCapabilityFailed
)

// String returns the failure kind name.
func (k FailureKind) String() string {
	switch k {
	case FailureUnboundName:
		return FailureNameUnboundName
	case FailureUnknownType:
		return FailureNameUnknownType
	case FailureMissingCapability:
		return FailureNameMissingCapability
	case FailureIndexOutOfRange:
		return FailureNameIndexOutOfRange
	case FailureNotAnIndex:
		return FailureNameNotAnIndex
	case FailureKeyNotFound:
		return FailureNameKeyNotFound
	case FailureNotApplicable:
		return FailureNameNotApplicable
	case FailureEmptySegment:
		return FailureNameEmptySegment
	case FailureCapabilityFailed:
		return FailureNameCapabilityFailed
	default:
		return FailureNameNone
	}
}

// Failure describes where and why a path stopped resolving.
type Failure struct {
	Kind        FailureKind
	Segment     string   // the segment that failed
	Position    int      // index of the segment in the path
	On          Kind     // kind of the value the segment was applied to
	Type        string   // Go type of that value when Opaque
	Suggestions []string // similar names, Trace only
}

// String returns a human-readable description.
func (f *Failure) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at segment %d (%q)", f.Kind, f.Position, f.Segment)
	if f.On == KindOpaque {
		fmt.Fprintf(&sb, " on %s", f.Type)
	} else if f.Position > 0 {
		fmt.Fprintf(&sb, " on %s", f.On)
	}
	if len(f.Suggestions) > 0 {
		sb.WriteString(", ")
		sb.WriteString(internal.FormatSuggestions(f.Suggestions))
	}
	return sb.String()
}

// Resolution is the outcome of Trace: the resolved value and, when it is
// Invalid because of a failure, the failure.
type Resolution struct {
	Value   Value
	Failure *Failure
}

// OK reports whether every segment resolved.
func (r Resolution) OK() bool {
	return r.Failure == nil
}

// Trace resolves path like Resolve and also reports why it failed, with
// "did you mean" suggestions for unbound names and missing mapping keys.
// It is meant for debugging and tooling; renders should use Resolve.
func (e *Engine) Trace(ctx *Context, path []string) Resolution {
	return e.walk(ctx, path, true)
}

// TracePath splits a dotted path and traces it.
func (e *Engine) TracePath(ctx *Context, path string) Resolution {
	return e.Trace(ctx, internal.SplitPath(path))
}
