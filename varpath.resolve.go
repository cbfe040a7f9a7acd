package varpath

import (
	"github.com/itsatony/go-varpath/internal"
	"go.uber.org/zap"
)

// walk applies path to ctx left to right. The first failing segment ends
// the walk with Invalid; nothing after it is attempted. When explain is set
// the failure carries "did you mean" suggestions.
func (e *Engine) walk(ctx *Context, path []string, explain bool) Resolution {
	if ctx == nil || len(path) == 0 || path[0] == StringValueEmpty {
		return e.fail(path, &Failure{Kind: FailureEmptySegment})
	}

	current, ok := ctx.ResolveRoot(path[0])
	if !ok {
		f := &Failure{Kind: FailureUnboundName, Segment: path[0]}
		if explain {
			f.Suggestions = e.suggest(path[0], ctx.Names())
		}
		return e.fail(path, f)
	}

	for pos := 1; pos < len(path); pos++ {
		segment := path[pos]
		if segment == StringValueEmpty {
			return e.fail(path, &Failure{Kind: FailureEmptySegment, Position: pos})
		}

		current = e.registry.Normalize(current)
		next, kind := e.step(current, segment)
		if kind != FailureNone {
			f := &Failure{
				Kind:     kind,
				Segment:  segment,
				Position: pos,
				On:       current.Kind(),
			}
			if current.Kind() == KindOpaque {
				f.Type = current.TypeID().String()
			}
			if explain && kind == FailureKeyNotFound {
				if m, isMapping := current.AsMapping(); isMapping {
					f.Suggestions = e.suggest(segment, append(m.Keys(), SegmentItems, SegmentValues))
				}
			}
			return e.fail(path, f)
		}
		current = next
	}

	return Resolution{Value: current}
}

// step applies one segment to the current value.
func (e *Engine) step(current Value, segment string) (Value, FailureKind) {
	switch current.Kind() {
	case KindInvalid:
		return Invalid(), FailureNotApplicable

	case KindMapping:
		m, _ := current.AsMapping()
		if v, ok := m.Get(segment); ok {
			return v, FailureNone
		}
		switch segment {
		case SegmentItems:
			return Sequence(m.Items()...), FailureNone
		case SegmentValues:
			return Sequence(m.Values()...), FailureNone
		}
		return Invalid(), FailureKeyNotFound

	case KindSequence:
		seq, _ := current.AsSequence()
		index, ok := internal.ParseIndex(segment)
		if !ok {
			return Invalid(), FailureNotAnIndex
		}
		if index >= len(seq) {
			return Invalid(), FailureIndexOutOfRange
		}
		return seq[index], FailureNone

	case KindOpaque:
		return e.registry.lookup(current, segment)

	default:
		return Invalid(), FailureNotApplicable
	}
}

func (e *Engine) fail(path []string, f *Failure) Resolution {
	e.logger.Debug(LogMsgResolveFailed,
		zap.Strings(LogFieldPath, path),
		zap.String(LogFieldSegment, f.Segment),
		zap.Int(LogFieldPosition, f.Position),
		zap.String(LogFieldFailure, f.Kind.String()))
	return Resolution{Value: Invalid(), Failure: f}
}

func (e *Engine) suggest(target string, candidates []string) []string {
	return internal.FindSimilarStrings(target, candidates, e.config.maxSuggestions)
}
