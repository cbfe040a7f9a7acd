package varpath

import (
	"fmt"
	"math"
	"strconv"

	"github.com/itsatony/go-varpath/internal"
)

// RenderText converts v to output text.
//
//   - Invalid, Sequence and Mapping render as ""
//   - Bool renders as "true" / "false", numbers in shortest decimal form
//     (floats outside [1e-6, 1e21) switch to exponent form)
//   - Text is HTML-escaped when autoescape is set; SafeText never is
//   - Opaque renders through fmt.Stringer when implemented, else "". A
//     panicking String method renders as ""
func RenderText(v Value, autoescape bool) string {
	switch v.Kind() {
	case KindBool:
		if b, _ := v.AsBool(); b {
			return StringValueTrue
		}
		return StringValueFalse
	case KindInteger:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, internal.IntBase10)
	case KindFloat:
		f, _ := v.AsFloat()
		return formatFloat(f)
	case KindText:
		s, _ := v.AsText()
		if autoescape {
			return internal.EscapeHTML(s)
		}
		return s
	case KindSafeText:
		s, _ := v.AsText()
		return s
	case KindOpaque:
		ref, _ := v.Ref()
		text := stringerText(ref)
		if autoescape {
			return internal.EscapeHTML(text)
		}
		return text
	default:
		return StringValueEmpty
	}
}

func formatFloat(f float64) string {
	var format byte = internal.FloatFormatFixed
	if abs := math.Abs(f); abs != 0 && (abs < internal.FloatFixedMin || abs >= internal.FloatFixedMax) {
		format = internal.FloatFormatExponent
	}
	return strconv.FormatFloat(f, format, internal.FloatPrecisionAll, internal.FloatBitSize64)
}

// stringerText calls String on caller-owned data. Nil refs and panics
// render as "".
func stringerText(ref any) (text string) {
	s, ok := ref.(fmt.Stringer)
	if !ok || isNilRef(ref) {
		return StringValueEmpty
	}
	defer func() {
		if recover() != nil {
			text = StringValueEmpty
		}
	}()
	return s.String()
}

// textOf returns the unescaped textual form of v, the best-effort conversion
// filters work on.
func textOf(v Value) string {
	return RenderText(v, false)
}
