package varpath

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/itsatony/go-varpath/internal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Built-in filter names
const (
	FilterUpper          = "upper"
	FilterLower          = "lower"
	FilterCapFirst       = "capfirst"
	FilterTitle          = "title"
	FilterCut            = "cut"
	FilterAddSlashes     = "addslashes"
	FilterSafe           = "safe"
	FilterEscape         = "escape"
	FilterJoin           = "join"
	FilterYesNo          = "yesno"
	FilterDefaultIfNone  = "default_if_none"
	FilterTruncateWords  = "truncatewords"
	FilterAdd            = "add"
	FilterGetDigit       = "get_digit"
	FilterLength         = "length"
	FilterFileSizeFormat = "filesizeformat"
	FilterIntComma       = "intcomma"
	FilterDate           = "date"
	FilterTimeSince      = "timesince"
)

// Filter defaults
const (
	DefaultYesNoChoices   = "yes,no,maybe"
	DefaultDateLayout     = "2006-01-02"
	TruncateWordsEllipsis = " ..."
	yesNoSeparator        = ","
)

// RegisterBuiltinFilters registers the built-in filter catalog.
func RegisterBuiltinFilters(s *FilterSet) {
	s.MustRegister(FilterUpper, stringFilter(strings.ToUpper))
	s.MustRegister(FilterLower, stringFilter(strings.ToLower))
	s.MustRegister(FilterCapFirst, stringFilter(capFirst))
	s.MustRegister(FilterTitle, stringFilter(title))
	s.MustRegister(FilterAddSlashes, stringFilter(internal.AddSlashes))
	s.MustRegister(FilterCut, filterCut)
	s.MustRegister(FilterSafe, filterSafe)
	s.MustRegister(FilterEscape, filterEscape)
	s.MustRegister(FilterJoin, filterJoin)
	s.MustRegister(FilterYesNo, filterYesNo)
	s.MustRegister(FilterDefaultIfNone, filterDefaultIfNone)
	s.MustRegister(FilterTruncateWords, filterTruncateWords)
	s.MustRegister(FilterAdd, filterAdd)
	s.MustRegister(FilterGetDigit, filterGetDigit)
	s.MustRegister(FilterLength, filterLength)
	s.MustRegister(FilterFileSizeFormat, filterFileSizeFormat)
	s.MustRegister(FilterIntComma, filterIntComma)
	s.MustRegister(FilterDate, filterDate)
	s.MustRegister(FilterTimeSince, filterTimeSince)
}

// stringFilter lifts a string transformation into a filter that keeps the
// safe marking of its input.
func stringFilter(fn func(string) string) FilterFunc {
	return func(input Value, _ Argument, _ bool) Value {
		return keepSafe(input, fn(textOf(input)))
	}
}

func capFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// title builds a Caser per call; Casers are not safe for concurrent use.
func title(s string) string {
	return cases.Title(language.Und).String(s)
}

func filterCut(input Value, arg Argument, _ bool) Value {
	s := textOf(input)
	if !arg.Set || arg.Text == StringValueEmpty {
		return keepSafe(input, s)
	}
	return keepSafe(input, strings.ReplaceAll(s, arg.Text, StringValueEmpty))
}

func filterSafe(input Value, _ Argument, _ bool) Value {
	return SafeText(textOf(input))
}

func filterEscape(input Value, _ Argument, _ bool) Value {
	if input.IsSafe() {
		return input
	}
	return SafeText(internal.EscapeHTML(textOf(input)))
}

// filterJoin joins sequence elements with the argument. Under autoescape,
// plain elements and a plain separator are escaped and the result is safe.
func filterJoin(input Value, arg Argument, autoescape bool) Value {
	seq, ok := input.AsSequence()
	if !ok {
		return keepSafe(input, textOf(input))
	}
	sep := arg.Or(StringValueEmpty)
	if autoescape {
		sep = internal.EscapeHTML(sep)
	}
	parts := make([]string, len(seq))
	for i, item := range seq {
		parts[i] = RenderText(item, autoescape)
	}
	joined := strings.Join(parts, sep)
	if autoescape {
		return SafeText(joined)
	}
	return Text(joined)
}

func filterYesNo(input Value, arg Argument, _ bool) Value {
	choices := strings.Split(arg.Or(DefaultYesNoChoices), yesNoSeparator)
	if len(choices) < 2 {
		return keepSafe(input, textOf(input))
	}
	switch {
	case !input.IsValid():
		if len(choices) > 2 {
			return Text(choices[2])
		}
		return Text(choices[1])
	case input.Truthy():
		return Text(choices[0])
	default:
		return Text(choices[1])
	}
}

func filterDefaultIfNone(input Value, arg Argument, _ bool) Value {
	if !input.IsValid() {
		return Text(arg.Or(StringValueEmpty))
	}
	return keepSafe(input, textOf(input))
}

func filterTruncateWords(input Value, arg Argument, _ bool) Value {
	s := textOf(input)
	n, err := strconv.Atoi(arg.Or(StringValueEmpty))
	if err != nil || n < 0 {
		return keepSafe(input, s)
	}
	words := strings.Fields(s)
	if len(words) <= n {
		return keepSafe(input, strings.Join(words, " "))
	}
	return keepSafe(input, strings.Join(words[:n], " ")+TruncateWordsEllipsis)
}

// filterAdd adds integers when both sides are integers, floats when both are
// numbers, and otherwise concatenates text.
func filterAdd(input Value, arg Argument, _ bool) Value {
	a, aIsInt := integerOf(input)
	b, bErr := strconv.ParseInt(strings.TrimSpace(arg.Text), internal.IntBase10, 64)
	if aIsInt && bErr == nil {
		return Int(a + b)
	}
	af, aIsNum := numberOf(input)
	bf, bfErr := strconv.ParseFloat(strings.TrimSpace(arg.Text), internal.FloatBitSize64)
	if aIsNum && bfErr == nil {
		return Float(af + bf)
	}
	return keepSafe(input, textOf(input)+arg.Text)
}

// filterGetDigit returns the n-th digit from the right (1-based). Invalid
// input or argument returns the input unchanged.
func filterGetDigit(input Value, arg Argument, _ bool) Value {
	n, ok := integerOf(input)
	pos, err := strconv.Atoi(arg.Or(StringValueEmpty))
	if !ok || err != nil || pos < 1 {
		return keepSafe(input, textOf(input))
	}
	digits := strconv.FormatInt(n, internal.IntBase10)
	digits = strings.TrimPrefix(digits, "-")
	if pos > len(digits) {
		return Int(0)
	}
	return Int(int64(digits[len(digits)-pos] - '0'))
}

func filterLength(input Value, _ Argument, _ bool) Value {
	switch input.Kind() {
	case KindText, KindSafeText:
		s, _ := input.AsText()
		return Int(int64(utf8.RuneCountInString(s)))
	default:
		return Int(int64(input.Len()))
	}
}

func filterFileSizeFormat(input Value, _ Argument, _ bool) Value {
	n, ok := numberOf(input)
	if !ok || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	if n >= math.MaxUint64 {
		size, _ := new(big.Float).SetFloat64(n).Int(nil)
		return Text(humanize.BigBytes(size))
	}
	return Text(humanize.Bytes(uint64(n)))
}

func filterIntComma(input Value, _ Argument, _ bool) Value {
	if i, ok := integerOf(input); ok {
		return Text(humanize.Comma(i))
	}
	if f, ok := numberOf(input); ok {
		return Text(humanize.Commaf(f))
	}
	return keepSafe(input, textOf(input))
}

func filterDate(input Value, arg Argument, _ bool) Value {
	t, ok := timeOf(input)
	if !ok {
		return Text(StringValueEmpty)
	}
	return Text(t.Format(arg.Or(DefaultDateLayout)))
}

func filterTimeSince(input Value, _ Argument, _ bool) Value {
	t, ok := timeOf(input)
	if !ok {
		return Text(StringValueEmpty)
	}
	return Text(strings.TrimSpace(humanize.RelTime(t, time.Now(), StringValueEmpty, StringValueEmpty)))
}

// integerOf reads an integer from an Integer value or decimal text.
func integerOf(v Value) (int64, bool) {
	if i, ok := v.AsInt(); ok {
		return i, true
	}
	if s, ok := v.AsText(); ok {
		i, err := strconv.ParseInt(strings.TrimSpace(s), internal.IntBase10, 64)
		return i, err == nil
	}
	return 0, false
}

// numberOf reads a float from a numeric value or numeric text.
func numberOf(v Value) (float64, bool) {
	if f, ok := v.AsFloat(); ok {
		return f, true
	}
	if s, ok := v.AsText(); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), internal.FloatBitSize64)
		return f, err == nil
	}
	return 0, false
}

func timeOf(v Value) (time.Time, bool) {
	ref, ok := v.Ref()
	if !ok {
		return time.Time{}, false
	}
	switch t := ref.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	default:
		return time.Time{}, false
	}
}
