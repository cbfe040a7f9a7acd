package internal

// Path syntax
const (
	PathSeparator = "."
	IntBase10     = 10
)

// String values
const (
	StringValueEmpty = ""
)

// Float formatting (shortest representation that round-trips; fixed
// notation inside [FloatFixedMin, FloatFixedMax), exponent outside)
const (
	FloatFormatFixed    = 'f'
	FloatFormatExponent = 'g'
	FloatPrecisionAll   = -1
	FloatBitSize64      = 64
	FloatFixedMin       = 1e-6
	FloatFixedMax       = 1e21
)

// Suggestion defaults
const (
	MinSuggestionDistance = 2
	SuggestionDistanceDiv = 2
)
