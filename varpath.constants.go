package varpath

// Reserved segment names understood on Mapping values.
const (
	// SegmentItems yields a Sequence of [key, value] pairs.
	SegmentItems = "items"
	// SegmentValues yields a Sequence of the mapping's values.
	SegmentValues = "values"
)

// Kind names for debugging and diagnostics
const (
	KindNameInvalid  = "invalid"
	KindNameBool     = "bool"
	KindNameInteger  = "integer"
	KindNameFloat    = "float"
	KindNameText     = "text"
	KindNameSafeText = "safe_text"
	KindNameSequence = "sequence"
	KindNameMapping  = "mapping"
	KindNameOpaque   = "opaque"
)

// Container shape names
const (
	ShapeNameRecord  = "record"
	ShapeNameOrdered = "ordered"
	ShapeNameKeyed   = "keyed"
)

// Failure kind names
const (
	FailureNameNone              = "none"
	FailureNameUnboundName       = "unbound_name"
	FailureNameUnknownType       = "unknown_type"
	FailureNameMissingCapability = "missing_capability"
	FailureNameIndexOutOfRange   = "index_out_of_range"
	FailureNameNotAnIndex        = "not_an_index"
	FailureNameKeyNotFound       = "key_not_found"
	FailureNameNotApplicable     = "not_applicable"
	FailureNameEmptySegment      = "empty_segment"
	FailureNameCapabilityFailed  = "capability_failed"
)

// Capability names used in diagnostics
const (
	CapabilityLookup     = "lookup"
	CapabilityToSequence = "toSequence"
	CapabilityToMapping  = "toMapping"
)

// Log message constants
const (
	LogMsgRegistryCreated      = "type registry created"
	LogMsgCapabilityRegistered = "type capability registered"
	LogMsgDescriptorReplaced   = "type descriptor replaced"
	LogMsgNotOpaque            = "lookup on non-opaque value"
	LogMsgUnknownType          = "don't know how to handle type"
	LogMsgNoLookup             = "no lookup function for type"
	LogMsgUnknownTypeList      = "don't know how to handle type for sequence"
	LogMsgNoToSequence         = "no toSequence function for type"
	LogMsgCapabilityPanicked   = "type capability panicked"
	LogMsgEngineCreated        = "engine created"
	LogMsgResolveFailed        = "path resolution failed"
	LogMsgIterateMapping       = "mapping is not directly iterable, use .values or .items"
	LogMsgFilterSetCreated     = "filter set created"
	LogMsgFilterRegistered     = "filter registered"
	LogMsgFilterCollision      = "filter registration collision - first-come-wins"
	LogMsgUnknownFilter        = "unknown filter"
	LogMsgFilterPanicked       = "filter panicked"
)

// Log field names
const (
	LogFieldType       = "type"
	LogFieldKind       = "kind"
	LogFieldProperty   = "property"
	LogFieldCapability = "capability"
	LogFieldPath       = "path"
	LogFieldSegment    = "segment"
	LogFieldPosition   = "position"
	LogFieldFailure    = "failure"
	LogFieldFilter     = "filter"
	LogFieldPanic      = "panic"
	LogFieldCount      = "count"
)

// Metadata keys attached to errors
const (
	MetaKeyType   = "type"
	MetaKeyFilter = "filter"
	MetaKeyQuery  = "query"
)

// Engine defaults
const (
	DefaultAutoescape     = false
	DefaultMaxSuggestions = 3
)

// Text values
const (
	StringValueEmpty = ""
	StringValueTrue  = "true"
	StringValueFalse = "false"
)
