package varpath

import (
	"github.com/itsatony/go-cuserr"
)

// Error message constants
const (
	ErrMsgZeroTypeID        = "type identity cannot be empty"
	ErrMsgNilLookup         = "lookup function cannot be nil"
	ErrMsgNilToSequence     = "toSequence function cannot be nil"
	ErrMsgNilToMapping      = "toMapping function cannot be nil"
	ErrMsgEmptyFilterName   = "filter name cannot be empty"
	ErrMsgNilFilter         = "filter function cannot be nil"
	ErrMsgFilterExists      = "filter already registered"
	ErrMsgYAMLDecodeFailed  = "failed to decode YAML document"
	ErrMsgYAMLNotMapping    = "YAML document root must be a mapping"
	ErrMsgYAMLNonScalarKey  = "YAML mapping keys must be scalars"
	ErrMsgQueryFailed       = "SQL query failed"
	ErrMsgScanFailed        = "failed to scan SQL row"
	ErrMsgOpenFailed        = "failed to open database connection"
	ErrMsgNilDB             = "database handle cannot be nil"
	ErrMsgPopEmptyContext   = "varpath: pop on empty context scope stack"
	ErrMsgPopRootScope      = "varpath: pop would remove the root scope"
	ErrMsgPushNilScope      = "varpath: push of nil scope"
	ErrMsgStructNotStruct   = "RegisterStruct requires a struct or pointer-to-struct type"
	ErrMsgRegistrationPanic = "varpath: built-in registration failed"
)

// Error code constants for categorization
const (
	ErrCodeRegistry = "VARPATH_REGISTRY"
	ErrCodeFilter   = "VARPATH_FILTER"
	ErrCodeSource   = "VARPATH_SOURCE"
)

// NewRegistrationError creates an error for invalid type registrations.
func NewRegistrationError(msg string, id TypeID) error {
	return cuserr.NewValidationError(ErrCodeRegistry, msg).
		WithMetadata(MetaKeyType, id.String())
}

// NewFilterError creates an error for invalid filter registrations.
func NewFilterError(msg, name string) error {
	return cuserr.NewValidationError(ErrCodeFilter, msg).
		WithMetadata(MetaKeyFilter, name)
}

// NewSourceError wraps a data source failure.
func NewSourceError(msg string, cause error) error {
	if cause == nil {
		return cuserr.NewValidationError(ErrCodeSource, msg)
	}
	return cuserr.WrapStdError(cause, ErrCodeSource, msg)
}

// NewQueryError wraps a failed SQL query with the query text.
func NewQueryError(msg, query string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeSource, msg).
		WithMetadata(MetaKeyQuery, query)
}
