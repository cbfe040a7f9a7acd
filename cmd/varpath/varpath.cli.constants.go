package main

// Command names
const (
	CmdNameResolve = "resolve"
	CmdNameVersion = "version"
)

// Flag names - long form
const (
	FlagDataFile   = "data-file"
	FlagAutoescape = "autoescape"
	FlagTrace      = "trace"
	FlagDSN        = "dsn"
	FlagQuery      = "query"
	FlagRowsName   = "rows-name"
	FlagVerbose    = "verbose"
	FlagFormat     = "format"
)

// Flag names - short form
const (
	FlagDataFileShort = "f"
	FlagVerboseShort  = "v"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultRowsName = "rows"
	FlagDefaultFormat   = OutputFormatText
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeInputError = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Expression syntax: path|filter:"arg"|filter
const (
	ExprFilterSeparator = "|"
	ExprArgSeparator    = ":"
	ExprQuote           = `"`
)

// Error messages
const (
	ErrMsgReadFileFailed  = "failed to read data file"
	ErrMsgDecodeFailed    = "failed to decode data file"
	ErrMsgQueryFailed     = "failed to load query rows"
	ErrMsgQueryWithoutDSN = "--query requires --dsn"
	ErrMsgInvalidFormat   = "invalid output format"
	ErrMsgNoPaths         = "at least one path is required"
	ErrMsgEngineFailed    = "failed to create engine"
)

// Help text
const (
	CLIName        = "varpath"
	CLIShort       = "Resolve template variable paths against a data file"
	CLIResolveUse  = CmdNameResolve + " [flags] <path>..."
	CLIResolveText = "Resolve dotted paths against a YAML or JSON data file"
	CLIResolveLong = `Resolve dotted paths against a YAML or JSON data file.

Each argument is a path with optional filters, printed one line per path:

    varpath resolve -f data.yaml person.name
    varpath resolve -f data.yaml 'people|join:", "' 'person.name|upper'
    cat data.json | varpath resolve -f - people.0

Missing values print as empty lines. Use --trace to see why a path failed.`
	CLIVersionText = "Show version information"
)

// Version output
const (
	VersionTextTemplate = "go-varpath version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s\nTypes: %d\nFilters: %d"
	VersionUnknown      = "unknown"
	VersionsFileName    = "versions.yaml"
	VersionDevel        = "(devel)"
)

// Paths resolved against versions.yaml
const (
	VersionPathVersion   = "project.version"
	VersionPathCommit    = "git.commit"
	VersionPathBranch    = "git.branch"
	VersionPathBuildTime = "build.time"
	VersionPathGoVersion = "build.go_version"
)

// Build info settings stamped by the go tool
const (
	BuildSettingRevision = "vcs.revision"
	BuildSettingTime     = "vcs.time"
)

// Format string constants
const (
	FmtErrorWithCause = "%s: %v"
	FmtTraceLine      = "%s\t# %s\n"
	FmtNewline        = "\n"
)

// File permission constant
const (
	FilePermissions = 0644
)
