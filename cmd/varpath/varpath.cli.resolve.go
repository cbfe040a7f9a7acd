package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/itsatony/go-varpath"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// resolveConfig holds parsed resolve command configuration
type resolveConfig struct {
	dataFile   string
	autoescape bool
	trace      bool
	dsn        string
	query      string
	rowsName   string
	verbose    bool
}

// filterCall is one |name:"arg" step of an expression
type filterCall struct {
	name string
	arg  varpath.Argument
}

func newResolveCmd() *cobra.Command {
	cfg := &resolveConfig{}
	cmd := &cobra.Command{
		Use:   CLIResolveUse,
		Short: CLIResolveText,
		Long:  CLIResolveLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &exitError{code: ExitCodeUsageError, msg: ErrMsgNoPaths}
			}
			if cfg.query != "" && cfg.dsn == "" {
				return &exitError{code: ExitCodeUsageError, msg: ErrMsgQueryWithoutDSN}
			}
			return runResolve(cmd.Context(), cfg, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.dataFile, FlagDataFile, FlagDataFileShort, "", `YAML or JSON data file ("-" for stdin)`)
	flags.BoolVar(&cfg.autoescape, FlagAutoescape, varpath.DefaultAutoescape, "HTML-escape plain text output")
	flags.BoolVar(&cfg.trace, FlagTrace, false, "annotate unresolved paths with the failure")
	flags.StringVar(&cfg.dsn, FlagDSN, "", "PostgreSQL connection string for --query")
	flags.StringVar(&cfg.query, FlagQuery, "", "SQL query whose rows are bound in the context")
	flags.StringVar(&cfg.rowsName, FlagRowsName, FlagDefaultRowsName, "context name for --query rows")
	flags.BoolVarP(&cfg.verbose, FlagVerbose, FlagVerboseShort, false, "log diagnostics to stderr")
	return cmd
}

func runResolve(ctx context.Context, cfg *resolveConfig, exprs []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := newLogger(cfg.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	engine, err := varpath.New(
		varpath.WithLogger(logger),
		varpath.WithAutoescape(cfg.autoescape),
	)
	if err != nil {
		return &exitError{code: ExitCodeError, msg: ErrMsgEngineFailed, err: err}
	}

	vctx, err := loadContext(cfg.dataFile, stdin)
	if err != nil {
		return err
	}

	if cfg.dsn != "" {
		rows, err := loadRows(ctx, cfg.dsn, cfg.query)
		if err != nil {
			return &exitError{code: ExitCodeInputError, msg: ErrMsgQueryFailed, err: err}
		}
		vctx.Insert(cfg.rowsName, rows.Value())
	}

	for _, expr := range exprs {
		path, filters := parseExpression(expr)
		res := engine.TracePath(vctx, path)
		value := res.Value
		for _, f := range filters {
			value = engine.ApplyFilter(f.name, value, f.arg)
		}
		line := engine.RenderValue(value)

		if cfg.trace && !res.OK() {
			fmt.Fprintf(stdout, FmtTraceLine, line, res.Failure)
			continue
		}
		fmt.Fprint(stdout, line+FmtNewline)
	}
	return nil
}

func loadContext(dataFile string, stdin io.Reader) (*varpath.Context, error) {
	if dataFile == "" {
		return varpath.NewContext(nil), nil
	}
	data, err := readInput(dataFile, stdin)
	if err != nil {
		return nil, &exitError{code: ExitCodeInputError, msg: ErrMsgReadFileFailed, err: err}
	}
	vctx, err := varpath.ContextFromYAML(data)
	if err != nil {
		return nil, &exitError{code: ExitCodeInputError, msg: ErrMsgDecodeFailed, err: err}
	}
	return vctx, nil
}

func loadRows(ctx context.Context, dsn, query string) (*varpath.RowSet, error) {
	db, err := varpath.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return varpath.QueryRows(ctx, db, query)
}

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// parseExpression splits `path|name:"arg"|name` into the path and its
// filter calls. Separators inside double quotes are literal.
func parseExpression(expr string) (string, []filterCall) {
	parts := splitUnquoted(expr, ExprFilterSeparator)
	path := strings.TrimSpace(parts[0])

	var filters []filterCall
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, rawArg, hasArg := strings.Cut(part, ExprArgSeparator)
		call := filterCall{name: strings.TrimSpace(name), arg: varpath.NoArg}
		if hasArg {
			call.arg = varpath.Arg(unquote(strings.TrimSpace(rawArg)))
		}
		filters = append(filters, call)
	}
	return path, filters
}

func splitUnquoted(s, sep string) []string {
	var parts []string
	var current strings.Builder
	quoted := false
	for _, r := range s {
		ch := string(r)
		switch {
		case ch == ExprQuote:
			quoted = !quoted
			current.WriteString(ch)
		case ch == sep && !quoted:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteString(ch)
		}
	}
	return append(parts, current.String())
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, ExprQuote) && strings.HasSuffix(s, ExprQuote) {
		return s[1 : len(s)-1]
	}
	return s
}
