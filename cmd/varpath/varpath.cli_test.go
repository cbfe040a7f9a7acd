package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itsatony/go-varpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test data constants
const (
	testDataYAML = `person:
  name: Grant Lee
  age: 42
  tags: [go, templates]
people:
  - Claire
  - Grant
  - Alan
bio: "<b>bold</b>"
`
	testDataJSON = `{"user": {"name": "Alice"}, "scores": [3, 5, 8]}`
)

func setupDataFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), FilePermissions))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(args, strings.NewReader(stdin), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, CLIName)
	assert.Contains(t, stdout, CmdNameResolve)
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "", "nonsense")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.NotEmpty(t, stderr)
}

// ==================== resolve tests ====================

func TestResolve_YAMLDataFile(t *testing.T) {
	dataPath := setupDataFile(t, "data.yaml", testDataYAML)

	code, stdout, stderr := runCLI(t, "", CmdNameResolve, "-f", dataPath,
		"person.name", "person.age", "people.1", "people.9", "person.tags.0")

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "Grant Lee\n42\nGrant\n\ngo\n", stdout)
}

func TestResolve_JSONFromStdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, testDataJSON, CmdNameResolve, "--data-file", InputSourceStdin,
		"user.name", "scores.2")

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "Alice\n8\n", stdout)
}

func TestResolve_Filters(t *testing.T) {
	dataPath := setupDataFile(t, "data.yaml", testDataYAML)

	tests := []struct {
		name     string
		expr     string
		expected string
	}{
		{"upper", "person.name|upper", "GRANT LEE"},
		{"join with quoted separator", `people|join:", "`, "Claire, Grant, Alan"},
		{"chained", `people|join:"|"|lower`, "claire|grant|alan"},
		{"length of sequence", "people|length", "3"},
		{"default on missing", `person.missing|default_if_none:"n/a"`, "n/a"},
		{"unknown filter passes through", "person.name|nosuch", "Grant Lee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, "", CmdNameResolve, "-f", dataPath, tt.expr)
			require.Equal(t, ExitCodeSuccess, code, stderr)
			assert.Equal(t, tt.expected+FmtNewline, stdout)
		})
	}
}

func TestResolve_Autoescape(t *testing.T) {
	dataPath := setupDataFile(t, "data.yaml", testDataYAML)

	code, stdout, _ := runCLI(t, "", CmdNameResolve, "-f", dataPath, "bio")
	require.Equal(t, ExitCodeSuccess, code)
	assert.Equal(t, "<b>bold</b>\n", stdout)

	code, stdout, _ = runCLI(t, "", CmdNameResolve, "-f", dataPath, "--"+FlagAutoescape, "bio", "bio|safe")
	require.Equal(t, ExitCodeSuccess, code)
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;\n<b>bold</b>\n", stdout)
}

func TestResolve_Trace(t *testing.T) {
	dataPath := setupDataFile(t, "data.yaml", testDataYAML)

	code, stdout, _ := runCLI(t, "", CmdNameResolve, "-f", dataPath, "--"+FlagTrace,
		"persn.name", "people.x", "person.name")

	require.Equal(t, ExitCodeSuccess, code)
	lines := strings.Split(strings.TrimSuffix(stdout, FmtNewline), FmtNewline)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], varpath.FailureNameUnboundName)
	assert.Contains(t, lines[0], "person")
	assert.Contains(t, lines[1], varpath.FailureNameNotAnIndex)
	assert.Equal(t, "Grant Lee", lines[2])
}

func TestResolve_Verbose_LogsToStderr(t *testing.T) {
	dataPath := setupDataFile(t, "data.yaml", testDataYAML)

	code, _, stderr := runCLI(t, "", CmdNameResolve, "-f", dataPath, "-v", "person.nope")

	require.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stderr, varpath.LogMsgResolveFailed)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no paths", []string{CmdNameResolve}, ExitCodeUsageError},
		{"missing file", []string{CmdNameResolve, "-f", "/does/not/exist.yaml", "a"}, ExitCodeInputError},
		{"query without dsn", []string{CmdNameResolve, "--" + FlagQuery, "SELECT 1", "a"}, ExitCodeUsageError},
		{"unknown flag", []string{CmdNameResolve, "--bogus", "a"}, ExitCodeUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", tt.args...)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, stderr)
		})
	}
}

func TestResolve_InvalidData(t *testing.T) {
	dataPath := setupDataFile(t, "data.yaml", "- just\n- a list\n")

	code, _, stderr := runCLI(t, "", CmdNameResolve, "-f", dataPath, "a")

	assert.Equal(t, ExitCodeInputError, code)
	assert.Contains(t, stderr, ErrMsgDecodeFailed)
}

// ==================== expression parsing ====================

func TestParseExpression(t *testing.T) {
	path, filters := parseExpression(`items|join:"a|b"|upper|truncatewords:2`)

	assert.Equal(t, "items", path)
	require.Len(t, filters, 3)
	assert.Equal(t, "join", filters[0].name)
	assert.Equal(t, varpath.Arg("a|b"), filters[0].arg)
	assert.Equal(t, "upper", filters[1].name)
	assert.Equal(t, varpath.NoArg, filters[1].arg)
	assert.Equal(t, "truncatewords", filters[2].name)
	assert.Equal(t, varpath.Arg("2"), filters[2].arg)
}

// ==================== version tests ====================

func TestVersion_Text(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameVersion)

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, "go-varpath version")
}

func TestVersion_JSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameVersion, "--"+FlagFormat, OutputFormatJSON)

	require.Equal(t, ExitCodeSuccess, code)
	var out versionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.NotEmpty(t, out.GoVersion)
	assert.Positive(t, out.Types)
	assert.Positive(t, out.Filters)
}

func TestVersion_InvalidFormat(t *testing.T) {
	code, _, stderr := runCLI(t, "", CmdNameVersion, "-F", "xml")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, ErrMsgInvalidFormat)
}

func TestGetVersionInfo_ReadsVersionsFile(t *testing.T) {
	path := setupDataFile(t, VersionsFileName, "project:\n  version: 1.2.3\ngit:\n  commit: abc123\n")

	v := getVersionInfo([]string{"/missing/" + VersionsFileName, path})

	assert.Equal(t, "1.2.3", v.Version)
	assert.Equal(t, "abc123", v.Commit)
	assert.Equal(t, VersionUnknown, v.Branch)
}

func TestGetVersionInfo_SkipsUnreadableFiles(t *testing.T) {
	listFile := setupDataFile(t, "list.yaml", "- not\n- a mapping\n")
	good := setupDataFile(t, VersionsFileName, "project:\n  version: 2.0.0\nbuild:\n  go_version: go1.24.0\n")

	v := getVersionInfo([]string{listFile, good})

	assert.Equal(t, "2.0.0", v.Version)
	assert.Equal(t, "go1.24.0", v.GoVersion)
}

func TestGetVersionInfo_Defaults(t *testing.T) {
	v := getVersionInfo([]string{"/missing/" + VersionsFileName})

	assert.Equal(t, VersionUnknown, v.Branch)
	assert.NotEmpty(t, v.GoVersion)
	assert.Positive(t, v.Types)
	assert.Positive(t, v.Filters)
}

func TestExitError_Error(t *testing.T) {
	assert.Equal(t, "bad", (&exitError{msg: "bad"}).Error())
	assert.Equal(t, "bad: cause", (&exitError{msg: "bad", err: errors.New("cause")}).Error())
}
