package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/itsatony/go-varpath"
	"github.com/spf13/cobra"
)

// versionOutput represents JSON output for version
type versionOutput struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Types     int    `json:"types"`
	Filters   int    `json:"filters"`
}

// versionField binds a versions.yaml path to the output field it fills.
type versionField struct {
	path string
	set  func(v *versionOutput, s string)
}

var versionFields = []versionField{
	{VersionPathVersion, func(v *versionOutput, s string) { v.Version = s }},
	{VersionPathCommit, func(v *versionOutput, s string) { v.Commit = s }},
	{VersionPathBranch, func(v *versionOutput, s string) { v.Branch = s }},
	{VersionPathBuildTime, func(v *versionOutput, s string) { v.BuildTime = s }},
	{VersionPathGoVersion, func(v *versionOutput, s string) { v.GoVersion = s }},
}

func newVersionCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   CmdNameVersion,
		Short: CLIVersionText,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != OutputFormatText && format != OutputFormatJSON {
				return &exitError{code: ExitCodeUsageError, msg: ErrMsgInvalidFormat}
			}
			v := getVersionInfo(versionSearchPaths())
			if format == OutputFormatJSON {
				return outputVersionJSON(v, cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), VersionTextTemplate+FmtNewline,
				v.Version, v.Commit, v.Branch, v.BuildTime, v.GoVersion, v.Types, v.Filters)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "output format: text, json")
	return cmd
}

func versionSearchPaths() []string {
	return []string{
		VersionsFileName,
		"../" + VersionsFileName,
		"../../" + VersionsFileName,
	}
}

// getVersionInfo starts from the binary's build info and overrides it with
// the first versions.yaml in paths that decodes to a mapping. Each field is
// resolved as a path, so missing keys keep their previous value.
func getVersionInfo(paths []string) *versionOutput {
	engine := varpath.MustNew()
	v := &versionOutput{
		Version:   VersionUnknown,
		Commit:    VersionUnknown,
		Branch:    VersionUnknown,
		BuildTime: VersionUnknown,
		GoVersion: runtime.Version(),
		Types:     engine.Registry().Count(),
		Filters:   len(engine.Filters().Names()),
	}
	applyBuildInfo(v)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		ctx, err := varpath.ContextFromYAML(data)
		if err != nil {
			continue
		}
		for _, field := range versionFields {
			if s := engine.Render(ctx, field.path); s != "" {
				field.set(v, s)
			}
		}
		break
	}

	return v
}

func applyBuildInfo(v *versionOutput) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if info.Main.Version != "" && info.Main.Version != VersionDevel {
		v.Version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case BuildSettingRevision:
			v.Commit = setting.Value
		case BuildSettingTime:
			v.BuildTime = setting.Value
		}
	}
}

func outputVersionJSON(v *versionOutput, stdout io.Writer) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &exitError{code: ExitCodeError, msg: ErrMsgInvalidFormat, err: err}
	}
	fmt.Fprintln(stdout, string(jsonBytes))
	return nil
}
