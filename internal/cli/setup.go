package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latticeworks/sitekit/internal/algebra"
	"github.com/latticeworks/sitekit/internal/registry"
	"github.com/latticeworks/sitekit/internal/resolve"
	"github.com/latticeworks/sitekit/internal/site"
	"github.com/latticeworks/sitekit/internal/sitedef"
	"github.com/latticeworks/sitekit/internal/sitetypes"
)

// EngineFlags selects what gets registered before a command resolves
// anything: the builtin site types and/or definitions loaded from a
// directory.
type EngineFlags struct {
	DefsDir    string
	NoBuiltins bool
}

// AddEngineFlags wires the engine selection flags onto cmd.
func AddEngineFlags(cmd *cobra.Command, flags *EngineFlags) {
	cmd.Flags().StringVar(&flags.DefsDir, "defs", "", "directory of site definitions (.cue, .yaml)")
	cmd.Flags().BoolVar(&flags.NoBuiltins, "no-builtins", false, "skip the builtin site types")
}

// BuildResolver populates a fresh registry per the flags and returns a
// resolver over it. All registration happens here, before any resolution.
func BuildResolver(flags *EngineFlags) (*resolve.Resolver, error) {
	reg := registry.New()

	if !flags.NoBuiltins {
		if err := sitetypes.RegisterBuiltins(reg); err != nil {
			return nil, WrapExitError(ExitCommandError, "registering builtin site types", err)
		}
	}

	if flags.DefsDir != "" {
		loadResult, loadErrors := LoadDefs(flags.DefsDir, LoadModeFailFast)
		if len(loadErrors) > 0 {
			return nil, WrapExitError(ExitCommandError, "loading site definitions", loadErrors[0])
		}
		for i := range loadResult.Defs {
			if errs := sitedef.Validate(&loadResult.Defs[i]); len(errs) > 0 {
				return nil, WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid site definition %q", loadResult.Defs[i].Tag), errs[0])
			}
		}
		if err := sitedef.InstallAll(loadResult.Defs, reg); err != nil {
			return nil, WrapExitError(ExitCommandError, "installing site definitions", err)
		}
	}

	return resolve.New(reg, algebra.Dense{}), nil
}

// resolveErrCode maps a resolution error to a CLI error code.
func resolveErrCode(err error) string {
	switch {
	case resolve.IsAmbiguous(err):
		return ErrCodeAmbiguous
	case resolve.IsMalformed(err):
		return ErrCodeMalformed
	case resolve.IsNotFound(err):
		return ErrCodeResolution
	default:
		return ErrCodeGeneric
	}
}

// outputResolveError reports a resolution failure in the configured
// format and returns an ExitError carrying the right exit code.
func outputResolveError(formatter *OutputFormatter, err error) error {
	code := resolveErrCode(err)

	var details interface{}
	var re *resolve.ResolutionError
	if errors.As(err, &re) {
		details = map[string]interface{}{
			"name": re.Name,
			"tags": site.TagStrings(re.Tags),
		}
	}

	if outErr := formatter.Error(code, err.Error(), details); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitFailure, "resolution failed", err)
}

// formatMatrixText renders a matrix row by row for text output.
func formatMatrixText(rows [][]float64) string {
	var b strings.Builder
	for _, row := range rows {
		for j, v := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "% g", v)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
