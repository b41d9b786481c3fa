package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latticeworks/sitekit/internal/algebra"
	"github.com/latticeworks/sitekit/internal/site"
)

// ResolveResult holds a resolved operator matrix.
type ResolveResult struct {
	Tag           string      `json:"tag"`
	Operator      string      `json:"operator"`
	Dimension     int         `json:"dimension"`
	Matrix        [][]float64 `json:"matrix"`
	FermionString bool        `json:"fermion_string,omitempty"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &EngineFlags{}

	cmd := &cobra.Command{
		Use:   "resolve <tag> <operator-expr>",
		Short: "Resolve an operator expression on a site type",
		Long: `Resolve an operator name or "*"-separated product expression against
the site type named by <tag> and print the resulting matrix.

Examples:
  sitekit resolve "S=1/2" Sz
  sitekit resolve "S=1/2" "S+*S-"
  sitekit resolve Fermion Cdag --defs ./defs`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, flags, args[0], args[1], cmd)
		},
	}

	AddEngineFlags(cmd, flags)

	return cmd
}

func runResolve(opts *RootOptions, flags *EngineFlags, tagLabel, expr string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	resolver, err := BuildResolver(flags)
	if err != nil {
		if outErr := formatter.Error(ErrCodeGeneric, err.Error(), nil); outErr != nil {
			return outErr
		}
		return err
	}

	tag := site.NewTag(tagLabel)
	ind, err := resolver.SiteIndex(tag)
	if err != nil {
		return outputResolveError(formatter, err)
	}

	formatter.VerboseLog("Resolving %q on index %s", expr, ind.String())

	art, err := resolver.Op(expr, ind)
	if err != nil {
		return outputResolveError(formatter, err)
	}

	m, ok := art.(*algebra.Matrix)
	if !ok {
		if outErr := formatter.Error(ErrCodeGeneric, fmt.Sprintf("operator resolved to %T, want a matrix", art), nil); outErr != nil {
			return outErr
		}
		return NewExitError(ExitCommandError, "unexpected artifact type")
	}

	result := ResolveResult{
		Tag:       tagLabel,
		Operator:  expr,
		Dimension: m.Dim(),
		Matrix:    m.Rows(),
	}

	// Atomic names also report their fermion-string classification.
	if !strings.Contains(expr, "*") {
		has, fsErr := resolver.HasFermionString(expr, ind)
		if fsErr != nil {
			return outputResolveError(formatter, fsErr)
		}
		result.FermionString = has
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s on %s (dim=%d):\n", expr, tagLabel, m.Dim())
	fmt.Fprintln(formatter.Writer, formatMatrixText(m.Rows()))
	if result.FermionString {
		fmt.Fprintln(formatter.Writer, "carries fermion string")
	}
	return nil
}
