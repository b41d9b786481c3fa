package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticeworks/sitekit/internal/site"
)

// StateResult holds a resolved basis state.
type StateResult struct {
	Tag       string `json:"tag"`
	State     string `json:"state"`
	Position  int    `json:"position"` // 1-based basis position
	Dimension int    `json:"dimension"`
}

// NewStateCommand creates the state command.
func NewStateCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &EngineFlags{}

	cmd := &cobra.Command{
		Use:   "state <tag> <state-name>",
		Short: "Resolve a named basis state on a site type",
		Long: `Resolve a basis-state name (e.g. "Up", "Occ") against the site type
named by <tag> and print its 1-based basis position.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runState(rootOpts, flags, args[0], args[1], cmd)
		},
	}

	AddEngineFlags(cmd, flags)

	return cmd
}

func runState(opts *RootOptions, flags *EngineFlags, tagLabel, name string, cmd *cobra.Command) error {
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

	ind, err := resolver.SiteIndex(site.NewTag(tagLabel))
	if err != nil {
		return outputResolveError(formatter, err)
	}

	val, err := resolver.State(ind, name)
	if err != nil {
		return outputResolveError(formatter, err)
	}

	result := StateResult{
		Tag:       tagLabel,
		State:     name,
		Position:  val.Val,
		Dimension: ind.Dim(),
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s on %s: position %d of %d\n", name, tagLabel, val.Val, ind.Dim())
	return nil
}
