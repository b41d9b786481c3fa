package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latticeworks/sitekit/internal/registry"
)

// SiteInfo describes one registered site type.
type SiteInfo struct {
	Tag       string   `json:"tag"`
	Dimension int      `json:"dimension"`
	States    []string `json:"states,omitempty"`
}

// SitesResult holds the sites listing.
type SitesResult struct {
	Sites []SiteInfo `json:"sites"`
}

// NewSitesCommand creates the sites command.
func NewSitesCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &EngineFlags{}

	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List registered site types",
		Long: `List every site type known to the engine: the builtins plus any
definitions loaded with --defs, with their dimensions and named states.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSites(rootOpts, flags, cmd)
		},
	}

	AddEngineFlags(cmd, flags)

	return cmd
}

func runSites(opts *RootOptions, flags *EngineFlags, cmd *cobra.Command) error {
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

	result, err := listSites(resolver.Registry())
	if err != nil {
		if outErr := formatter.Error(ErrCodeGeneric, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "listing site types", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.Sites) == 0 {
		fmt.Fprintln(formatter.Writer, "no site types registered")
		return nil
	}
	for _, s := range result.Sites {
		line := fmt.Sprintf("%-12s dim=%d", s.Tag, s.Dimension)
		if len(s.States) > 0 {
			line += "  states=" + strings.Join(s.States, ",")
		}
		fmt.Fprintln(formatter.Writer, line)
	}
	return nil
}

// listSites queries every space provider once to report dimensions.
func listSites(reg *registry.Registry) (*SitesResult, error) {
	result := &SitesResult{Sites: []SiteInfo{}}
	for _, tag := range reg.SpaceTags() {
		fn, ok := reg.SpaceFor(tag)
		if !ok {
			continue
		}
		dim, err := fn(nil)
		if err != nil {
			return nil, fmt.Errorf("space provider for %q: %w", tag.String(), err)
		}
		result.Sites = append(result.Sites, SiteInfo{
			Tag:       tag.String(),
			Dimension: dim,
			States:    reg.StateNames(tag),
		})
	}
	return result, nil
}
