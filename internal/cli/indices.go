package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latticeworks/sitekit/internal/site"
)

// IndexInfo describes one constructed site index.
type IndexInfo struct {
	Position  int      `json:"position"` // 1-based lattice position
	Dimension int      `json:"dimension"`
	Tags      []string `json:"tags"`
}

// IndicesResult holds a constructed index collection.
type IndicesResult struct {
	Tag     string      `json:"tag"`
	Count   int         `json:"count"`
	Indices []IndexInfo `json:"indices"`
}

// NewIndicesCommand creates the indices command.
func NewIndicesCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &EngineFlags{}

	cmd := &cobra.Command{
		Use:   "indices <tag> <count>",
		Short: "Build a chain of site indices",
		Long: `Build <count> site indices of the site type named by <tag>, using the
type's bulk generator when it has one, and print each index's dimension
and tag set.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[1])
			if err != nil || count < 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf("count must be a non-negative integer, got %q", args[1]))
			}
			return runIndices(rootOpts, flags, args[0], count, cmd)
		},
	}

	AddEngineFlags(cmd, flags)

	return cmd
}

func runIndices(opts *RootOptions, flags *EngineFlags, tagLabel string, count int, cmd *cobra.Command) error {
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

	inds, err := resolver.SiteIndices(site.NewTag(tagLabel), count)
	if err != nil {
		return outputResolveError(formatter, err)
	}

	result := IndicesResult{
		Tag:     tagLabel,
		Count:   len(inds),
		Indices: make([]IndexInfo, len(inds)),
	}
	for i, ind := range inds {
		result.Indices[i] = IndexInfo{
			Position:  i + 1,
			Dimension: ind.Dim(),
			Tags:      site.TagStrings(ind.Tags()),
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, info := range result.Indices {
		fmt.Fprintf(formatter.Writer, "%3d  dim=%d  tags=%s\n", info.Position, info.Dimension, strings.Join(info.Tags, ","))
	}
	return nil
}
