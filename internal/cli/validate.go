package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticeworks/sitekit/internal/sitedef"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                      `json:"valid"`
	Files  int                       `json:"files"`
	Sites  int                       `json:"sites"`
	Errors []sitedef.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <defs-dir>",
		Short: "Validate site definitions without registering them",
		Long: `Validate CUE and YAML site definitions without touching a registry.

Performs syntax checking and schema validation (dimension, state
positions, operator shapes) and reports every problem found.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, defsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadDefs(defsDir, LoadModeCollectAll)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			if err := formatter.Error(loadErr.Code, loadErr.Message, nil); err != nil {
				return err
			}
			return NewExitError(ExitCommandError, loadErr.Message)
		}
		if err := formatter.Error(ErrCodeGeneric, loadErrors[0].Error(), nil); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, loadErrors[0].Error())
	}

	formatter.VerboseLog("Found %d definition file(s) in %s", loadResult.FileCount, defsDir)

	var validationErrors []sitedef.ValidationError

	// Parse errors become validation errors so one run reports everything.
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			validationErrors = append(validationErrors, sitedef.ValidationError{
				Field:   "load",
				Message: loadErr.Message,
				Code:    loadErr.Code,
			})
		} else {
			validationErrors = append(validationErrors, sitedef.ValidationError{
				Field:   "load",
				Message: err.Error(),
				Code:    ErrCodeGeneric,
			})
		}
	}

	for i := range loadResult.Defs {
		def := &loadResult.Defs[i]
		formatter.VerboseLog("Validating site: %s", def.Tag)
		validationErrors = append(validationErrors, sitedef.Validate(def)...)
	}

	result := ValidationResult{
		Valid:  len(validationErrors) == 0,
		Files:  loadResult.FileCount,
		Sites:  len(loadResult.Defs),
		Errors: validationErrors,
	}

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		if err := formatter.Error(ErrCodeGeneric, fmt.Sprintf("%d validation error(s)", len(result.Errors)), result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "✗ Validation failed with %d error(s):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(formatter.Writer, "  %s\n", e.Error())
		}
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(result.Errors)))
}

func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ %d site definition(s) valid (%d file(s))\n", result.Sites, result.Files)
	return nil
}
