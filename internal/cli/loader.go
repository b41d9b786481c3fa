package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue/token"

	"github.com/latticeworks/sitekit/internal/sitedef"
)

// LoadMode controls how errors are handled during definition loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading site definitions from a directory.
type LoadResult struct {
	Defs      []sitedef.SiteDef
	FileCount int // Number of definition files found
}

// LoadError represents an error that occurred during definition loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDefs loads site definitions from every .cue and .yaml/.yml file under
// dir. Definitions are returned sorted by tag.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func LoadDefs(dir string, mode LoadMode) (*LoadResult, []error) {
	var errs []error

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definitions directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing definitions directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	files, err := FindDefFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(files) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no definition files found in %s", dir)}}
	}

	result := &LoadResult{FileCount: len(files)}

	for _, path := range files {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			errs = append(errs, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("reading %s: %v", path, readErr)})
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}

		var defs []sitedef.SiteDef
		var parseErr error
		switch filepath.Ext(path) {
		case ".cue":
			defs, parseErr = sitedef.CompileSource(path, data)
		default:
			defs, parseErr = sitedef.FromYAML(data)
			if parseErr != nil {
				parseErr = fmt.Errorf("%s: %w", path, parseErr)
			}
		}
		if parseErr != nil {
			errs = append(errs, convertCompileError(parseErr))
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Defs = append(result.Defs, defs...)
	}

	sort.Slice(result.Defs, func(i, j int) bool { return result.Defs[i].Tag < result.Defs[j].Tag })

	if len(result.Defs) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no site definitions found"})
	}

	return result, errs
}

// FindDefFiles walks the directory and returns all .cue, .yaml, and .yml
// file paths, sorted for deterministic load order.
func FindDefFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".cue", ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// convertCompileError converts a sitedef compile error to a LoadError with
// position info.
func convertCompileError(err error) *LoadError {
	var compileErr *sitedef.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeParseFailed,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeParseFailed,
		Message: err.Error(),
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No definition files found
	ErrCodeParseFailed = "E004" // Definition parse failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeInstall     = "E006" // Registration failed
	ErrCodeResolution  = "E010" // Resolution failed (not found)
	ErrCodeAmbiguous   = "E011" // Ambiguous resolution
	ErrCodeMalformed   = "E012" // Malformed operator expression
	ErrCodeBadArgument = "E013" // Bad command argument
)
