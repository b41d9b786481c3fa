package resolve

import (
	"errors"
	"fmt"

	"github.com/latticeworks/sitekit/internal/site"
)

// Code categorizes resolution failures.
type Code string

const (
	// CodeNotFound indicates no handler matched across all tags and all
	// fallback conventions.
	CodeNotFound Code = "RESOLUTION_NOT_FOUND"

	// CodeAmbiguous indicates more than one tag claims authority for the
	// same name under state or fermion-string resolution.
	CodeAmbiguous Code = "AMBIGUOUS_RESOLUTION"

	// CodeMalformed indicates a composite operator expression with an
	// empty operand, e.g. "*Sz" or "Sz**Id".
	CodeMalformed Code = "MALFORMED_EXPRESSION"
)

// ResolutionError is a resolution failure. These are authoring or
// configuration errors, not transient faults: they surface immediately to
// the caller with no retry.
type ResolutionError struct {
	// Code identifies the failure category.
	Code Code

	// Name is the requested operator, state, or expression.
	Name string

	// Tags is the full tag set scanned (for not-found) or the
	// conflicting tags (for ambiguity).
	Tags []site.Tag

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if len(e.Tags) > 0 {
		return fmt.Sprintf("%s: %s (name=%q, tags=%s)", e.Code, e.Message, e.Name, site.FormatTags(e.Tags))
	}
	return fmt.Sprintf("%s: %s (name=%q)", e.Code, e.Message, e.Name)
}

// IsNotFound reports whether err is a not-found resolution failure.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re) && re.Code == CodeNotFound
}

// IsAmbiguous reports whether err is an ambiguity failure.
func IsAmbiguous(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re) && re.Code == CodeAmbiguous
}

// IsMalformed reports whether err is a malformed-expression failure.
func IsMalformed(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re) && re.Code == CodeMalformed
}

// NewNotFoundError creates a ResolutionError for an unmatched name,
// carrying the full tag set that was scanned.
func NewNotFoundError(name string, tags []site.Tag) *ResolutionError {
	return &ResolutionError{
		Code:    CodeNotFound,
		Name:    name,
		Tags:    tags,
		Message: "no handler matched",
	}
}

// NewAmbiguousError creates a ResolutionError naming the conflicting tags.
func NewAmbiguousError(name string, conflicting []site.Tag) *ResolutionError {
	return &ResolutionError{
		Code:    CodeAmbiguous,
		Name:    name,
		Tags:    conflicting,
		Message: fmt.Sprintf("%d tags claim authority", len(conflicting)),
	}
}

// NewMalformedError creates a ResolutionError for a composite expression
// with an empty operand.
func NewMalformedError(expr string) *ResolutionError {
	return &ResolutionError{
		Code:    CodeMalformed,
		Name:    expr,
		Message: "empty operand in composite operator expression",
	}
}
