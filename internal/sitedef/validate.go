package sitedef

import (
	"fmt"
	"strings"
)

// Validation error codes (E100-E199)
const (
	ErrDefTagEmpty      = "E100" // site tag must be non-empty
	ErrDefBadDimension  = "E101" // dimension must be a positive integer
	ErrDefStateName     = "E102" // state name must be non-empty
	ErrDefStatePosition = "E103" // state position out of 1..dimension
	ErrDefDuplicatePos  = "E104" // two states share a position
	ErrDefOpName        = "E105" // operator name must be non-empty
	ErrDefOpShape       = "E106" // operator matrix not dimension×dimension
	ErrDefFermionicName = "E107" // fermionic entry must be non-empty
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled SiteDef against schema rules.
// Returns all errors found (does not fail-fast).
func Validate(def *SiteDef) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(def.Tag) == "" {
		errs = append(errs, ValidationError{
			Field:   "tag",
			Message: "site tag is required and must be non-empty",
			Code:    ErrDefTagEmpty,
		})
	}

	if def.Dimension < 1 {
		errs = append(errs, ValidationError{
			Field:   "dimension",
			Message: fmt.Sprintf("dimension must be a positive integer, got %d", def.Dimension),
			Code:    ErrDefBadDimension,
		})
		// Position and shape checks below would all fail for the wrong
		// reason without a valid dimension.
		return errs
	}

	seen := make(map[int]string, len(def.States))
	for name, pos := range def.States {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, ValidationError{
				Field:   "states",
				Message: "state name must be non-empty",
				Code:    ErrDefStateName,
			})
			continue
		}
		if pos < 1 || pos > def.Dimension {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("states.%s", name),
				Message: fmt.Sprintf("position %d out of range 1..%d", pos, def.Dimension),
				Code:    ErrDefStatePosition,
			})
			continue
		}
		if other, dup := seen[pos]; dup {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("states.%s", name),
				Message: fmt.Sprintf("position %d already used by state %q", pos, other),
				Code:    ErrDefDuplicatePos,
			})
			continue
		}
		seen[pos] = name
	}

	for name, rows := range def.Operators {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, ValidationError{
				Field:   "operators",
				Message: "operator name must be non-empty",
				Code:    ErrDefOpName,
			})
			continue
		}
		if len(rows) != def.Dimension {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("operators.%s", name),
				Message: fmt.Sprintf("matrix has %d rows, want %d", len(rows), def.Dimension),
				Code:    ErrDefOpShape,
			})
			continue
		}
		for i, row := range rows {
			if len(row) != def.Dimension {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("operators.%s", name),
					Message: fmt.Sprintf("row %d has %d entries, want %d", i, len(row), def.Dimension),
					Code:    ErrDefOpShape,
				})
				break
			}
		}
	}

	for _, name := range def.Fermionic {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, ValidationError{
				Field:   "fermionic",
				Message: "fermionic operator name must be non-empty",
				Code:    ErrDefFermionicName,
			})
		}
	}

	return errs
}
