package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/tsexpr/internal/sqltype"
)

// Validation error codes (E100-E199)
const (
	ErrNameRequired   = "E101" // definition name is required
	ErrExprRequired   = "E102" // definition has no expr
	ErrDuplicateName  = "E103" // two definitions share a name
	ErrUnknownKind    = "E104" // expect_kind is not registered
	ErrInvalidName    = "E105" // name is not a valid identifier
	ErrNodeValidation = "E110" // node tree failed to compile
)

// ValidationError represents a definition-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Validate checks a set of definitions for problems that do not depend on
// compiling their trees. Returns all errors found (does not fail-fast).
func Validate(defs []Definition, r *sqltype.Registry) []ValidationError {
	if r == nil {
		r = sqltype.Default
	}

	var errs []ValidationError
	seen := make(map[string]int, len(defs))

	for i, def := range defs {
		field := fmt.Sprintf("queries[%d]", i)

		switch {
		case strings.TrimSpace(def.Name) == "":
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "name is required and must be non-empty",
				Code:    ErrNameRequired,
			})
		case !namePattern.MatchString(def.Name):
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("invalid name %q, expected letters, digits, '_' or '-'", def.Name),
				Code:    ErrInvalidName,
			})
		}

		if def.Name != "" {
			if first, dup := seen[def.Name]; dup {
				errs = append(errs, ValidationError{
					Field:   field + ".name",
					Message: fmt.Sprintf("duplicate name %q (first at queries[%d])", def.Name, first),
					Code:    ErrDuplicateName,
				})
			} else {
				seen[def.Name] = i
			}
		}

		if len(def.Expr) == 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".expr",
				Message: "expr is required",
				Code:    ErrExprRequired,
			})
		}

		if def.ExpectKind != "" {
			if _, err := r.Lookup(def.ExpectKind); err != nil {
				errs = append(errs, ValidationError{
					Field:   field + ".expect_kind",
					Message: err.Error(),
					Code:    ErrUnknownKind,
				})
			}
		}
	}

	return errs
}
