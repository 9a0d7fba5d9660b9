package compiler

import (
	"errors"
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError represents a compilation error with the path of the
// failing node and, for CUE sources, its position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// fail builds a CompileError at path from a catalog or construction error.
func fail(path string, err error) *CompileError {
	return &CompileError{Field: path, Message: err.Error(), Err: err}
}

func failf(path, format string, args ...any) *CompileError {
	return &CompileError{Field: path, Message: fmt.Sprintf(format, args...)}
}

// withPos attaches pos to err when err is a *CompileError without one.
func withPos(err error, pos token.Pos) error {
	var ce *CompileError
	if errors.As(err, &ce) && !ce.Pos.IsValid() {
		ce.Pos = pos
	}
	return err
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
			Err:     err,
		}
	}

	return err
}
