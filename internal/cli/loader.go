package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/tsexpr/internal/compiler"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNoQueries   = "E003" // No query definitions found
	ErrCodeLoadFailed  = "E004" // CUE or YAML load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeUnsupported = "E006" // Unsupported file extension
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeDatabase    = "E008" // Store open/read/write error
)

// LoadResult contains the definitions read from a path and those that
// compiled.
type LoadResult struct {
	Definitions []compiler.Definition
	Compiled    []compiler.Compiled
}

// LoadError represents an error that occurred while loading or compiling
// definitions.
type LoadError struct {
	Code    string
	Field   string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	return e.Code + ": " + e.Detail()
}

// Detail is the error without its code: position, field and message.
func (e *LoadError) Detail() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), msg)
	}
	return msg
}

// LoadDefinitions loads query definitions from a CUE directory, a CUE
// file or a YAML file and compiles them.
//
// A nil result means nothing could be loaded and errs holds exactly one
// *LoadError. Otherwise errs holds the validation and compile failures;
// in FailFast mode at most one.
func LoadDefinitions(path string, mode compiler.Mode) (*LoadResult, []error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}}
		}
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing path: %v", err)}}
	}

	defs, err := compiler.Load(path)
	if err != nil {
		if errors.Is(err, compiler.ErrUnsupportedFormat) {
			return nil, []error{&LoadError{Code: ErrCodeUnsupported, Message: err.Error()}}
		}
		loadErr := &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
		var compileErr *compiler.CompileError
		if errors.As(err, &compileErr) {
			loadErr.Field = compileErr.Field
			loadErr.Message = compileErr.Message
			loadErr.Pos = compileErr.Pos
		}
		return nil, []error{loadErr}
	}
	if len(defs) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoQueries, Message: fmt.Sprintf("no query definitions found in %s", path)}}
	}

	compiled, compileErrs := compiler.New(nil).CompileAll(defs, mode)
	errs := make([]error, len(compileErrs))
	for i, err := range compileErrs {
		errs[i] = convertCompileError(err)
	}
	return &LoadResult{Definitions: defs, Compiled: compiled}, errs
}

// convertCompileError converts a compiler error to a LoadError with
// position info.
func convertCompileError(err error) *LoadError {
	var validationErr compiler.ValidationError
	if errors.As(err, &validationErr) {
		return &LoadError{
			Code:    validationErr.Code,
			Field:   validationErr.Field,
			Message: validationErr.Message,
		}
	}
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    compiler.ErrNodeValidation,
			Field:   compileErr.Field,
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}

// firstLoadError returns errs[0] as a *LoadError.
func firstLoadError(errs []error) *LoadError {
	var loadErr *LoadError
	if errors.As(errs[0], &loadErr) {
		return loadErr
	}
	return &LoadError{Code: ErrCodeGeneric, Message: errs[0].Error()}
}

// loadFailure reports the first error from LoadDefinitions. Nothing
// loadable is a command error; definitions that fail to compile are a
// check failure.
func loadFailure(f *OutputFormatter, result *LoadResult, errs []error) error {
	loadErr := firstLoadError(errs)
	_ = f.Error(loadErr.Code, loadErr.Detail(), nil)
	if result == nil {
		return NewExitError(ExitCommandError, loadErr.Error())
	}
	return NewExitError(ExitFailure, loadErr.Error())
}

// lineOf extracts the line number from a token.Pos, or 0.
func lineOf(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}
