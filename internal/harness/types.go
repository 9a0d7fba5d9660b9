package harness

import (
	"github.com/roach88/tsexpr/internal/expr"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	Scenario string `json:"scenario"`

	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	Kind     string       `json:"kind,omitempty"`
	SQL      string       `json:"sql,omitempty"`
	ParamSQL string       `json:"param_sql,omitempty"`
	Params   []expr.Param `json:"params,omitempty"`

	// CompileError is the compiler's message when the query was rejected.
	CompileError string `json:"compile_error,omitempty"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	node expr.Node
}

// NewResult creates a new passing result.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Node returns the compiled tree, or nil if compilation failed.
func (r *Result) Node() expr.Node {
	return r.node
}
