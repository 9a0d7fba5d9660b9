package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/tsexpr/internal/compiler"
	"github.com/roach88/tsexpr/internal/expr"
	"github.com/roach88/tsexpr/internal/ir"
	"github.com/roach88/tsexpr/internal/log"
)

// Run executes a scenario against the default catalog and registry.
func Run(scenario *Scenario) (*Result, error) {
	return RunWith(compiler.New(nil), scenario)
}

// RunWith executes a scenario with the given compiler.
//
// Expectation failures are reported in the result, not as an error; the
// returned error is reserved for scenarios that cannot be executed.
func RunWith(c *compiler.Compiler, scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("run: nil scenario")
	}
	result := NewResult(scenario.Name)
	want := scenario.Expect

	n, err := c.CompileNode(scenario.Query)
	if err != nil {
		result.CompileError = err.Error()
		switch {
		case want.Error == "":
			result.AddError(fmt.Sprintf("compile: %v", err))
		case !strings.Contains(err.Error(), want.Error):
			result.AddError(fmt.Sprintf("error: expected %q in %q", want.Error, err.Error()))
		}
		log.Debugf("scenario %s: compile error: %v", scenario.Name, err)
		return result, nil
	}
	result.node = n

	if want.Error != "" {
		result.AddError(fmt.Sprintf("error: expected %q, query compiled to %s", want.Error, n))
	}

	result.Kind = n.KindName()
	if result.SQL, err = expr.SQL(n); err != nil {
		return nil, fmt.Errorf("run %s: %w", scenario.Name, err)
	}
	if result.ParamSQL, result.Params, err = (expr.Renderer{Placeholder: expr.Dollar}).Render(n); err != nil {
		return nil, fmt.Errorf("run %s: %w", scenario.Name, err)
	}

	checkEqual(result, "kind", want.Kind, result.Kind)
	checkEqual(result, "sql", want.SQL, result.SQL)
	checkEqual(result, "param_sql", want.ParamSQL, result.ParamSQL)
	if want.Params != nil {
		checkParams(result, want.Params)
	}

	for _, a := range scenario.Assertions {
		if err := evaluateAssertion(result, a); err != nil {
			result.AddError(err.Error())
		}
	}

	log.Debugf("scenario %s: pass=%t sql=%s", scenario.Name, result.Pass, result.SQL)
	return result, nil
}

func checkEqual(r *Result, field, want, got string) {
	if want != "" && want != got {
		r.AddError(fmt.Sprintf("%s: expected %q, got %q", field, want, got))
	}
}

// checkParams compares bound values after normalizing both sides to
// ir.Value, since YAML decodes integers as int and the renderer binds
// int64.
func checkParams(r *Result, want []any) {
	if len(want) != len(r.Params) {
		r.AddError(fmt.Sprintf("params: expected %d values, got %d", len(want), len(r.Params)))
		return
	}
	for i := range want {
		w, err := ir.FromNative(want[i])
		if err != nil {
			r.AddError(fmt.Sprintf("params[%d]: %v", i, err))
			continue
		}
		g, err := ir.FromNative(r.Params[i].Value)
		if err != nil {
			r.AddError(fmt.Sprintf("params[%d]: %v", i, err))
			continue
		}
		if w != g {
			r.AddError(fmt.Sprintf("params[%d]: expected %v, got %v", i, want[i], r.Params[i].Value))
		}
	}
}
