package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Query is the expression tree, in the compiler's definition format.
	Query map[string]any `yaml:"query"`

	// Expect states what the query compiles and renders to.
	Expect Expect `yaml:"expect"`

	// Assertions are extra structural checks on the compiled tree.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expect lists the expected outcome. Empty fields are not checked.
type Expect struct {
	Kind     string `yaml:"kind,omitempty"`
	SQL      string `yaml:"sql,omitempty"`
	ParamSQL string `yaml:"param_sql,omitempty"`

	// Params are the bound values in placeholder order.
	Params []any `yaml:"params,omitempty"`

	// Error, when set, means compilation must fail with an error whose
	// text contains this substring.
	Error string `yaml:"error,omitempty"`
}

// Assertion is a structural check on the compiled tree.
type Assertion struct {
	// Type specifies the assertion type:
	// - "uses_function": Function is called somewhere in the tree
	// - "uses_operator": Operator (symbol or name) appears in the tree
	// - "call_order": Functions appear in this pre-order
	// - "param_count": exactly Count values are bound
	Type string `yaml:"type"`

	Function  string   `yaml:"function,omitempty"`
	Operator  string   `yaml:"operator,omitempty"`
	Functions []string `yaml:"functions,omitempty"`
	Count     int      `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertUsesFunction = "uses_function"
	AssertUsesOperator = "uses_operator"
	AssertCallOrder    = "call_order"
	AssertParamCount   = "param_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadDir loads every *.yaml and *.yml scenario in dir, sorted by file
// name. Scenario names must be unique.
func LoadDir(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate scenario name %q (also in %s)", path, s.Name, prev)
		}
		seen[s.Name] = path
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Query) == 0 {
		return fmt.Errorf("query is required")
	}

	e := s.Expect
	if e.Error != "" {
		if e.Kind != "" || e.SQL != "" || e.ParamSQL != "" || e.Params != nil || len(s.Assertions) > 0 {
			return fmt.Errorf("expect.error cannot be combined with other expectations")
		}
		return nil
	}
	if e.Kind == "" && e.SQL == "" && e.ParamSQL == "" {
		return fmt.Errorf("expect needs at least one of kind, sql, param_sql or error")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertUsesFunction:
		if a.Function == "" {
			return fmt.Errorf("assertions[%d]: function is required for uses_function", index)
		}
	case AssertUsesOperator:
		if a.Operator == "" {
			return fmt.Errorf("assertions[%d]: operator is required for uses_operator", index)
		}
	case AssertCallOrder:
		if len(a.Functions) == 0 {
			return fmt.Errorf("assertions[%d]: functions list is required for call_order", index)
		}
	case AssertParamCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for param_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
