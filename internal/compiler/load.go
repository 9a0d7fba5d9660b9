package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tsexpr/internal/log"
)

// ErrUnsupportedFormat is returned by Load for files that are neither
// YAML nor CUE.
var ErrUnsupportedFormat = errors.New("unsupported definition format")

// Load reads definitions from path. Directories are loaded as a CUE
// package; files are dispatched on their extension.
func Load(path string) ([]Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadCUE(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".cue":
		return LoadCUE(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadYAML reads a YAML definitions file.
func LoadYAML(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defs, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("loaded %d definitions from %s", len(defs), path)
	return defs, nil
}

// ParseYAML decodes a YAML document of the form
//
//	queries:
//	  - name: title_search
//	    expr: {...}
//
// Unknown top-level or definition keys are rejected. An empty document
// yields no definitions.
func ParseYAML(data []byte) ([]Definition, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return f.Queries, nil
}

// LoadCUE loads a CUE package directory, or a single .cue file, and
// extracts the definitions under its top-level "query" field.
func LoadCUE(path string) ([]Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	cfg := &load.Config{Dir: path}
	args := []string{"."}
	if !info.IsDir() {
		cfg.Dir = filepath.Dir(path)
		args = []string{filepath.Base(path)}
	}

	instances := load.Instances(args, cfg)
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", path)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, formatCUEError(inst.Err)
	}

	ctx := cuecontext.New()
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	defs, err := DefinitionsFromCUE(value)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %d definitions from %s", len(defs), path)
	return defs, nil
}

// DefinitionsFromCUE extracts the definitions under the "query" field of
// v. Each field label is a definition name:
//
//	query: title_search: {
//		description: "documents whose title matches"
//		expect_kind: "bool"
//		expr: {op: "@@", left: {...}, right: {...}}
//	}
func DefinitionsFromCUE(v cue.Value) ([]Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	queries := v.LookupPath(cue.ParsePath("query"))
	if !queries.Exists() {
		return nil, nil
	}
	iter, err := queries.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var defs []Definition
	for iter.Next() {
		def, err := decodeCUEDefinition(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func decodeCUEDefinition(name string, v cue.Value) (Definition, error) {
	def := Definition{Name: name, Pos: v.Pos()}

	var err error
	if def.Description, err = optionalString(v, "description"); err != nil {
		return def, err
	}
	if def.ExpectKind, err = optionalString(v, "expect_kind"); err != nil {
		return def, err
	}

	exprVal := v.LookupPath(cue.ParsePath("expr"))
	if !exprVal.Exists() {
		return def, &CompileError{
			Field:   name + ".expr",
			Message: "expr is required",
			Pos:     v.Pos(),
		}
	}
	if err := exprVal.Decode(&def.Expr); err != nil {
		return def, formatCUEError(err)
	}
	return def, nil
}

func optionalString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}
