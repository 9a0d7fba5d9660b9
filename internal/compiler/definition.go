package compiler

import (
	"cuelang.org/go/cue/token"
)

// Definition is a named query expression as written in a YAML or CUE
// file. Expr holds the undecoded node tree.
type Definition struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Expr        map[string]any `yaml:"expr" json:"expr"`
	ExpectKind  string         `yaml:"expect_kind,omitempty" json:"expect_kind,omitempty"`

	// Pos is the source position of the definition when it came from CUE.
	Pos token.Pos `yaml:"-" json:"-"`
}

// File is the top-level shape of a YAML definitions file.
type File struct {
	Queries []Definition `yaml:"queries"`
}

// Node discriminator keys.
const (
	keyCall    = "call"
	keyArgs    = "args"
	keyOp      = "op"
	keyLeft    = "left"
	keyRight   = "right"
	keyColumn  = "column"
	keyTable   = "table"
	keyKind    = "kind"
	keyText    = "text"
	keyInt     = "int"
	keyBool    = "bool"
	keyLiteral = "literal"
	keyGroup   = "group"
	keySymbol  = "symbol"
)

// allowedKeys lists, per discriminator, every key a node may carry. Any
// node may also state its kind, which is then checked, so the output of
// expr.Describe compiles back into the same tree.
var allowedKeys = map[string][]string{
	keyCall:    {keyCall, keyArgs, keyKind},
	keyOp:      {keyOp, keySymbol, keyLeft, keyRight, keyKind},
	keyColumn:  {keyColumn, keyTable, keyKind},
	keyText:    {keyText, keyKind},
	keyInt:     {keyInt, keyKind},
	keyBool:    {keyBool, keyKind},
	keyLiteral: {keyLiteral, keyKind},
	keyGroup:   {keyGroup, keyKind},
}

// discriminators in the order they are reported in error messages.
var discriminators = []string{keyCall, keyOp, keyColumn, keyText, keyInt, keyBool, keyLiteral, keyGroup}
