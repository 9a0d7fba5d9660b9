package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/tsexpr/internal/expr"
	"github.com/roach88/tsexpr/internal/ir"
)

// marshalParams converts bound params to canonical JSON TEXT for storage.
func marshalParams(params []expr.Param) (string, error) {
	arr := make([]any, len(params))
	for i, p := range params {
		v, err := ir.FromNative(p.Value)
		if err != nil {
			return "", fmt.Errorf("marshal params: $%d: %w", i+1, err)
		}
		arr[i] = map[string]any{"value": v, "kind": p.Kind, "oid": p.OID}
	}

	data, err := ir.MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	return string(data), nil
}

// unmarshalParams parses params TEXT. Values come back as the same Go
// types the renderer produced (string, int64, bool or nil).
func unmarshalParams(data string) ([]expr.Param, error) {
	var raw []struct {
		Value json.RawMessage `json:"value"`
		Kind  string          `json:"kind"`
		OID   uint32          `json:"oid"`
	}
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}

	params := make([]expr.Param, 0, len(raw))
	for i, r := range raw {
		v, err := ir.UnmarshalValue(r.Value)
		if err != nil {
			return nil, fmt.Errorf("unmarshal params: $%d: %w", i+1, err)
		}
		native, err := ir.Native(v)
		if err != nil {
			return nil, fmt.Errorf("unmarshal params: $%d: %w", i+1, err)
		}
		params = append(params, expr.Param{Value: native, Kind: r.Kind, OID: r.OID})
	}
	return params, nil
}

// unmarshalTree parses a canonical tree, keeping integers exact.
func unmarshalTree(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("unmarshal tree: %w", err)
	}
	return tree, nil
}
