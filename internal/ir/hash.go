package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows migrating the algorithm later.
const (
	DomainExpr  = "tsexpr/expr/v1"
	DomainQuery = "tsexpr/query/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ExprHash computes the content-addressed id of a described expression
// tree (see expr.Describe). Equal trees always hash equally regardless of
// map iteration order.
func ExprHash(tree map[string]any) (string, error) {
	canonical, err := MarshalCanonical(tree)
	if err != nil {
		return "", fmt.Errorf("ExprHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainExpr, canonical), nil
}

// QueryHash computes the id of a saved query: its name plus the hash of
// its expression tree.
func QueryHash(name, exprHash string) string {
	return hashWithDomain(DomainQuery, []byte(name+"\x00"+exprHash))
}
