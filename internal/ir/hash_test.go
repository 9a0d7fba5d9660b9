package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() map[string]any {
	return map[string]any{
		"symbol": "@@",
		"kind":   "bool",
		"left": map[string]any{
			"call": "to_tsvector",
			"kind": "tsvector",
			"args": []any{map[string]any{"literal": "the cat sat", "kind": "text"}},
		},
		"right": map[string]any{
			"call": "to_tsquery",
			"kind": "tsquery",
			"args": []any{map[string]any{"literal": "cat & sat", "kind": "text"}},
		},
	}
}

func TestExprHashDeterminism(t *testing.T) {
	first, err := ExprHash(sampleTree())
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := ExprHash(sampleTree())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func mustExprHash(t *testing.T, tree map[string]any) string {
	t.Helper()
	h, err := ExprHash(tree)
	require.NoError(t, err)
	return h
}

func TestExprHashChangesWithContent(t *testing.T) {
	a := sampleTree()
	b := sampleTree()
	b["symbol"] = "<=>"

	ha := mustExprHash(t, a)
	hb := mustExprHash(t, b)
	assert.NotEqual(t, ha, hb)
}

func TestExprHashHexEncoding(t *testing.T) {
	h := mustExprHash(t, sampleTree())
	assert.Len(t, h, 64)
	_, err := hex.DecodeString(h)
	assert.NoError(t, err)
}

func TestHashWithDomainNullSeparator(t *testing.T) {
	data := []byte("payload")
	h := sha256.New()
	h.Write([]byte(DomainExpr))
	h.Write([]byte{0x00})
	h.Write(data)
	expected := hex.EncodeToString(h.Sum(nil))

	assert.Equal(t, expected, hashWithDomain(DomainExpr, data))
}

func TestDomainSeparation(t *testing.T) {
	data := []byte("same")
	assert.NotEqual(t, hashWithDomain(DomainExpr, data), hashWithDomain(DomainQuery, data))
}

func TestQueryHash(t *testing.T) {
	exprHash := mustExprHash(t, sampleTree())
	assert.Equal(t, QueryHash("cats", exprHash), QueryHash("cats", exprHash))
	assert.NotEqual(t, QueryHash("cats", exprHash), QueryHash("dogs", exprHash))
}

func TestExprHashErrorHandling(t *testing.T) {
	_, err := ExprHash(map[string]any{"rank": 0.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ExprHash")

}
