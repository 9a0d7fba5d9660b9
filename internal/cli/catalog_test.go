package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tsexpr/internal/textsearch"
)

func TestCatalogText(t *testing.T) {
	out, err := execute(t, "catalog")
	require.NoError(t, err)

	assert.Contains(t, out, "Kinds:")
	assert.Regexp(t, `tsvector\s+oid 3614\s+array 3643\s+not null`, out)
	assert.Regexp(t, `tsquery\s+oid 3615\s+array 3645\s+not null`, out)
	assert.Regexp(t, `ts_headline\(text, tsquery\)\s+-> text`, out)
	assert.Regexp(t, `Concat\s+tsvector \|\| tsvector\s+-> tsvector\s+grouped`, out)
	assert.Regexp(t, `RightDistance\s+tsvector \|=> tsvector\s+-> float4`, out)
	assert.Equal(t, 2, strings.Count(out, "Matches"))
}

func TestCatalogJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "catalog")
	require.NoError(t, err)

	var resp struct {
		Status string             `json:"status"`
		Data   textsearch.Catalog `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, textsearch.DefaultCatalog(), resp.Data)
}
