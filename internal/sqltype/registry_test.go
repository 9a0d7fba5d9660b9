package sqltype

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWireTypes(t *testing.T) {
	tests := []struct {
		name     string
		lookup   func() (WireType, error)
		expected WireType
	}{
		{"tsvector", func() (WireType, error) { return Lookup[TSVector](Default) },
			WireType{Name: "tsvector", OID: 3614, ArrayOID: 3643, NotNull: true}},
		{"tsquery", func() (WireType, error) { return Lookup[TSQuery](Default) },
			WireType{Name: "tsquery", OID: 3615, ArrayOID: 3645, NotNull: true}},
		{"bool", func() (WireType, error) { return Lookup[Bool](Default) },
			WireType{Name: "bool", OID: 16, ArrayOID: 1000, NotNull: true}},
		{"int4", func() (WireType, error) { return Lookup[Integer](Default) },
			WireType{Name: "int4", OID: 23, ArrayOID: 1007, NotNull: true}},
		{"float4", func() (WireType, error) { return Lookup[Float](Default) },
			WireType{Name: "float4", OID: 700, ArrayOID: 1021, NotNull: true}},
		{"text", func() (WireType, error) { return Lookup[Text](Default) },
			WireType{Name: "text", OID: 25, ArrayOID: 1009, NotNull: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.lookup()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	vector := WireType{OID: 3614, ArrayOID: 3643, NotNull: true}
	query := WireType{OID: 3615, ArrayOID: 3645, NotNull: true}

	b := NewBuilder()
	require.NoError(t, b.Register("tsvector", vector))
	require.NoError(t, b.Register("tsquery", query))
	r := b.Build()

	got, err := Lookup[TSVector](r)
	require.NoError(t, err)
	assert.Equal(t, uint32(3614), got.OID)
	assert.Equal(t, uint32(3643), got.ArrayOID)
	assert.True(t, got.NotNull)
	assert.Equal(t, "tsvector", got.Name)

	got, err = Lookup[TSQuery](r)
	require.NoError(t, err)
	assert.Equal(t, WireType{Name: "tsquery", OID: 3615, ArrayOID: 3645, NotNull: true}, got)
}

func TestRegisterTwiceFails(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Register("tsvector", WireType{OID: 3614}))

	err := b.Register("tsvector", WireType{OID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	got, err := b.Build().Lookup("tsvector")
	require.NoError(t, err)
	assert.Equal(t, uint32(3614), got.OID)
}

func TestRegisterEmptyName(t *testing.T) {
	err := NewBuilder().Register("", WireType{})
	assert.Error(t, err)
}

func TestLookupUnregistered(t *testing.T) {
	r := NewBuilder().Build()

	_, err := Lookup[TSQuery](r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnregistered))

	var unreg *UnregisteredError
	require.True(t, errors.As(err, &unreg))
	assert.Equal(t, "tsquery", unreg.Name)

	assert.Panics(t, func() { MustLookup[TSVector](r) })
}

func TestBuildIsSnapshot(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Register("tsvector", WireType{OID: 3614}))
	r := b.Build()

	require.NoError(t, b.Register("tsquery", WireType{OID: 3615}))

	_, err := r.Lookup("tsquery")
	assert.ErrorIs(t, err, ErrUnregistered)
	assert.Len(t, r.Entries(), 1)
}

func TestEntriesOrder(t *testing.T) {
	entries := Default.Entries()
	require.Len(t, entries, 6)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.Equal(t, kindNames(), names)
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "tsvector", NameOf[TSVector]())
	assert.Equal(t, "tsquery", NameOf[TSQuery]())
	assert.Equal(t, []string{"tsvector", "tsquery", "bool", "int4", "float4", "text"}, kindNames())
}
