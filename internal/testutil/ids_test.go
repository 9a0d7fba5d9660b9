package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceGeneratorStartsAtOne(t *testing.T) {
	g := NewSequenceGenerator()
	assert.Equal(t, int64(0), g.Current())
	assert.Equal(t, "00000000-0000-7000-8000-000000000001", g.Generate())
	assert.Equal(t, "00000000-0000-7000-8000-000000000002", g.Generate())
	assert.Equal(t, int64(2), g.Current())
}

func TestSequenceGeneratorSortsInIssueOrder(t *testing.T) {
	g := NewSequenceGenerator()
	prev := g.Generate()
	for i := 0; i < 20; i++ {
		next := g.Generate()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestSequenceGeneratorReset(t *testing.T) {
	g := NewSequenceGenerator()
	first := g.Generate()
	g.Generate()
	g.Reset()
	assert.Equal(t, int64(0), g.Current())
	assert.Equal(t, first, g.Generate())
}

func TestSequenceGeneratorConcurrent(t *testing.T) {
	g := NewSequenceGenerator()
	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := seen.LoadOrStore(g.Generate(), true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), g.Current())
}

func TestSequenceID(t *testing.T) {
	assert.Equal(t, "00000000-0000-7000-8000-000000000042", SequenceID(42))
}
