package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	hits  int
	label string
}

func TestTableUpdateCreatesLazily(t *testing.T) {
	tbl := NewTable[int64, counter](func() counter { return counter{label: "new"} })

	found := tbl.Peek(1, nil)
	assert.False(t, found)
	assert.Equal(t, 0, tbl.Len())

	tbl.Update(1, func(c *counter) { c.hits++ })
	tbl.Update(1, func(c *counter) { c.hits++ })

	var got counter
	require.True(t, tbl.Peek(1, func(c *counter) { got = *c }))
	assert.Equal(t, counter{hits: 2, label: "new"}, got)
}

func TestTableDelete(t *testing.T) {
	tbl := NewTable[string, counter](nil)
	tbl.Update("a", func(c *counter) { c.hits = 5 })
	tbl.Delete("a")
	assert.False(t, tbl.Peek("a", nil))

	tbl.Update("a", func(c *counter) { assert.Zero(t, c.hits) })
}

func TestTableConcurrentUpdates(t *testing.T) {
	tbl := NewTable[int64, counter](nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(key int64) {
			defer wg.Done()
			tbl.Update(key%5, func(c *counter) { c.hits++ })
		}(int64(i))
	}
	wg.Wait()

	total := 0
	for k := int64(0); k < 5; k++ {
		tbl.Peek(k, func(c *counter) { total += c.hits })
	}
	assert.Equal(t, 50, total)
	assert.Equal(t, 5, tbl.Len())
}
