package internal

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_SetGet(t *testing.T) {
	tbl := NewTable[string, int]()
	assert.Equal(t, 0, tbl.Len())

	tbl.Set("a", 1)
	v, ok := tbl.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, tbl.Has("a"))
	assert.False(t, tbl.Has("b"))

	tbl.Set("a", 2)
	v, _ = tbl.Get("a")
	assert.Equal(t, 2, v, "set replaces")
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_SetIfAbsent(t *testing.T) {
	tbl := NewTable[string, string]()

	assert.True(t, tbl.SetIfAbsent("k", "first"))
	assert.False(t, tbl.SetIfAbsent("k", "second"))

	v, _ := tbl.Get("k")
	assert.Equal(t, "first", v)
}

func TestTable_Update(t *testing.T) {
	tbl := NewTable[string, int]()

	tbl.Update("n", func(current int, exists bool) int {
		assert.False(t, exists)
		return current + 1
	})
	tbl.Update("n", func(current int, exists bool) int {
		assert.True(t, exists)
		return current + 1
	})

	v, _ := tbl.Get("n")
	assert.Equal(t, 2, v)
}

func TestTable_Names(t *testing.T) {
	tbl := NewTable[int, bool]()
	tbl.Set(3, true)
	tbl.Set(1, true)
	tbl.Set(2, true)

	assert.Equal(t, []string{"1", "2", "3"}, tbl.Names(strconv.Itoa))
}

func TestTable_ConcurrentAccess(t *testing.T) {
	tbl := NewTable[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			tbl.Set(n, n*n)
		}(i)
		go func(n int) {
			defer wg.Done()
			if v, ok := tbl.Get(n); ok {
				assert.Equal(t, n*n, v)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, tbl.Len())
}
