package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMap(t *testing.T) {
	t.Run("missing key yields default and stores it", func(t *testing.T) {
		m := NewDefaultMap[string, int](func() int { return 42 })

		assert.Equal(t, 42, m.Get("missing"))
		assert.Equal(t, 1, m.Len())
	})

	t.Run("set overwrites default", func(t *testing.T) {
		m := NewDefaultMap[string, int](func() int { return 0 })
		m.Set("k", 7)

		assert.Equal(t, 7, m.Get("k"))
	})

	t.Run("accumulating slices per key", func(t *testing.T) {
		m := NewDefaultMap[string, []int](func() []int { return nil })
		for i, key := range []string{"a", "b", "a", "a"} {
			m.Set(key, append(m.Get(key), i))
		}

		assert.Equal(t, []int{0, 2, 3}, m.Get("a"))
		assert.Equal(t, []int{1}, m.Get("b"))
		assert.Equal(t, 2, m.Len())
	})
}
