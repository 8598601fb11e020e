package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitSet_GetSet(t *testing.T) {
	t.Run("new bitset starts clear", func(t *testing.T) {
		b := New(128)
		for i := 0; i < 128; i++ {
			assert.False(t, b.Get(i))
		}
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		b := New(64)
		b.Set(3, true)
		b.Set(63, true)
		assert.True(t, b.Get(3))
		assert.True(t, b.Get(63))
		assert.False(t, b.Get(4))
	})

	t.Run("clearing a bit is reflected", func(t *testing.T) {
		b := New(8)
		b.Set(2, true)
		b.Set(2, false)
		assert.False(t, b.Get(2))
	})

	t.Run("out of range get returns false, not panic", func(t *testing.T) {
		b := New(8)
		assert.False(t, b.Get(1000))
		assert.False(t, b.Get(-1))
	})

	t.Run("out of range set panics", func(t *testing.T) {
		b := New(8)
		assert.Panics(t, func() { b.Set(8, true) })
	})
}

func TestBitSet_Resize(t *testing.T) {
	t.Run("growing preserves set bits", func(t *testing.T) {
		b := New(8)
		b.Set(5, true)
		b.Resize(300)
		require.Equal(t, 300, b.Len())
		assert.True(t, b.Get(5))
		assert.False(t, b.Get(200))
	})

	t.Run("shrinking discards bits beyond the new length", func(t *testing.T) {
		b := New(128)
		b.Set(100, true)
		b.Resize(50)
		assert.Equal(t, 50, b.Len())
		b.Resize(128)
		assert.False(t, b.Get(100), "bit should not resurrect after shrink then regrow")
	})
}

func TestBitSet_AndAndNot(t *testing.T) {
	t.Run("And keeps only bits set in both", func(t *testing.T) {
		a := New(128)
		b := New(128)
		a.Set(1, true)
		a.Set(2, true)
		b.Set(2, true)
		b.Set(3, true)

		a.And(b)
		assert.False(t, a.Get(1))
		assert.True(t, a.Get(2))
		assert.False(t, a.Get(3))
	})

	t.Run("And truncates to the shorter operand's words", func(t *testing.T) {
		a := New(256)
		b := New(64)
		a.Set(200, true)
		a.Set(10, true)
		b.Set(10, true)

		a.And(b)
		assert.False(t, a.Get(200))
		assert.True(t, a.Get(10))
	})

	t.Run("AndNot clears bits present in other", func(t *testing.T) {
		a := New(64)
		b := New(64)
		a.Set(1, true)
		a.Set(2, true)
		b.Set(2, true)

		a.AndNot(b)
		assert.True(t, a.Get(1))
		assert.False(t, a.Get(2))
	})
}

func TestBitSet_IterSetBitsUntil(t *testing.T) {
	b := New(128)
	for _, i := range []int{0, 5, 63, 64, 100} {
		b.Set(i, true)
	}

	var got []int
	b.IterSetBitsUntil(100, func(i int) bool {
		got = append(got, i)
		return true
	})
	assert.Equal(t, []int{0, 5, 63, 64}, got, "100 is excluded as the iteration bound")

	var stopped []int
	b.IterSetBitsUntil(128, func(i int) bool {
		stopped = append(stopped, i)
		return i < 63
	})
	assert.Equal(t, []int{0, 5, 63}, stopped, "iteration halts once fn returns false")
}

func TestBitSet_HighestSetBit(t *testing.T) {
	b := New(128)
	assert.Equal(t, -1, b.HighestSetBit(128))
	b.Set(10, true)
	b.Set(40, true)
	assert.Equal(t, 40, b.HighestSetBit(128))
	assert.Equal(t, 10, b.HighestSetBit(40))
}

func TestBitSet_Clone(t *testing.T) {
	a := New(64)
	a.Set(5, true)
	c := a.Clone()
	c.Set(6, true)
	assert.True(t, a.Get(5))
	assert.False(t, a.Get(6), "mutating the clone must not affect the original")
}
