package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantity(t *testing.T) {
	t.Run("exact decimal strings", func(t *testing.T) {
		q, err := NewQuantity("12.345")
		require.NoError(t, err)
		assert.Equal(t, "12.345", q.String())
	})

	t.Run("rounds to storage scale", func(t *testing.T) {
		q, err := NewQuantity("0.12345")
		require.NoError(t, err)
		assert.Equal(t, "0.123", q.String())

		q, err = NewQuantity("0.9995")
		require.NoError(t, err)
		assert.True(t, q.Equal(MustQuantity("1")))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := NewQuantity("ten")
		assert.Error(t, err)
		_, err = NewQuantity("")
		assert.Error(t, err)
	})
}

func TestQuantityArithmetic(t *testing.T) {
	// 0.1 + 0.2 is exact with decimals, unlike float64.
	sum := MustQuantity("0.1").Add(MustQuantity("0.2"))
	assert.True(t, sum.Equal(MustQuantity("0.3")))

	assert.True(t, ZeroQuantity().IsZero())
	assert.Equal(t, -1, MustQuantity("-5").Sign())
}
