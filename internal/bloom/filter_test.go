package bloom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxItems(t *testing.T) {
	t.Run("default precision", func(t *testing.T) {
		// ceil(log2(1/0.000065)) = 14 slices
		assert.Equal(t, uint64(3200), MaxItems(0.000065))
	})
	t.Run("lower precision allows more items", func(t *testing.T) {
		assert.Greater(t, MaxItems(0.01), MaxItems(0.0001))
	})
	t.Run("precision of one", func(t *testing.T) {
		assert.Equal(t, uint64(44805), MaxItems(1))
	})
}

func TestValidPrecision(t *testing.T) {
	assert.True(t, ValidPrecision(0.000065))
	assert.True(t, ValidPrecision(1))
	assert.False(t, ValidPrecision(0))
	assert.False(t, ValidPrecision(-0.1))
	assert.False(t, ValidPrecision(1.5))
}

func TestFilter(t *testing.T) {
	f, err := New(40, 0.000065)
	require.NoError(t, err)

	keys := make([][]byte, 0, 40)
	for i := 0; i < 40; i++ {
		keys = append(keys, []byte(fmt.Sprintf("participant-%d", i)))
	}
	for _, k := range keys[:20] {
		f.Add(k)
	}

	t.Run("no false negatives", func(t *testing.T) {
		for _, k := range keys[:20] {
			assert.True(t, f.MaybeContains(k))
		}
	})
	t.Run("round trip keeps membership", func(t *testing.T) {
		data, err := f.Encode()
		require.NoError(t, err)

		restored, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, f.Cap(), restored.Cap())
		for _, k := range keys {
			assert.Equal(t, f.MaybeContains(k), restored.MaybeContains(k))
		}
	})
	t.Run("invalid precision", func(t *testing.T) {
		_, err := New(10, 0)
		assert.Error(t, err)
	})
	t.Run("garbage input", func(t *testing.T) {
		_, err := Decode([]byte("not a filter"))
		assert.Error(t, err)
	})
}
