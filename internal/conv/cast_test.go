//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToUint32(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		got, err := IntToUint32(0)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("max uint32", func(t *testing.T) {
		got, err := IntToUint32(math.MaxUint32)
		assert.NoError(t, err)
		assert.Equal(t, uint32(math.MaxUint32), got)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := IntToUint32(math.MaxUint32 + 1)
		var oe *OverflowError
		require.ErrorAs(t, err, &oe)
		assert.Equal(t, "4294967296", oe.Value)
		assert.Equal(t, "uint32", oe.Target)
		assert.EqualError(t, err, "integer overflow: 4294967296 does not fit uint32")
	})
}

func TestUint32ToInt(t *testing.T) {
	got, err := Uint32ToInt(math.MaxUint32)
	assert.NoError(t, err)
	assert.Equal(t, int(math.MaxUint32), got)
}

func TestInt64ToUint64(t *testing.T) {
	got, err := Int64ToUint64(1 << 40)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1<<40), got)

	_, err = Int64ToUint64(-5)
	assert.EqualError(t, err, "integer overflow: -5 does not fit uint64")
}

func TestUint64ToInt64(t *testing.T) {
	got, err := Uint64ToInt64(123)
	assert.NoError(t, err)
	assert.Equal(t, int64(123), got)

	_, err = Uint64ToInt64(math.MaxInt64 + 1)
	assert.Error(t, err)
}
