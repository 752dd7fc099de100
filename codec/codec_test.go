package codec

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/hupe1980/vecmath"
	"github.com/hupe1980/vecmath/testutil"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures(t *testing.T) map[string]vecmath.Vector {
	t.Helper()

	sparse, err := vecmath.NewSparseBitVector([]int{1, 4, 9})
	require.NoError(t, err)
	packed, err := vecmath.PackedIntVectorFrom([]int{3, 0, 15, 7}, 4)
	require.NoError(t, err)
	hash, err := vecmath.HashSparseFloatVectorFromPairs([]float32{2, 1.5, 7, -3}, vecmath.WithDefault(-1))
	require.NoError(t, err)

	rng := testutil.NewRNG(7)
	large := vecmath.IntVectorFrom(rng.Ints(2048, 1000))
	repetitive := vecmath.NewIntVector(4096)

	return map[string]vecmath.Vector{
		"int":        vecmath.IntVectorFrom([]int{1, -2, 3}),
		"float":      vecmath.FloatVectorFrom([]float32{0.5, 1, -2.25}),
		"bits":       vecmath.PackedBitVectorFromInts([]int{1, 0, 1, 1}),
		"sparse":     sparse,
		"packed":     packed,
		"hash":       hash,
		"empty":      vecmath.NewIntVector(0),
		"large":      large,
		"repetitive": repetitive,
	}
}

func TestRoundTrip(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok)

		t.Run(name, func(t *testing.T) {
			for vname, v := range fixtures(t) {
				data, err := c.Encode(v)
				require.NoError(t, err, vname)

				got, err := c.Decode(data)
				require.NoError(t, err, vname)
				assert.True(t, got.Equals(v), vname)
			}
		})
	}
}

func TestByName(t *testing.T) {
	assert.Equal(t, []string{"lz4", "text", "zstd"}, Names())

	c, ok := ByName("zstd")
	require.True(t, ok)
	assert.Equal(t, "zstd", c.Name())

	_, ok = ByName("gzip")
	assert.False(t, ok)

	assert.Equal(t, "text", Default.Name())
}

func TestTextIsWriteFormat(t *testing.T) {
	v := vecmath.IntVectorFrom([]int{1, 2})
	assert.Equal(t, v.String(), string(MustEncode(nil, v)))
}

func TestCompressedBlocks(t *testing.T) {
	repetitive := vecmath.NewIntVector(4096)
	raw := MustEncode(Text{}, repetitive)

	for _, c := range []Codec{LZ4{}, Zstd{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data := MustEncode(c, repetitive)
			assert.Less(t, len(data), len(raw)/2)
			assert.Equal(t, uint32(len(raw)), binary.LittleEndian.Uint32(data[0:]))
			assert.NotZero(t, binary.LittleEndian.Uint32(data[4:]))
		})
	}
}

func TestSmallDocumentsStoredRaw(t *testing.T) {
	v := vecmath.IntVectorFrom([]int{1})
	raw := MustEncode(Text{}, v)

	for _, c := range []Codec{LZ4{}, Zstd{}} {
		data := MustEncode(c, v)
		assert.Zero(t, binary.LittleEndian.Uint32(data[4:]), c.Name())
		assert.Equal(t, raw, data[blockHeaderSize:], c.Name())
	}
}

func TestCorruptBlocks(t *testing.T) {
	good := MustEncode(Zstd{}, vecmath.NewIntVector(4096))

	truncated := good[:len(good)-1]
	wrongSize := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(wrongSize[0:], 3)
	garbage := append([]byte(nil), good[:blockHeaderSize]...)
	garbage = append(garbage, make([]byte, len(good)-blockHeaderSize)...)

	tests := []struct {
		name string
		c    Codec
		data []byte
	}{
		{"short header", LZ4{}, []byte{1, 2, 3}},
		{"raw length mismatch", LZ4{}, []byte{9, 0, 0, 0, 0, 0, 0, 0, 'x'}},
		{"truncated", Zstd{}, truncated},
		{"wrong size", Zstd{}, wrongSize},
		{"garbage", Zstd{}, garbage},
		{"lz4 garbage", LZ4{}, garbage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.c.Decode(tt.data)
			assert.ErrorIs(t, err, ErrCorruptBlock)
		})
	}
}

func TestDecodeMalformedText(t *testing.T) {
	_, err := Text{}.Decode([]byte("vector type=nope length=1\n1\n"))
	assert.ErrorIs(t, err, vecmath.ErrMalformedInput)
}

func TestZstdConstructionErrors(t *testing.T) {
	encOpts, decOpts := zstdEncoderOptions, zstdDecoderOptions
	t.Cleanup(func() {
		zstdEncoderOptions, zstdDecoderOptions = encOpts, decOpts
		zstdEncoderPool = sync.Pool{}
		zstdDecoderPool = sync.Pool{}
	})

	block, err := Zstd{}.Encode(vecmath.IntVectorFrom(make([]int, 512)))
	require.NoError(t, err)

	zstdEncoderPool = sync.Pool{}
	zstdDecoderPool = sync.Pool{}
	zstdEncoderOptions = []zstd.EOption{zstd.WithEncoderConcurrency(0)}
	zstdDecoderOptions = []zstd.DOption{zstd.WithDecoderMaxMemory(0)}

	_, err = Zstd{}.Encode(vecmath.IntVectorFrom([]int{1, 2, 3}))
	assert.ErrorContains(t, err, "zstd encoder")

	_, err = Zstd{}.Decode(block)
	assert.ErrorContains(t, err, "zstd decoder")
}
