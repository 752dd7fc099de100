package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/vecmath"
	"github.com/hupe1980/vecmath/internal/conv"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Block layout: [uncompressed uint32][compressed uint32][data...].
// A compressed size of 0 means data holds the raw bytes.
const blockHeaderSize = 8

// storeRawRatio is the compressed/raw ratio above which the block is stored raw.
const storeRawRatio = 0.9

// ErrCorruptBlock is returned when a compressed block cannot be decoded.
var ErrCorruptBlock = errors.New("codec: corrupt block")

type compressor interface {
	compress(data []byte) ([]byte, error)
	decompress(src []byte, size int) ([]byte, error)
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool

	zstdEncoderOptions = []zstd.EOption{zstd.WithEncoderLevel(zstd.SpeedDefault)}
	zstdDecoderOptions []zstd.DOption
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	enc, err := zstd.NewWriter(nil, zstdEncoderOptions...)
	if err != nil {
		return nil, fmt.Errorf("codec: zstd encoder: %w", err)
	}
	return enc, nil
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	dec, err := zstd.NewReader(nil, zstdDecoderOptions...)
	if err != nil {
		return nil, fmt.Errorf("codec: zstd decoder: %w", err)
	}
	return dec, nil
}

// LZ4 compresses the text format with LZ4 block compression.
type LZ4 struct{}

// Name returns "lz4".
func (LZ4) Name() string { return "lz4" }

// Encode compresses the text form of v.
func (c LZ4) Encode(v vecmath.Vector) ([]byte, error) { return encodeBlock(c, v) }

// Decode decompresses and parses a block.
func (c LZ4) Decode(data []byte) (vecmath.Vector, error) { return decodeBlock(c, data) }

func (LZ4) compress(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, err
	}
	// n == 0 means incompressible.
	return dst[:n], nil
}

func (LZ4) decompress(src []byte, size int) ([]byte, error) {
	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBlock, err)
	}
	if n != size {
		return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", ErrCorruptBlock, n, size)
	}
	return dst, nil
}

// Zstd compresses the text format with Zstandard.
type Zstd struct{}

// Name returns "zstd".
func (Zstd) Name() string { return "zstd" }

// Encode compresses the text form of v.
func (c Zstd) Encode(v vecmath.Vector) ([]byte, error) { return encodeBlock(c, v) }

// Decode decompresses and parses a block.
func (c Zstd) Decode(data []byte) (vecmath.Vector, error) { return decodeBlock(c, data) }

func (Zstd) compress(data []byte) ([]byte, error) {
	enc, err := getZstdEncoder()
	if err != nil {
		return nil, err
	}
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

func (Zstd) decompress(src []byte, size int) ([]byte, error) {
	dec, err := getZstdDecoder()
	if err != nil {
		return nil, err
	}
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(src, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBlock, err)
	}
	if len(out) != size {
		return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", ErrCorruptBlock, len(out), size)
	}
	return out, nil
}

func encodeBlock(c compressor, v vecmath.Vector) ([]byte, error) {
	raw, err := Text{}.Encode(v)
	if err != nil {
		return nil, err
	}
	return compressBlock(c, raw)
}

func decodeBlock(c compressor, data []byte) (vecmath.Vector, error) {
	raw, err := decompressBlock(c, data)
	if err != nil {
		return nil, err
	}
	return Text{}.Decode(raw)
}

func compressBlock(c compressor, data []byte) ([]byte, error) {
	compressed, err := c.compress(data)
	if err != nil {
		return nil, err
	}

	size, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, fmt.Errorf("codec: document too large: %w", err)
	}

	payload, stored := compressed, uint32(len(compressed))
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*storeRawRatio {
		payload, stored = data, 0
	}

	out := make([]byte, blockHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(out[0:], size)
	binary.LittleEndian.PutUint32(out[4:], stored)
	copy(out[blockHeaderSize:], payload)
	return out, nil
}

func decompressBlock(c compressor, data []byte) ([]byte, error) {
	if len(data) < blockHeaderSize {
		return nil, fmt.Errorf("%w: block too small for header", ErrCorruptBlock)
	}

	size := binary.LittleEndian.Uint32(data[0:])
	stored := binary.LittleEndian.Uint32(data[4:])
	body := data[blockHeaderSize:]

	if stored == 0 {
		if uint64(len(body)) != uint64(size) {
			return nil, fmt.Errorf("%w: raw block holds %d bytes, header says %d", ErrCorruptBlock, len(body), size)
		}
		return body, nil
	}

	if uint64(len(body)) != uint64(stored) {
		return nil, fmt.Errorf("%w: compressed block holds %d bytes, header says %d", ErrCorruptBlock, len(body), stored)
	}
	n, err := conv.Uint32ToInt(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBlock, err)
	}
	return c.decompress(body, n)
}
