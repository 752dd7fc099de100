package archive

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/vecmath"
	"github.com/hupe1980/vecmath/internal/conv"
	"github.com/hupe1980/vecmath/internal/hash"
)

// Frame layout (little endian):
//
//	magic    [4]byte "VMAR"
//	version  uint8
//	kind     uint8
//	codecLen uint8
//	codec    [codecLen]byte
//	length   int64
//	size     uint64  payload bytes
//	crc      uint32  CRC32C of payload
//	payload  [size]byte
const (
	frameVersion   = 1
	fixedHeaderLen = 4 + 1 + 1 + 1
	tailHeaderLen  = 8 + 8 + 4
	maxHeaderLen   = fixedHeaderLen + 255 + tailHeaderLen
)

var frameMagic = [4]byte{'V', 'M', 'A', 'R'}

// ErrCorruptFrame is returned when a stored blob is not a valid vector frame.
var ErrCorruptFrame = errors.New("archive: corrupt frame")

type frameHeader struct {
	kind   vecmath.Kind
	codec  string
	length int64
	size   uint64
	crc    uint32
}

func (h frameHeader) encodedLen() int {
	return fixedHeaderLen + len(h.codec) + tailHeaderLen
}

func encodeFrame(h frameHeader, payload []byte) ([]byte, error) {
	if len(h.codec) == 0 || len(h.codec) > 255 {
		return nil, fmt.Errorf("archive: invalid codec name %q", h.codec)
	}
	length, err := conv.Int64ToUint64(h.length)
	if err != nil {
		return nil, fmt.Errorf("archive: invalid vector length: %w", err)
	}
	h.size = uint64(len(payload))
	h.crc = hash.CRC32C(payload)

	out := make([]byte, 0, h.encodedLen()+len(payload))
	out = append(out, frameMagic[:]...)
	out = append(out, frameVersion, byte(h.kind), byte(len(h.codec)))
	out = append(out, h.codec...)
	out = binary.LittleEndian.AppendUint64(out, length)
	out = binary.LittleEndian.AppendUint64(out, h.size)
	out = binary.LittleEndian.AppendUint32(out, h.crc)
	return append(out, payload...), nil
}

// decodeHeader parses the header at the start of data. data may be truncated
// after the header.
func decodeHeader(data []byte) (frameHeader, int, error) {
	var h frameHeader
	if len(data) < fixedHeaderLen {
		return h, 0, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptFrame, len(data))
	}
	if [4]byte(data[:4]) != frameMagic {
		return h, 0, fmt.Errorf("%w: bad magic %q", ErrCorruptFrame, data[:4])
	}
	if data[4] != frameVersion {
		return h, 0, fmt.Errorf("%w: unsupported version %d", ErrCorruptFrame, data[4])
	}
	h.kind = vecmath.Kind(data[5])

	n := fixedHeaderLen + int(data[6])
	if data[6] == 0 || len(data) < n+tailHeaderLen {
		return h, 0, fmt.Errorf("%w: truncated header", ErrCorruptFrame)
	}
	h.codec = string(data[fixedHeaderLen:n])
	length, err := conv.Uint64ToInt64(binary.LittleEndian.Uint64(data[n:]))
	if err != nil {
		return h, 0, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
	}
	h.length = length
	h.size = binary.LittleEndian.Uint64(data[n+8:])
	h.crc = binary.LittleEndian.Uint32(data[n+16:])
	return h, n + tailHeaderLen, nil
}

// decodeFrame splits a complete frame into header and verified payload.
func decodeFrame(data []byte) (frameHeader, []byte, error) {
	h, n, err := decodeHeader(data)
	if err != nil {
		return h, nil, err
	}
	payload := data[n:]
	if uint64(len(payload)) != h.size {
		return h, nil, fmt.Errorf("%w: payload has %d bytes, header says %d", ErrCorruptFrame, len(payload), h.size)
	}
	if err := hash.VerifyCRC32C(payload, h.crc); err != nil {
		return h, nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
	}
	return h, payload, nil
}
