package mmap

import (
	"bytes"
	"fmt"
	"io"
)

// Region is a byte range of a Mapping, such as a frame header or payload.
// It stays valid only while the parent is open.
type Region struct {
	parent *Mapping
	offset int
	size   int
}

// Region returns the range [offset, offset+size) of the blob.
func (m *Mapping) Region(offset, size int) (*Region, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	if offset < 0 || size < 0 || offset > len(m.data)-size {
		return nil, fmt.Errorf("%w: [%d, %d) of %d bytes", ErrOutOfBounds, offset, offset+size, len(m.data))
	}
	return &Region{parent: m, offset: offset, size: size}, nil
}

// Bytes returns the range, or nil once the parent is closed.
func (r *Region) Bytes() []byte {
	data := r.parent.Bytes()
	if data == nil {
		return nil
	}
	return data[r.offset : r.offset+r.size]
}

// Size returns the length of the range in bytes.
func (r *Region) Size() int {
	return r.size
}

// Reader streams the range. Closing the reader leaves the parent open.
func (r *Region) Reader() (io.ReadCloser, error) {
	data := r.Bytes()
	if data == nil && r.size > 0 {
		return nil, ErrClosed
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
