package mmap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

var (
	// ErrClosed is returned by accessors of a closed mapping and its regions.
	ErrClosed = errors.New("mmap: blob mapping closed")
	// ErrOutOfBounds is returned for a region or offset outside the blob.
	ErrOutOfBounds = errors.New("mmap: range outside blob")
)

// Mapping is a read-only view of a whole blob file.
type Mapping struct {
	path   string
	data   []byte
	closed atomic.Bool
	unmap  func() error
}

// Open maps the blob file at path. Empty files get a mapping without memory.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	if fi.Size() == 0 {
		return &Mapping{path: path}, nil
	}
	if int64(int(fi.Size())) != fi.Size() {
		return nil, fmt.Errorf("mmap %s: %d bytes exceed the address space", path, fi.Size())
	}

	data, unmap, err := mapFile(f, int(fi.Size()))
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return &Mapping{path: path, data: data, unmap: unmap}, nil
}

// Close releases the mapping. Calls after the first return nil.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) || m.unmap == nil {
		return nil
	}
	if err := m.unmap(); err != nil {
		return fmt.Errorf("mmap %s: %w", m.path, err)
	}
	return nil
}

// Bytes returns the mapped blob, or nil once the mapping is closed.
// The slice must not be used after Close.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the blob size in bytes.
func (m *Mapping) Size() int {
	return len(m.data)
}

// ReadAt implements io.ReaderAt over the blob.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, fmt.Errorf("%w: offset %d", ErrOutOfBounds, off)
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
