package mmap

// AccessPattern is a paging hint for a mapped range.
type AccessPattern int

const (
	AccessNormal AccessPattern = iota
	// AccessSequential suits whole-blob decoding front to back.
	AccessSequential
	// AccessWillNeed prefetches a range that is about to be streamed.
	AccessWillNeed
)

// Advise hints how the whole blob will be read.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return advise(m.data, pattern)
}

// Advise hints how the region will be read.
func (r *Region) Advise(pattern AccessPattern) error {
	data := r.Bytes()
	if data == nil && r.size > 0 {
		return ErrClosed
	}
	return advise(data, pattern)
}
