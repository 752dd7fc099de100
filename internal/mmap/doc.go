// Package mmap provides read-only memory-mapped file access.
//
// LocalStore uses it to serve archived vector blobs without copying them
// through kernel buffers:
//
//	m, err := mmap.Open("vectors/a.vec")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	header, _ := m.Region(0, 32)
//	_ = header.Advise(mmap.AccessWillNeed)
//
// Unix builds use mmap(2) and madvise(2). Windows builds use
// CreateFileMapping/MapViewOfFile and treat Advise as a no-op.
//
// Mapping and Region are safe for concurrent readers. Close is idempotent,
// but slices returned by Bytes must not be used after it returns.
package mmap
