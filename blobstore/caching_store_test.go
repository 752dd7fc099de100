package blobstore

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBlob struct {
	data      []byte
	reads     atomic.Int64
	readBytes atomic.Int64
}

func (m *mockBlob) Close() error { return nil }
func (m *mockBlob) Size() int64  { return int64(len(m.data)) }
func (m *mockBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	m.reads.Add(1)
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	m.readBytes.Add(int64(n))
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
func (m *mockBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data[off : off+length])), nil
}

type mockStore struct {
	blobs map[string]*mockBlob
}

func (m *mockStore) Open(_ context.Context, name string) (Blob, error) {
	if b, ok := m.blobs[name]; ok {
		return b, nil
	}
	return nil, ErrNotFound
}
func (m *mockStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	return &memoryWritableBlob{store: NewMemoryStore(), name: name}, nil
}
func (m *mockStore) Put(_ context.Context, name string, data []byte) error {
	if m.blobs == nil {
		m.blobs = make(map[string]*mockBlob)
	}
	m.blobs[name] = &mockBlob{data: data}
	return nil
}
func (m *mockStore) Delete(_ context.Context, name string) error {
	delete(m.blobs, name)
	return nil
}
func (m *mockStore) List(context.Context, string) ([]string, error) { return nil, nil }

func newTestCachingStore(t *testing.T, inner BlobStore, capacity int, blockSize int64) *CachingStore {
	t.Helper()
	s, err := NewCachingStore(inner, capacity, blockSize)
	require.NoError(t, err)
	return s
}

func TestCachingStore_ReadAt(t *testing.T) {
	data := make([]byte, 1024)
	for i := range data {
		data[i] = byte(i % 255)
	}

	inner := &mockStore{
		blobs: map[string]*mockBlob{
			"test": {data: data},
		},
	}
	store := newTestCachingStore(t, inner, 64, 256)
	ctx := context.Background()

	blob, err := store.Open(ctx, "test")
	require.NoError(t, err)

	// 1. Read first block (bytes 0-100)
	buf := make([]byte, 100)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[:100], buf)

	mBlob := inner.blobs["test"]
	assert.Equal(t, int64(1), mBlob.reads.Load())
	assert.Equal(t, int64(256), mBlob.readBytes.Load())

	// 2. Same range again hits the cache
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mBlob.reads.Load())

	// 3. Spanning blocks 0 and 1, only block 1 is fetched
	buf2 := make([]byte, 100)
	n, err = blob.ReadAt(ctx, buf2, 200)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[200:300], buf2)
	assert.Equal(t, int64(2), mBlob.reads.Load())
	assert.Equal(t, int64(512), mBlob.readBytes.Load())

	// 4. Block 1 again is a cache hit
	_, err = blob.ReadAt(ctx, buf2, 260)
	require.NoError(t, err)
	assert.Equal(t, int64(2), mBlob.reads.Load())
	assert.Equal(t, 2, store.Len())
}

func TestCachingStore_SmallFile(t *testing.T) {
	data := []byte("hello")
	inner := &mockStore{
		blobs: map[string]*mockBlob{
			"small": {data: data},
		},
	}
	store := newTestCachingStore(t, inner, 4, 256)
	ctx := context.Background()

	blob, err := store.Open(ctx, "small")
	require.NoError(t, err)

	buf := make([]byte, 10)
	n, err := blob.ReadAt(ctx, buf, 0)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 5, n)
	assert.Equal(t, data, buf[:n])

	_, err = blob.ReadAt(ctx, buf, 5)
	assert.ErrorIs(t, err, io.EOF)
}

func TestCachingStore_Coalescing(t *testing.T) {
	data := make([]byte, 16*1024)
	inner := &mockStore{blobs: map[string]*mockBlob{"big": {data: data}}}
	store := newTestCachingStore(t, inner, 64, 1024)
	ctx := context.Background()

	blob, err := store.Open(ctx, "big")
	require.NoError(t, err)

	buf := make([]byte, 10*1024)
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inner.blobs["big"].reads.Load())

	// Block 3 evicted from the middle of a run of cached blocks.
	store.cache.Remove(blockKey{"big", 3})
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inner.blobs["big"].reads.Load())
	assert.Equal(t, int64(11*1024), inner.blobs["big"].readBytes.Load())
}

func TestCachingStore_Eviction(t *testing.T) {
	data := bytes.Repeat([]byte("abcd"), 256)
	inner := &mockStore{blobs: map[string]*mockBlob{"a": {data: data}}}
	store := newTestCachingStore(t, inner, 2, 128)
	ctx := context.Background()

	blob, err := store.Open(ctx, "a")
	require.NoError(t, err)

	got, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.LessOrEqual(t, store.Len(), 2)
}

func TestCachingStore_PutInvalidates(t *testing.T) {
	inner := NewMemoryStore()
	store := newTestCachingStore(t, inner, 16, 4)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "v", []byte("old-data")))
	blob, err := store.Open(ctx, "v")
	require.NoError(t, err)
	got, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, "old-data", string(got))
	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.Put(ctx, "v", []byte("new-data")))
	assert.Zero(t, store.Len())

	blob, err = store.Open(ctx, "v")
	require.NoError(t, err)
	got, err = ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, "new-data", string(got))

	w, err := store.Create(ctx, "v")
	require.NoError(t, err)
	_, err = w.Write([]byte("streamed"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Zero(t, store.Len())

	require.NoError(t, store.Delete(ctx, "v"))
	_, err = store.Open(ctx, "v")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachingStore_ReadRange(t *testing.T) {
	inner := NewMemoryStore()
	store := newTestCachingStore(t, inner, 16, 3)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "r", []byte("0123456789")))
	blob, err := store.Open(ctx, "r")
	require.NoError(t, err)

	rc, err := blob.ReadRange(ctx, 2, 5)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "23456", string(got))

	rc, err = blob.ReadRange(ctx, 8, 10)
	require.NoError(t, err)
	got, err = io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "89", string(got))

	_, err = blob.ReadRange(ctx, 10, 1)
	assert.ErrorIs(t, err, io.EOF)
}

func TestCachingStore_CanceledContext(t *testing.T) {
	inner := NewMemoryStore()
	store := newTestCachingStore(t, inner, 16, 4)

	require.NoError(t, inner.Put(context.Background(), "c", []byte("abc")))
	blob, err := store.Open(context.Background(), "c")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = blob.ReadAt(ctx, make([]byte, 2), 0)
	assert.ErrorIs(t, err, context.Canceled)
}
