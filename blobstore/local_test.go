package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	ctx := context.Background()

	// 1. Create a blob
	blobName := "embeddings/a.vec"
	data := []byte("vector type=int length=4 sparse=false\n1 2 3 4\n")

	w, err := store.Create(ctx, blobName)
	require.NoError(t, err)

	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	// Not visible until Close
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, names)

	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(tmpDir, "embeddings", "a.vec"))
	require.NoError(t, err)

	// 2. Open and ReadAt
	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 3)
	n, err = blob.ReadAt(ctx, buf, 7)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "typ", string(buf))

	// 3. ReadRange
	rangeReader, err := blob.ReadRange(ctx, 12, 3)
	require.NoError(t, err)
	rangeContent, err := io.ReadAll(rangeReader)
	require.NoError(t, err)
	require.NoError(t, rangeReader.Close())
	require.Equal(t, "int", string(rangeContent))

	// 4. Mappable
	mapped, ok := blob.(Mappable)
	require.True(t, ok)
	raw, err := mapped.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, raw)

	// 5. List
	require.NoError(t, store.Put(ctx, "embeddings/b.vec", []byte("x")))
	require.NoError(t, store.Put(ctx, "other.vec", []byte("y")))

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"embeddings/a.vec", "embeddings/b.vec", "other.vec"}, names)

	names, err = store.List(ctx, "embeddings/")
	require.NoError(t, err)
	require.Equal(t, []string{"embeddings/a.vec", "embeddings/b.vec"}, names)

	// 6. Delete
	require.NoError(t, store.Delete(ctx, "embeddings/b.vec"))
	require.NoError(t, store.Delete(ctx, "embeddings/b.vec"))

	names, err = store.List(ctx, "embeddings/")
	require.NoError(t, err)
	require.Equal(t, []string{"embeddings/a.vec"}, names)

	_, err = store.Open(ctx, "embeddings/b.vec")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_PutReplaces(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a.vec", []byte("first")))
	require.NoError(t, store.Put(ctx, "a.vec", []byte("second")))

	blob, err := store.Open(ctx, "a.vec")
	require.NoError(t, err)
	defer blob.Close()

	data, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocalBlobStore_EmptyBlob(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "empty.vec", nil))

	blob, err := store.Open(ctx, "empty.vec")
	require.NoError(t, err)
	defer blob.Close()

	assert.Zero(t, blob.Size())
	data, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestLocalBlobStore_InvalidNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "../escape.vec", "/abs.vec", "a/../../b"} {
		assert.Error(t, store.Put(ctx, name, []byte("x")), name)
	}
}

func TestLocalBlobStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalBlobStore_ReadRange_Boundaries(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	blobName := "boundary.bin"
	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, blobName, data))

	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	defer blob.Close()

	// Case 1: Read full range
	r, err := blob.ReadRange(ctx, 0, 10)
	require.NoError(t, err)
	content, _ := io.ReadAll(r)
	r.Close()
	require.Equal(t, data, content)

	// Case 2: Read past end
	r, err = blob.ReadRange(ctx, 8, 5)
	require.NoError(t, err)
	content, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "89", string(content))
	r.Close()

	// Case 3: Offset past EOF
	r, err = blob.ReadRange(ctx, 20, 5)
	require.ErrorIs(t, err, io.EOF)
	if r != nil {
		r.Close()
	}
}
