package blobstore

import (
	"context"
	"errors"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultBlockSize is the block size used when NewCachingStore gets a
// non-positive value.
const DefaultBlockSize = 4096

// maxFillConcurrency bounds parallel backend reads for one ReadAt.
const maxFillConcurrency = 16

type blockKey struct {
	name  string
	block int64
}

// CachingStore wraps a BlobStore and adds block-level read caching.
//
// Reads are split into fixed-size blocks held in an LRU cache shared by all
// blobs of the store. Contiguous runs of missing blocks are fetched with one
// backend request each. Put and Delete drop the cached blocks of the name.
type CachingStore struct {
	inner     BlobStore
	cache     *lru.Cache[blockKey, []byte]
	blockSize int64
}

// NewCachingStore creates a new CachingStore holding at most capacity blocks.
// blockSize defaults to DefaultBlockSize if <= 0.
func NewCachingStore(inner BlobStore, capacity int, blockSize int64) (*CachingStore, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	c, err := lru.New[blockKey, []byte](capacity)
	if err != nil {
		return nil, err
	}
	return &CachingStore{
		inner:     inner,
		cache:     c,
		blockSize: blockSize,
	}, nil
}

// Open opens a blob whose reads go through the block cache.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &CachingBlob{
		inner:     b,
		cache:     s.cache,
		name:      name,
		blockSize: s.blockSize,
	}, nil
}

// Create starts a streaming write. Cached blocks of the name are dropped on Close.
func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &invalidatingWriter{WritableBlob: w, store: s, name: name}, nil
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	defer s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	defer s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Len returns the number of cached blocks.
func (s *CachingStore) Len() int {
	return s.cache.Len()
}

func (s *CachingStore) invalidate(name string) {
	for _, key := range s.cache.Keys() {
		if key.name == name {
			s.cache.Remove(key)
		}
	}
}

type invalidatingWriter struct {
	WritableBlob
	store *CachingStore
	name  string
}

func (w *invalidatingWriter) Close() error {
	defer w.store.invalidate(w.name)
	return w.WritableBlob.Close()
}

// CachingBlob wraps a Blob and uses the block cache for reads.
type CachingBlob struct {
	inner     Blob
	cache     *lru.Cache[blockKey, []byte]
	name      string
	blockSize int64
}

func (b *CachingBlob) Close() error {
	return b.inner.Close()
}

func (b *CachingBlob) Size() int64 {
	return b.inner.Size()
}

func (b *CachingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if off < 0 {
		return 0, errors.New("blobstore: negative offset")
	}

	size := b.Size()
	if off >= size {
		return 0, io.EOF
	}

	want := p
	if int64(len(want)) > size-off {
		want = want[:size-off]
	}

	startBlock := off / b.blockSize
	endBlock := (off + int64(len(want)) - 1) / b.blockSize

	if err := b.fillCache(ctx, startBlock, endBlock); err != nil {
		return 0, err
	}

	total := 0
	for blk := startBlock; blk <= endBlock; blk++ {
		blkStart := blk * b.blockSize

		// Intersection of [blkStart, blkStart+blockSize) and [off, off+len(want)).
		from := max(blkStart, off)
		to := min(blkStart+b.blockSize, off+int64(len(want)))

		data, err := b.fetchBlock(ctx, blk)
		if err != nil {
			return total, err
		}

		src := from - blkStart
		if src >= int64(len(data)) {
			break
		}
		total += copy(want[from-off:to-off], data[src:])
	}

	if total < len(p) {
		return total, io.EOF
	}
	return total, nil
}

// fillCache loads the blocks in [startBlock, endBlock] that are not cached.
// Each contiguous run of missing blocks is fetched with a single backend read.
func (b *CachingBlob) fillCache(ctx context.Context, startBlock, endBlock int64) error {
	type run struct{ start, count int64 }

	var missing []run
	for blk := startBlock; blk <= endBlock; blk++ {
		if b.cache.Contains(blockKey{b.name, blk}) {
			continue
		}
		if n := len(missing); n > 0 && missing[n-1].start+missing[n-1].count == blk {
			missing[n-1].count++
		} else {
			missing = append(missing, run{blk, 1})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFillConcurrency)

	for _, r := range missing {
		g.Go(func() error {
			byteStart := r.start * b.blockSize
			byteSize := min(r.count*b.blockSize, b.Size()-byteStart)
			if byteSize <= 0 {
				return nil
			}

			buf := make([]byte, byteSize)
			n, err := b.inner.ReadAt(gctx, buf, byteStart)
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			buf = buf[:n]

			for i := range r.count {
				lo := i * b.blockSize
				if lo >= int64(len(buf)) {
					break
				}
				hi := min(lo+b.blockSize, int64(len(buf)))
				// Copy so a single cached block does not pin the whole run.
				b.cache.Add(blockKey{b.name, r.start + i}, append([]byte(nil), buf[lo:hi]...))
			}
			return nil
		})
	}
	return g.Wait()
}

// fetchBlock returns a block from the cache, reading it from the backend if
// it was evicted between fillCache and the copy.
func (b *CachingBlob) fetchBlock(ctx context.Context, blk int64) ([]byte, error) {
	key := blockKey{b.name, blk}
	if data, ok := b.cache.Get(key); ok {
		return data, nil
	}

	buf := make([]byte, b.blockSize)
	n, err := b.inner.ReadAt(ctx, buf, blk*b.blockSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	data := buf[:n]
	if n > 0 {
		b.cache.Add(key, data)
	}
	return data, nil
}

func (b *CachingBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off >= b.Size() {
		return nil, io.EOF
	}
	return io.NopCloser(&contextSectionReader{blob: b, ctx: ctx, off: off, limit: min(off+length, b.Size())}), nil
}

// contextSectionReader adapts CachingBlob.ReadAt to io.Reader.
type contextSectionReader struct {
	blob  *CachingBlob
	ctx   context.Context
	off   int64
	limit int64
}

func (r *contextSectionReader) Read(p []byte) (n int, err error) {
	if r.off >= r.limit {
		return 0, io.EOF
	}
	if remaining := r.limit - r.off; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err = r.blob.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	if errors.Is(err, io.EOF) && n > 0 {
		err = nil
	}
	return
}
