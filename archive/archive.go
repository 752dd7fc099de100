package archive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hupe1980/vecmath"
	"github.com/hupe1980/vecmath/blobstore"
	"github.com/hupe1980/vecmath/codec"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Suffix is appended to vector names to form blob names.
const Suffix = ".vec"

// ErrInvalidName is returned for empty names.
var ErrInvalidName = errors.New("archive: invalid name")

// Info describes a stored vector without decoding it.
type Info struct {
	Name   string
	Codec  string
	Kind   vecmath.Kind
	Length int64
	// Size is the blob size in bytes, header included.
	Size int64
}

// Archive stores named vectors in a BlobStore.
//
// Each vector is encoded with the configured codec and wrapped in a frame
// that records the codec, kind, length and a CRC32C of the payload. Decoded
// vectors are kept in an LRU cache; callers always receive their own copy.
//
// Archive is safe for concurrent use.
type Archive struct {
	store   blobstore.BlobStore
	codec   codec.Codec
	cache   *lru.Cache[string, vecmath.Vector]
	limiter *rate.Limiter
	opts    options
	logger  *vecmath.Logger
	metrics vecmath.MetricsCollector
}

// New creates an Archive over store.
func New(store blobstore.BlobStore, optFns ...Option) (*Archive, error) {
	if store == nil {
		return nil, errors.New("archive: nil store")
	}

	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	a := &Archive{
		store:   store,
		codec:   o.codec,
		opts:    o,
		logger:  o.logger.WithCodec(o.codec.Name()),
		metrics: o.metricsCollector,
	}

	if o.cacheSize > 0 {
		c, err := lru.New[string, vecmath.Vector](o.cacheSize)
		if err != nil {
			return nil, err
		}
		a.cache = c
	}

	if o.readBytesPerSec > 0 {
		burst := o.readBurst
		if burst <= 0 {
			burst = int(o.readBytesPerSec)
		}
		a.limiter = rate.NewLimiter(rate.Limit(o.readBytesPerSec), max(burst, 1))
	}

	return a, nil
}

// Codec returns the codec used for new blobs.
func (a *Archive) Codec() codec.Codec {
	return a.codec
}

func blobName(name string) (string, error) {
	if name == "" || strings.HasSuffix(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name + Suffix, nil
}

func vectorLength(v vecmath.Vector) int64 {
	if lv, ok := v.(vecmath.LargeVector); ok {
		return lv.LargeLength()
	}
	return int64(v.Length())
}

// Put encodes v and stores it under name, replacing any previous vector.
func (a *Archive) Put(ctx context.Context, name string, v vecmath.Vector) (err error) {
	if v == nil {
		return errors.New("archive: nil vector")
	}

	start := time.Now()
	size := 0
	defer func() {
		a.metrics.RecordPut(size, time.Since(start), err)
		a.logger.LogPut(ctx, name, v.Kind(), size, err)
	}()

	bn, err := blobName(name)
	if err != nil {
		return err
	}

	payload, err := a.codec.Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	frame, err := encodeFrame(frameHeader{
		kind:   v.Kind(),
		codec:  a.codec.Name(),
		length: vectorLength(v),
	}, payload)
	if err != nil {
		return err
	}

	if err := a.store.Put(ctx, bn, frame); err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	size = len(frame)

	if a.cache != nil {
		a.cache.Add(name, v.Clone())
	}
	return nil
}

// Get loads the vector stored under name.
// Missing vectors satisfy errors.Is(err, blobstore.ErrNotFound).
func (a *Archive) Get(ctx context.Context, name string) (vecmath.Vector, error) {
	if a.cache != nil {
		if v, ok := a.cache.Get(name); ok {
			a.metrics.RecordCacheHit()
			a.logger.LogGet(ctx, name, true, nil)
			return v.Clone(), nil
		}
	}

	start := time.Now()
	v, size, err := a.load(ctx, name)
	a.metrics.RecordGet(size, time.Since(start), err)
	a.logger.LogGet(ctx, name, false, err)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		a.cache.Add(name, v.Clone())
	}
	return v, nil
}

func (a *Archive) load(ctx context.Context, name string) (vecmath.Vector, int, error) {
	bn, err := blobName(name)
	if err != nil {
		return nil, 0, err
	}

	data, err := a.read(ctx, bn)
	if err != nil {
		return nil, 0, fmt.Errorf("get %s: %w", name, err)
	}

	h, payload, err := decodeFrame(data)
	if err != nil {
		return nil, len(data), fmt.Errorf("get %s: %w", name, err)
	}

	c, err := a.decoder(h.codec)
	if err != nil {
		return nil, len(data), fmt.Errorf("get %s: %w", name, err)
	}

	v, err := c.Decode(payload)
	if err != nil {
		return nil, len(data), fmt.Errorf("get %s: %w", name, err)
	}
	if v.Kind() != h.kind || vectorLength(v) != h.length {
		return nil, len(data), fmt.Errorf("get %s: %w: header says %s of length %d, payload is %s of length %d",
			name, ErrCorruptFrame, h.kind, h.length, v.Kind(), vectorLength(v))
	}
	return v, len(data), nil
}

func (a *Archive) decoder(name string) (codec.Codec, error) {
	if name == a.codec.Name() {
		return a.codec, nil
	}
	if c, ok := codec.ByName(name); ok {
		return c, nil
	}
	return nil, fmt.Errorf("archive: unknown codec %q", name)
}

// read returns the whole blob, honoring the read limiter.
func (a *Archive) read(ctx context.Context, bn string) ([]byte, error) {
	blob, err := a.store.Open(ctx, bn)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	if a.limiter == nil {
		return blobstore.ReadAll(ctx, blob)
	}

	data := make([]byte, blob.Size())
	burst := int64(a.limiter.Burst())
	for off := int64(0); off < int64(len(data)); {
		chunk := min(burst, int64(len(data))-off)
		if err := a.limiter.WaitN(ctx, int(chunk)); err != nil {
			return nil, err
		}
		n, err := blob.ReadAt(ctx, data[off:off+chunk], off)
		off += int64(n)
		if err != nil && (int64(n) != chunk || off != int64(len(data))) {
			return nil, err
		}
	}
	return data, nil
}

// GetMany loads several vectors in parallel. The result has one entry per
// name; entries whose load failed are nil and their errors are joined.
func (a *Archive) GetMany(ctx context.Context, names []string) ([]vecmath.Vector, error) {
	start := time.Now()
	out := make([]vecmath.Vector, len(names))
	errs := make([]error, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.concurrency)

	for i, name := range names {
		g.Go(func() error {
			out[i], errs[i] = a.Get(gctx, name)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}

	a.metrics.RecordBatchGet(len(names), failed, time.Since(start))
	a.logger.LogBatchGet(ctx, len(names), failed)

	return out, errors.Join(errs...)
}

// Stat reads the frame header of name without decoding the payload.
func (a *Archive) Stat(ctx context.Context, name string) (Info, error) {
	bn, err := blobName(name)
	if err != nil {
		return Info{}, err
	}

	blob, err := a.store.Open(ctx, bn)
	if err != nil {
		return Info{}, fmt.Errorf("stat %s: %w", name, err)
	}
	defer blob.Close()

	buf := make([]byte, min(int64(maxHeaderLen), blob.Size()))
	n, err := blob.ReadAt(ctx, buf, 0)
	if err != nil && n != len(buf) {
		return Info{}, fmt.Errorf("stat %s: %w", name, err)
	}

	h, _, err := decodeHeader(buf[:n])
	if err != nil {
		return Info{}, fmt.Errorf("stat %s: %w", name, err)
	}

	return Info{
		Name:   name,
		Codec:  h.codec,
		Kind:   h.kind,
		Length: h.length,
		Size:   blob.Size(),
	}, nil
}

// List returns the sorted names of stored vectors starting with prefix.
func (a *Archive) List(ctx context.Context, prefix string) ([]string, error) {
	blobs, err := a.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}

	names := make([]string, 0, len(blobs))
	for _, b := range blobs {
		if name, ok := strings.CutSuffix(b, Suffix); ok && name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Delete removes the vector stored under name. Missing names are not an error.
func (a *Archive) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() {
		a.metrics.RecordDelete(time.Since(start), err)
		a.logger.LogDelete(ctx, name, err)
	}()

	bn, err := blobName(name)
	if err != nil {
		return err
	}

	if a.cache != nil {
		a.cache.Remove(name)
	}
	if err := a.store.Delete(ctx, bn); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// Purge drops all cached vectors.
func (a *Archive) Purge() {
	if a.cache != nil {
		a.cache.Purge()
	}
}

// CacheLen returns the number of cached vectors.
func (a *Archive) CacheLen() int {
	if a.cache == nil {
		return 0
	}
	return a.cache.Len()
}
