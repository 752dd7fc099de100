package s3

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/vecmath"
	"github.com/hupe1980/vecmath/archive"
	"github.com/hupe1980/vecmath/blobstore"
	"github.com/hupe1980/vecmath/codec"
	"github.com/hupe1980/vecmath/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_ArchiveOnS3 stores vector frames in a real bucket named by S3_BUCKET.
func TestIntegration_ArchiveOnS3(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("S3_BUCKET not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("vecmath-it-%d", time.Now().UnixNano())
	store, err := New(ctx, bucket, WithPrefix(prefix))
	require.NoError(t, err)

	cached, err := blobstore.NewCachingStore(store, 64, 1024)
	require.NoError(t, err)

	arc, err := archive.New(cached, archive.WithCodec(codec.Zstd{}), archive.WithCacheSize(0))
	require.NoError(t, err)

	rng := testutil.NewRNG(11)
	dense := vecmath.IntVectorFrom(rng.Ints(50_000, 1000))
	bits, err := vecmath.NewSparseBitVector(rng.SparseIndices(4096, 0.05))
	require.NoError(t, err)

	t.Cleanup(func() {
		names, _ := store.List(context.Background(), "")
		for _, name := range names {
			_ = store.Delete(context.Background(), name)
		}
	})

	require.NoError(t, arc.Put(ctx, "emb/dense", dense))
	require.NoError(t, arc.Put(ctx, "emb/bits", bits))

	t.Run("frame on the wire", func(t *testing.T) {
		blob, err := store.Open(ctx, "emb/dense"+archive.Suffix)
		require.NoError(t, err)
		defer blob.Close()

		magic := make([]byte, 4)
		_, err = blob.ReadAt(ctx, magic, 0)
		require.NoError(t, err)
		assert.Equal(t, "VMAR", string(magic))
	})

	t.Run("stat reads the header", func(t *testing.T) {
		info, err := arc.Stat(ctx, "emb/dense")
		require.NoError(t, err)
		assert.Equal(t, vecmath.KindInt, info.Kind)
		assert.Equal(t, int64(50_000), info.Length)
		assert.Equal(t, "zstd", info.Codec)
	})

	t.Run("get through the block cache", func(t *testing.T) {
		vs, err := arc.GetMany(ctx, []string{"emb/dense", "emb/bits"})
		require.NoError(t, err)
		assert.True(t, dense.Equals(vs[0]))
		assert.True(t, bits.Equals(vs[1]))
		assert.Positive(t, cached.Len())
	})

	t.Run("list and delete", func(t *testing.T) {
		names, err := arc.List(ctx, "emb/")
		require.NoError(t, err)
		assert.Equal(t, []string{"emb/bits", "emb/dense"}, names)

		require.NoError(t, arc.Delete(ctx, "emb/bits"))
		_, err = arc.Get(ctx, "emb/bits")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
