package vecmath

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	logger.WithCodec("zstd").LogPut(ctx, "embeddings/a", KindFloat, 128, nil)
	assert.Contains(t, buf.String(), "put completed")
	assert.Contains(t, buf.String(), "codec=zstd")
	assert.Contains(t, buf.String(), "kind=float")
	assert.Contains(t, buf.String(), "bytes=128")

	buf.Reset()
	logger.LogGet(ctx, "embeddings/a", true, nil)
	assert.Contains(t, buf.String(), "cached=true")

	buf.Reset()
	logger.LogDelete(ctx, "embeddings/a", errors.New("boom"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "boom")

	buf.Reset()
	logger.LogBatchGet(ctx, 5, 2)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "success=3")

	buf.Reset()
	logger.WithName("x").WithKind(KindPackedInt).Info("hello")
	assert.Contains(t, buf.String(), "name=x")
	assert.Contains(t, buf.String(), "kind=packed-int")
}

func TestNoopLogger(t *testing.T) {
	require.NotPanics(t, func() {
		NoopLogger().LogPut(context.Background(), "a", KindInt, 1, errors.New("ignored"))
	})
}

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	m.RecordPut(100, 2*time.Millisecond, nil)
	m.RecordPut(0, 4*time.Millisecond, errors.New("fail"))
	m.RecordGet(50, time.Millisecond, nil)
	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordBatchGet(10, 1, time.Millisecond)
	m.RecordDelete(time.Millisecond, nil)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.PutCount)
	assert.Equal(t, int64(1), stats.PutErrors)
	assert.Equal(t, int64(100), stats.PutBytes)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.PutAvgNanos)
	assert.Equal(t, int64(1), stats.GetCount)
	assert.Equal(t, int64(50), stats.GetBytes)
	assert.Equal(t, int64(2), stats.CacheHits)
	assert.Equal(t, int64(10), stats.BatchGetItems)
	assert.Equal(t, int64(1), stats.BatchGetFailed)
	assert.Equal(t, int64(1), stats.DeleteCount)
	assert.Zero(t, stats.DeleteErrors)

	var _ MetricsCollector = NoopMetricsCollector{}
}
