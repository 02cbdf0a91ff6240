package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewNilConfig 测试 nil 配置
func TestNewNilConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

// TestNewDisabled 测试禁用时返回 noop Meter
func TestNewDisabled(t *testing.T) {
	meter, err := New(&Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, meter)

	ctx := context.Background()
	counter, err := meter.Counter("test_total", "test counter")
	require.NoError(t, err)
	counter.Inc(ctx)
	counter.Add(ctx, 5, L("k", "v"))

	require.NoError(t, meter.Shutdown(ctx))
}

// TestNewEnabled 测试启用时创建各类指标
func TestNewEnabled(t *testing.T) {
	meter, err := New(&Config{
		Enabled:     true,
		ServiceName: "test-service",
		Version:     "v0.0.1",
	})
	require.NoError(t, err)
	defer meter.Shutdown(context.Background())

	ctx := context.Background()

	counter, err := meter.Counter("fuse_test_requests_total", "total requests")
	require.NoError(t, err)
	counter.Inc(ctx, L("state", "closed"))
	counter.Add(ctx, 2, L("state", "open"))

	gauge, err := meter.Gauge("fuse_test_open_breakers", "open breakers")
	require.NoError(t, err)
	gauge.Set(ctx, 3)
	gauge.Inc(ctx)
	gauge.Dec(ctx)

	histogram, err := meter.Histogram("fuse_test_duration_seconds", "duration", WithUnit("seconds"))
	require.NoError(t, err)
	histogram.Record(ctx, 0.123, L("operation", "canProceed"))
}

// TestDiscard 测试静默 Meter
func TestDiscard(t *testing.T) {
	meter := Discard()
	counter, err := meter.Counter("ignored", "ignored")
	require.NoError(t, err)
	counter.Inc(context.Background())
	assert.NoError(t, meter.Shutdown(context.Background()))
}

// TestLabelKey 测试标签键生成
func TestLabelKey(t *testing.T) {
	assert.Equal(t, "", labelKey(nil))
	assert.Equal(t, "a=1", labelKey([]Label{L("a", "1")}))
	assert.Equal(t, "a=1|b=2", labelKey([]Label{L("a", "1"), L("b", "2")}))
}
