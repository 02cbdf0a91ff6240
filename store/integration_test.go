//go:build integration

// 运行测试需要: go test ./store/... -tags=integration -v
package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/fuse/store"
	"github.com/ceyewan/fuse/testkit"
)

// TestRedisStoreIntegration 测试 Redis 存储的读写语义
func TestRedisStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	conn := testkit.NewRedisContainerConnector(t)
	rs := store.NewRedis(conn)
	ctx := context.Background()

	key := "fuse:test:" + testkit.NewID()

	_, err := rs.Get(ctx, key)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)

	require.NoError(t, rs.Set(ctx, key, []byte(`{"state":"closed"}`)))

	val, err := rs.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"state":"closed"}`), val)

	// 覆盖写
	require.NoError(t, rs.Set(ctx, key, []byte(`{"state":"open"}`)))
	val, err = rs.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"state":"open"}`), val)
}

// TestRedisStoreTTL 测试 TTL 过期后键缺失
func TestRedisStoreTTL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	conn := testkit.NewRedisContainerConnector(t)
	rs := store.NewRedis(conn, store.WithTTL(time.Second))
	ctx := context.Background()

	key := "fuse:test:ttl:" + testkit.NewID()
	require.NoError(t, rs.Set(ctx, key, []byte("v")))

	val, err := rs.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	time.Sleep(1500 * time.Millisecond)

	_, err = rs.Get(ctx, key)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}
