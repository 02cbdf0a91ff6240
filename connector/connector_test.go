package connector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRedisConfigDefaults 测试配置默认值填充
func TestRedisConfigDefaults(t *testing.T) {
	cfg := &RedisConfig{Addr: "localhost:6379"}
	require.NoError(t, cfg.validate())

	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, 10, cfg.PoolSize)
	assert.Equal(t, 5*time.Second, cfg.DialTimeout)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
}

// TestRedisConfigInvalid 测试非法配置
func TestRedisConfigInvalid(t *testing.T) {
	assert.Error(t, (&RedisConfig{}).validate(), "empty addr should fail")
	assert.Error(t, (&RedisConfig{Addr: "localhost:6379", DB: -1}).validate(), "negative db should fail")
}

// TestNewRedis 测试连接器创建（不建立连接）
func TestNewRedis(t *testing.T) {
	conn, err := NewRedis(&RedisConfig{Name: "test", Addr: "localhost:6379"})
	require.NoError(t, err)
	require.NotNil(t, conn)

	assert.Equal(t, "test", conn.Name())
	assert.False(t, conn.IsHealthy(), "connector should not be healthy before Connect")
	assert.NotNil(t, conn.GetClient())

	require.NoError(t, conn.Close())
	assert.Nil(t, conn.GetClient(), "client should be nil after Close")
	require.NoError(t, conn.Close(), "Close should be idempotent")
}

// TestNewRedisNilConfig 测试 nil 配置
func TestNewRedisNilConfig(t *testing.T) {
	_, err := NewRedis(nil)
	require.Error(t, err)
}
