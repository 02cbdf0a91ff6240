package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ceyewan/fuse/connector"
	"github.com/ceyewan/fuse/xerrors"
)

// redisStore Redis 存储实现（非导出）
type redisStore struct {
	client connector.RedisConnector
	ttl    time.Duration
}

// RedisOption Redis 存储的配置选项
type RedisOption func(*redisStore)

// WithTTL 设置写入键的过期时间
//
// 默认 0，即键不过期。
func WithTTL(ttl time.Duration) RedisOption {
	return func(rs *redisStore) {
		if ttl > 0 {
			rs.ttl = ttl
		}
	}
}

// NewRedis 创建 Redis 存储实例
//
// 借用外部传入的 RedisConnector，不负责其生命周期。
func NewRedis(redisConn connector.RedisConnector, opts ...RedisOption) Store {
	rs := &redisStore{
		client: redisConn,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Get 读取键对应的值
func (rs *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := rs.client.GetClient().Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to get key")
	}

	return result, nil
}

// Set 写入键值，覆盖已有值
func (rs *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := rs.client.GetClient().Set(ctx, key, value, rs.ttl).Err(); err != nil {
		return xerrors.Wrap(err, "failed to set key")
	}

	return nil
}
