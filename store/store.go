// Package store 为 fuse 组件提供通用的键值存储抽象。
//
// 组件（如 breaker）通过 Store 接口持久化自身字段，
// 不感知底层是内存还是 Redis 等外部后端，
// 从而可以在单机与外部持久化之间自由切换。
//
// 默认提供 Memory / Redis 实现。
package store

import (
	"context"

	"github.com/ceyewan/fuse/xerrors"
)

// ErrKeyNotFound 键不存在
var ErrKeyNotFound = xerrors.New("store: key not found")

// Store 键值存储接口
//
// 语义为 get(key) -> value | absent 与 set(key, value)：
//   - Get 对不存在的键返回 ErrKeyNotFound，调用方负责回退到默认值
//   - Set 无条件覆盖旧值
//
// 实现必须是并发安全的。单个 Get/Set 是原子的，
// 但跨 Get/Set 的读-改-写序列需要调用方自行加锁。
type Store interface {
	// Get 读取键对应的值
	// 键不存在时返回 ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入键值，覆盖已有值
	Set(ctx context.Context, key string, value []byte) error
}
