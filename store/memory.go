package store

import (
	"context"
	"sync"
)

// memoryStore 内存存储实现（非导出，仅用于单机）
type memoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory 创建内存存储实例
//
// 数据随进程销毁，适合单机场景和测试。
func NewMemory() Store {
	return &memoryStore{
		values: make(map[string][]byte),
	}
}

func (ms *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	val, ok := ms.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return append([]byte(nil), val...), nil
}

func (ms *memoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valCopy := append([]byte(nil), value...)

	ms.mu.Lock()
	ms.values[key] = valCopy
	ms.mu.Unlock()

	return nil
}
