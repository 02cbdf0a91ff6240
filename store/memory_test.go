package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryGetSet 测试基本读写
func TestMemoryGetSet(t *testing.T) {
	ms := NewMemory()
	ctx := context.Background()

	_, err := ms.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, ms.Set(ctx, "k", []byte("v1")))

	val, err := ms.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), val)

	// Set 覆盖旧值
	require.NoError(t, ms.Set(ctx, "k", []byte("v2")))
	val, err = ms.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), val)
}

// TestMemoryValueIsolation 测试值拷贝隔离
func TestMemoryValueIsolation(t *testing.T) {
	ms := NewMemory()
	ctx := context.Background()

	src := []byte("original")
	require.NoError(t, ms.Set(ctx, "k", src))

	// 修改调用方切片不应影响存储内容
	src[0] = 'X'
	val, err := ms.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), val)

	// 修改读取结果不应影响后续读取
	val[0] = 'Y'
	val2, err := ms.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), val2)
}

// TestMemoryContextCancelled 测试已取消的 Context
func TestMemoryContextCancelled(t *testing.T) {
	ms := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ms.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, ms.Set(ctx, "k", []byte("v")), context.Canceled)
}

// TestMemoryConcurrent 测试并发读写安全
func TestMemoryConcurrent(t *testing.T) {
	ms := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = ms.Set(ctx, "shared", []byte("value"))
				_, _ = ms.Get(ctx, "shared")
			}
		}()
	}
	wg.Wait()

	val, err := ms.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)
}
