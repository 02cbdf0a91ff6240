package breaker

import (
	"context"
	"sort"
	"sync"
)

// Capability 可按名字注册和远程调用的操作
// 每个能力近似零参数，结果通过 any 返回
type Capability func(ctx context.Context) (any, error)

// 能力名称
const (
	CapCanProceed    = "canProceed"
	CapRecordSuccess = "recordSuccess"
	CapRecordFailure = "recordFailure"
	CapGetState      = "getCircuitState"
	CapReset         = "resetCircuit"
	CapGetStats      = "getStats"
	CapSerialize     = "serialize"
)

// Capabilities 返回熔断器的具名能力表
// 供上层编排框架按名字注册和调用，核心内部不做动态分发
func Capabilities(b Breaker) map[string]Capability {
	return map[string]Capability{
		CapCanProceed: func(ctx context.Context) (any, error) {
			return b.CanProceed(ctx)
		},
		CapRecordSuccess: func(ctx context.Context) (any, error) {
			return nil, b.RecordSuccess(ctx)
		},
		CapRecordFailure: func(ctx context.Context) (any, error) {
			return nil, b.RecordFailure(ctx)
		},
		CapGetState: func(ctx context.Context) (any, error) {
			return b.State(ctx)
		},
		CapReset: func(ctx context.Context) (any, error) {
			return nil, b.Reset(ctx)
		},
		CapGetStats: func(ctx context.Context) (any, error) {
			return b.Stats(ctx)
		},
		CapSerialize: func(ctx context.Context) (any, error) {
			return b.Serialize(ctx)
		},
	}
}

// Registry 显式的能力注册表
// 名字到能力的分发表，由组合方显式注册
type Registry struct {
	mu   sync.RWMutex
	caps map[string]Capability
}

// NewRegistry 创建能力注册表
func NewRegistry() *Registry {
	return &Registry{
		caps: make(map[string]Capability),
	}
}

// Register 按名字注册能力
// 重名注册返回 ErrCapabilityRegistered
func (r *Registry) Register(name string, cap Capability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.caps[name]; ok {
		return ErrCapabilityRegistered
	}
	r.caps[name] = cap
	return nil
}

// RegisterBreaker 注册熔断器的全部能力
func (r *Registry) RegisterBreaker(b Breaker) error {
	for name, cap := range Capabilities(b) {
		if err := r.Register(name, cap); err != nil {
			return err
		}
	}
	return nil
}

// Invoke 按名字调用能力
// 未注册的名字返回 ErrCapabilityNotFound
func (r *Registry) Invoke(ctx context.Context, name string) (any, error) {
	r.mu.RLock()
	cap, ok := r.caps[name]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrCapabilityNotFound
	}
	return cap(ctx)
}

// Names 返回已注册的能力名（排序后）
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.caps))
	for name := range r.caps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
