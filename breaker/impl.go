package breaker

import (
	"context"
	"sync"
	"time"

	"github.com/ceyewan/fuse/clog"
	"github.com/ceyewan/fuse/metrics"
	"github.com/ceyewan/fuse/store"
	"github.com/ceyewan/fuse/store/serializer"
	"github.com/ceyewan/fuse/xerrors"
)

// record 持久化到存储中的状态记录
// 存储键不存在时按零值记录处理（closed，计数为零，时间戳缺省）
type record struct {
	State        State      `json:"state" msgpack:"state"`
	FailureCount int        `json:"failure_count" msgpack:"failure_count"`
	SuccessCount int        `json:"success_count" msgpack:"success_count"`
	LastFailure  *time.Time `json:"last_failure,omitempty" msgpack:"last_failure,omitempty"`
	OpenedAt     *time.Time `json:"opened_at,omitempty" msgpack:"opened_at,omitempty"`
}

// circuitBreaker 熔断器实现（非导出）
//
// 每个实例持有一把互斥锁，所有 读-判定-写 序列都在锁内完成，
// 状态转换对单个实例而言是原子的。half_open 状态下不限制并发
// 探测数量：每次 CanProceed 都放行，由多个调用方共同探测恢复。
type circuitBreaker struct {
	cfg      *Config
	key      string
	store    store.Store
	codec    serializer.Serializer
	logger   clog.Logger
	meter    metrics.Meter
	fallback FallbackFunc

	mu sync.Mutex
}

// newBreaker 创建熔断器实例（内部函数）
// 注意：cfg 已在 New() 中设置了默认值，logger/meter 已兜底为 Discard
func newBreaker(
	cfg *Config,
	st store.Store,
	codec serializer.Serializer,
	logger clog.Logger,
	meter metrics.Meter,
	fallback FallbackFunc,
) *circuitBreaker {
	return &circuitBreaker{
		cfg:      cfg,
		key:      DeriveKey(cfg.Prefix, cfg.Identity),
		store:    st,
		codec:    codec,
		logger:   logger,
		meter:    meter,
		fallback: fallback,
	}
}

// CanProceed 判定当前是否允许调用通过
func (cb *circuitBreaker) CanProceed(ctx context.Context) (bool, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	rec, err := cb.load(ctx)
	if err != nil {
		return false, err
	}

	switch rec.State {
	case StateClosed:
		cb.countDecision(ctx, "permitted")
		return true, nil

	case StateOpen:
		// openedAt 缺失的 open 记录视为已超时，直接进入探测
		if rec.OpenedAt != nil && time.Since(*rec.OpenedAt) < cb.cfg.Timeout {
			cb.countDecision(ctx, "rejected")
			return false, nil
		}
		rec.State = StateHalfOpen
		rec.SuccessCount = 0
		if err := cb.save(ctx, rec); err != nil {
			return false, err
		}
		cb.onTransition(ctx, StateOpen, StateHalfOpen)
		cb.countDecision(ctx, "permitted")
		return true, nil

	case StateHalfOpen:
		// 半开状态放行所有调用作为探测，不限制并发探测数
		cb.countDecision(ctx, "permitted")
		return true, nil

	default:
		// 未知状态值一律拒绝
		cb.countDecision(ctx, "rejected")
		return false, nil
	}
}

// RecordSuccess 上报一次成功
func (cb *circuitBreaker) RecordSuccess(ctx context.Context) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	rec, err := cb.load(ctx)
	if err != nil {
		return err
	}

	switch rec.State {
	case StateClosed:
		// 稳态下的成功完全赦免此前的失败，硬清零而非衰减
		rec.FailureCount = 0
		rec.LastFailure = nil
		return cb.save(ctx, rec)

	case StateHalfOpen:
		rec.SuccessCount++
		if rec.SuccessCount >= cb.cfg.HalfOpenSuccessThreshold {
			*rec = record{State: StateClosed}
			if err := cb.save(ctx, rec); err != nil {
				return err
			}
			cb.onTransition(ctx, StateHalfOpen, StateClosed)
			return nil
		}
		return cb.save(ctx, rec)

	default:
		// open 或未知状态下的成功不改变任何字段
		return nil
	}
}

// RecordFailure 上报一次失败
func (cb *circuitBreaker) RecordFailure(ctx context.Context) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	rec, err := cb.load(ctx)
	if err != nil {
		return err
	}

	// 失败计数与时间戳在任何状态下都更新
	now := time.Now()
	rec.FailureCount++
	rec.LastFailure = &now

	switch {
	case rec.State == StateHalfOpen:
		// 探测期间单次失败立即重新熔断，不适用阈值
		cb.open(rec, now)
		if err := cb.save(ctx, rec); err != nil {
			return err
		}
		cb.onTransition(ctx, StateHalfOpen, StateOpen)
		return nil

	case rec.State == StateClosed && rec.FailureCount >= cb.cfg.FailureThreshold:
		cb.open(rec, now)
		if err := cb.save(ctx, rec); err != nil {
			return err
		}
		cb.onTransition(ctx, StateClosed, StateOpen)
		return nil

	default:
		// open 状态下 openedAt 不被刷新，超时时钟不因后续失败重置
		return cb.save(ctx, rec)
	}
}

// State 读取当前状态
func (cb *circuitBreaker) State(ctx context.Context) (State, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	rec, err := cb.load(ctx)
	if err != nil {
		return StateClosed, err
	}
	return rec.State, nil
}

// Reset 无条件复位为 closed
func (cb *circuitBreaker) Reset(ctx context.Context) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err := cb.save(ctx, &record{State: StateClosed}); err != nil {
		return err
	}

	cb.logger.Info("circuit breaker reset",
		clog.String("identity", cb.cfg.Identity))
	return nil
}

// open 切换到打开状态（调用方持锁）
func (cb *circuitBreaker) open(rec *record, now time.Time) {
	openedAt := now
	rec.State = StateOpen
	rec.OpenedAt = &openedAt
	rec.SuccessCount = 0
}

// load 从存储加载状态记录
// 键不存在时回退到默认记录；未知状态字符串保留原样，
// 由各操作的 switch 分支按防御性默认处理
func (cb *circuitBreaker) load(ctx context.Context) (*record, error) {
	data, err := cb.store.Get(ctx, cb.key)
	if err != nil {
		if xerrors.Is(err, store.ErrKeyNotFound) {
			return &record{State: StateClosed}, nil
		}
		return nil, xerrors.Wrap(err, "breaker: load state")
	}

	rec := &record{}
	if err := cb.codec.Unmarshal(data, rec); err != nil {
		return nil, xerrors.Wrap(err, "breaker: decode state")
	}
	if rec.State == "" {
		rec.State = StateClosed
	}
	return rec, nil
}

// save 将状态记录写回存储
func (cb *circuitBreaker) save(ctx context.Context, rec *record) error {
	data, err := cb.codec.Marshal(rec)
	if err != nil {
		return xerrors.Wrap(err, "breaker: encode state")
	}
	if err := cb.store.Set(ctx, cb.key, data); err != nil {
		return xerrors.Wrap(err, "breaker: save state")
	}
	return nil
}

// onTransition 状态转换的日志与指标上报
func (cb *circuitBreaker) onTransition(ctx context.Context, from, to State) {
	cb.logger.Info("circuit breaker state changed",
		clog.String("identity", cb.cfg.Identity),
		clog.String("from", from.String()),
		clog.String("to", to.String()))

	if counter, err := cb.meter.Counter(MetricStateChanges, "Circuit breaker state transitions"); err == nil && counter != nil {
		counter.Inc(ctx,
			metrics.L(LabelIdentity, cb.cfg.Identity),
			metrics.L(LabelFromState, from.String()),
			metrics.L(LabelToState, to.String()))
	}
}

// countDecision 放行/拒绝决策的指标上报
func (cb *circuitBreaker) countDecision(ctx context.Context, result string) {
	if counter, err := cb.meter.Counter(MetricDecisionsTotal, "Circuit breaker proceed decisions"); err == nil && counter != nil {
		counter.Inc(ctx,
			metrics.L(LabelIdentity, cb.cfg.Identity),
			metrics.L(LabelResult, result))
	}
}
