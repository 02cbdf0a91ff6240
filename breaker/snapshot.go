package breaker

import (
	"context"
	"time"
)

// SnapshotVersion 序列化记录的当前版本号
const SnapshotVersion = 1

// Stats 熔断器状态的只读快照
// 包含当前状态机字段和生效的配置值
type Stats struct {
	// Identity 受保护目标的标识
	Identity string `json:"identity"`

	// State 当前状态
	State State `json:"state"`

	// FailureCount 当前窗口内累计的失败数
	FailureCount int `json:"failure_count"`

	// SuccessCount 半开探测期间累计的成功数
	SuccessCount int `json:"success_count"`

	// LastFailure 最近一次失败的时刻，无失败时为 nil
	LastFailure *time.Time `json:"last_failure,omitempty"`

	// OpenedAt 进入打开状态的时刻，非打开周期内为 nil
	OpenedAt *time.Time `json:"opened_at,omitempty"`

	// 生效配置
	FailureThreshold         int           `json:"failure_threshold"`
	Timeout                  time.Duration `json:"timeout"`
	HalfOpenSuccessThreshold int           `json:"half_open_success_threshold"`
}

// Snapshot 带版本号和捕获时间的序列化记录
// 完全由 Stats 派生，适合落日志或外部持久化
type Snapshot struct {
	// Version 记录格式版本，当前为 SnapshotVersion
	Version int `json:"version"`

	// CapturedAt 快照捕获时刻
	CapturedAt time.Time `json:"captured_at"`

	// Stats 捕获时的状态快照
	Stats *Stats `json:"stats"`
}

// Stats 返回只读的状态快照
func (cb *circuitBreaker) Stats(ctx context.Context) (*Stats, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	rec, err := cb.load(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Identity:                 cb.cfg.Identity,
		State:                    rec.State,
		FailureCount:             rec.FailureCount,
		SuccessCount:             rec.SuccessCount,
		LastFailure:              rec.LastFailure,
		OpenedAt:                 rec.OpenedAt,
		FailureThreshold:         cb.cfg.FailureThreshold,
		Timeout:                  cb.cfg.Timeout,
		HalfOpenSuccessThreshold: cb.cfg.HalfOpenSuccessThreshold,
	}, nil
}

// Serialize 返回带版本号和捕获时间的可持久化记录
func (cb *circuitBreaker) Serialize(ctx context.Context) (*Snapshot, error) {
	stats, err := cb.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Version:    SnapshotVersion,
		CapturedAt: time.Now(),
		Stats:      stats,
	}, nil
}
