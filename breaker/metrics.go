package breaker

// Metrics 指标常量定义
const (
	// MetricDecisionsTotal 放行/拒绝决策总数 (Counter)
	MetricDecisionsTotal = "fuse_breaker_decisions_total"

	// MetricStateChanges 状态变更次数 (Counter)
	MetricStateChanges = "fuse_breaker_state_changes_total"

	// MetricRequestsTotal 经拦截器/中间件的请求总数 (Counter)
	MetricRequestsTotal = "fuse_breaker_requests_total"

	// LabelIdentity 受保护目标标签
	LabelIdentity = "identity"

	// LabelFromState 源状态标签
	LabelFromState = "from_state"

	// LabelToState 目标状态标签
	LabelToState = "to_state"

	// LabelMethod gRPC 方法标签
	LabelMethod = "method"

	// LabelResult 结果标签 (permitted/rejected/success/failure)
	LabelResult = "result"
)
