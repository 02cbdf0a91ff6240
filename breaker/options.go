package breaker

import (
	"context"

	"github.com/ceyewan/fuse/clog"
	"github.com/ceyewan/fuse/connector"
	"github.com/ceyewan/fuse/metrics"
	"github.com/ceyewan/fuse/store"
)

// Option 组件初始化选项函数
type Option func(*options)

// FallbackFunc 降级函数类型
// 拦截器/中间件在熔断器打开时调用此函数进行降级
// 参数:
//   - ctx: 上下文
//   - identity: 受保护目标的标识
//   - err: 原始错误（通常是 ErrOpenState）
//
// 返回:
//   - error: 降级逻辑的错误，nil 表示降级成功
type FallbackFunc func(ctx context.Context, identity string, err error) error

// options 组件初始化选项配置（内部使用，小写）
type options struct {
	logger    clog.Logger
	meter     metrics.Meter
	store     store.Store
	redisConn connector.RedisConnector
	fallback  FallbackFunc
}

// WithLogger 设置 Logger，传入 nil 时使用 clog.Discard()
// 内部会自动添加 namespace: "breaker"
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			o.logger = clog.Discard()
		} else {
			o.logger = logger.WithNamespace("breaker")
		}
	}
}

// WithMeter 设置指标收集器，传入 nil 时使用 metrics.Discard()
func WithMeter(meter metrics.Meter) Option {
	return func(o *options) {
		if meter == nil {
			o.meter = metrics.Discard()
		} else {
			o.meter = meter
		}
	}
}

// WithStore 注入自定义存储实现
// 设置后忽略 Config.Driver，状态字段持久化到给定存储
func WithStore(st store.Store) Option {
	return func(o *options) {
		o.store = st
	}
}

// WithRedisConnector 设置 Redis 连接器
// Config.Driver 为 "redis" 时必须提供
func WithRedisConnector(conn connector.RedisConnector) Option {
	return func(o *options) {
		o.redisConn = conn
	}
}

// WithFallback 设置降级函数
// 拦截器/中间件在熔断器打开时会调用此函数进行降级处理
//
// 使用示例:
//
//	brk, _ := breaker.New(cfg,
//		breaker.WithFallback(func(ctx context.Context, identity string, err error) error {
//			// 返回缓存数据或默认值
//			return nil
//		}),
//	)
func WithFallback(fallback FallbackFunc) Option {
	return func(o *options) {
		o.fallback = fallback
	}
}
