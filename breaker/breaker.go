// Package breaker 提供了熔断器组件，用于隔离不可靠的外部依赖并自动探测恢复。
//
// breaker 是 fuse 的核心组件，它提供了：
// - 三态状态机（closed/open/half_open）的熔断器实现
// - 连续失败计数触发熔断，超时后半开探测，探测成功自动恢复
// - 状态字段通过通用 KV 存储持久化（内存 / Redis 可切换）
// - 可注册的能力表（Capability），便于被上层编排框架组合
// - gRPC Interceptor 与 Gin Middleware 无侵入集成
//
// ## 基本使用
//
//	// 创建熔断器（内存存储）
//	brk, _ := breaker.New(&breaker.Config{
//		Identity:         "https://api.example.com",
//		FailureThreshold: 5,
//		Timeout:          30 * time.Second,
//	}, breaker.WithLogger(logger))
//
//	// 调用前询问，调用后上报
//	ok, _ := brk.CanProceed(ctx)
//	if !ok {
//		return breaker.ErrOpenState
//	}
//	if err := callDependency(ctx); err != nil {
//		brk.RecordFailure(ctx)
//		return err
//	}
//	brk.RecordSuccess(ctx)
//
// ## Redis 持久化
//
//	conn, _ := connector.NewRedis(&connector.RedisConfig{Addr: "localhost:6379"})
//	brk, _ := breaker.New(&breaker.Config{
//		Identity: "https://api.example.com",
//		Driver:   breaker.DriverRedis,
//	}, breaker.WithRedisConnector(conn))
//
// 相同 Identity 的实例派生出相同的存储键，可以共享状态。
//
// ## gRPC 集成
//
//	conn, _ := grpc.NewClient(
//		"localhost:9001",
//		grpc.WithUnaryInterceptor(brk.UnaryClientInterceptor()),
//	)
package breaker

import (
	"context"
	"time"

	"github.com/ceyewan/fuse/clog"
	"github.com/ceyewan/fuse/metrics"
	"github.com/ceyewan/fuse/store"
	"github.com/ceyewan/fuse/store/serializer"

	"google.golang.org/grpc"
)

// ========================================
// 接口定义 (Interface Definitions)
// ========================================

// Breaker 熔断器核心接口
//
// 调用方在访问受保护依赖前调用 CanProceed，依赖调用完成后
// 通过 RecordSuccess / RecordFailure 上报结果。熔断器本身
// 不发起任何网络调用，也不做重试。
//
// 所有操作的 error 仅反映底层存储的读写失败；
// 状态机本身的判定（如熔断中拒绝请求）通过返回值表达。
type Breaker interface {
	// CanProceed 判定当前是否允许调用通过
	// open 状态下若距开启时刻已超过 Timeout，会原子地切换到
	// half_open 并放行本次调用作为恢复探测
	CanProceed(ctx context.Context) (bool, error)

	// RecordSuccess 上报一次成功
	// closed 状态下清零失败计数；half_open 状态下累计成功数，
	// 达到 HalfOpenSuccessThreshold 后完全复位为 closed；
	// open 状态下无效果
	RecordSuccess(ctx context.Context) error

	// RecordFailure 上报一次失败
	// 失败计数在任何状态下都会累加；half_open 下单次失败立即
	// 重新熔断；closed 下达到 FailureThreshold 触发熔断；
	// open 下不刷新超时时钟
	RecordFailure(ctx context.Context) error

	// State 读取当前状态，不产生任何副作用
	// 存储中无记录时返回 StateClosed
	State(ctx context.Context) (State, error)

	// Reset 无条件复位为 closed，清零所有计数和时间戳
	// 既是内部的关闭动作，也是运维的手动逃生通道
	Reset(ctx context.Context) error

	// Stats 返回只读的状态快照（含生效配置）
	Stats(ctx context.Context) (*Stats, error)

	// Serialize 返回带版本号和捕获时间的可持久化记录
	// 完全由 Stats 派生，适合落日志或外部存储
	Serialize(ctx context.Context) (*Snapshot, error)

	// UnaryClientInterceptor 返回 gRPC 一元调用客户端拦截器
	UnaryClientInterceptor() grpc.UnaryClientInterceptor

	// StreamClientInterceptor 返回 gRPC 流式调用客户端拦截器
	StreamClientInterceptor() grpc.StreamClientInterceptor
}

// State 熔断器状态
type State string

const (
	// StateClosed 闭合状态（正常放行，累计失败数）
	StateClosed State = "closed"
	// StateOpen 打开状态（熔断中，超时时钟运行）
	StateOpen State = "open"
	// StateHalfOpen 半开状态（探测恢复，累计成功数）
	StateHalfOpen State = "half_open"
)

// String 返回状态的字符串表示
func (s State) String() string {
	return string(s)
}

// ========================================
// 配置定义 (Configuration)
// ========================================

// 存储驱动
const (
	// DriverMemory 进程内内存存储（默认）
	DriverMemory = "memory"
	// DriverRedis Redis 存储，需要 WithRedisConnector
	DriverRedis = "redis"
)

// Config 熔断器配置
// 构造后不可变；非正的阈值 / 超时会在构造时归一化为默认值
type Config struct {
	// Identity 受保护目标的标识（必填，如 URL 或服务名）
	// 仅用于诊断和派生存储键，不参与状态机逻辑
	Identity string `json:"identity" yaml:"identity" mapstructure:"identity"`

	// FailureThreshold 触发熔断的连续失败数（默认：5）
	FailureThreshold int `json:"failure_threshold" yaml:"failure_threshold" mapstructure:"failure_threshold"`

	// Timeout 打开状态持续时间（默认：30s）
	// 超时后由下一次 CanProceed 切换到半开状态
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// HalfOpenSuccessThreshold 半开状态下恢复所需的成功数（默认：1）
	HalfOpenSuccessThreshold int `json:"half_open_success_threshold" yaml:"half_open_success_threshold" mapstructure:"half_open_success_threshold"`

	// Driver 存储驱动："memory"（默认）或 "redis"
	// 通过 WithStore 注入自定义存储时忽略此字段
	Driver string `json:"driver" yaml:"driver" mapstructure:"driver"`

	// Prefix 存储键的命名空间前缀（默认："fuse:breaker:"）
	Prefix string `json:"prefix" yaml:"prefix" mapstructure:"prefix"`

	// Codec 状态记录的序列化格式："json"（默认）或 "msgpack"
	Codec string `json:"codec" yaml:"codec" mapstructure:"codec"`
}

// setDefaults 设置默认值
// 非正的数值配置不报错，统一归一化为默认值
func (c *Config) setDefaults() {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 5
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.HalfOpenSuccessThreshold <= 0 {
		c.HalfOpenSuccessThreshold = 1
	}
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
}

// ========================================
// 工厂函数 (Factory Functions)
// ========================================

// New 创建熔断器实例
// 这是标准的工厂函数，支持在不依赖其他容器的情况下独立实例化
//
// 参数:
//   - cfg: 熔断器配置（Identity 必填）
//   - opts: 可选参数 (Logger, Meter, Store, RedisConnector, Fallback)
//
// 使用示例:
//
//	brk, _ := breaker.New(&breaker.Config{
//		Identity:         "https://api.example.com",
//		FailureThreshold: 3,
//		Timeout:          10 * time.Second,
//	}, breaker.WithLogger(logger))
func New(cfg *Config, opts ...Option) (Breaker, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}
	if cfg.Identity == "" {
		return nil, ErrIdentityEmpty
	}

	// 复制配置并设置默认值，调用方持有的配置不被修改
	c := *cfg
	c.setDefaults()

	// 应用选项
	opt := options{}
	for _, o := range opts {
		o(&opt)
	}
	logger := opt.logger
	if logger == nil {
		logger = clog.Discard()
	}
	meter := opt.meter
	if meter == nil {
		meter = metrics.Discard()
	}

	codec, err := serializer.New(c.Codec)
	if err != nil {
		return nil, err
	}

	// 存储选择：显式注入 > 按驱动构造
	st := opt.store
	if st == nil {
		switch c.Driver {
		case DriverMemory:
			st = store.NewMemory()
		case DriverRedis:
			if opt.redisConn == nil {
				return nil, ErrRedisConnectorRequired
			}
			st = store.NewRedis(opt.redisConn)
		default:
			return nil, ErrUnknownDriver
		}
	}

	logger.Info("creating circuit breaker",
		clog.String("identity", c.Identity),
		clog.Int("failure_threshold", c.FailureThreshold),
		clog.Duration("timeout", c.Timeout),
		clog.Int("half_open_success_threshold", c.HalfOpenSuccessThreshold),
		clog.String("driver", c.Driver))

	return newBreaker(&c, st, codec, logger, meter, opt.fallback), nil
}
