package breaker

import "github.com/ceyewan/fuse/xerrors"

// 错误定义
var (
	// ErrConfigNil 配置为空
	ErrConfigNil = xerrors.New("breaker: config is nil")

	// ErrIdentityEmpty 标识为空
	ErrIdentityEmpty = xerrors.New("breaker: identity is required")

	// ErrUnknownDriver 未知的存储驱动
	ErrUnknownDriver = xerrors.New("breaker: unknown store driver")

	// ErrRedisConnectorRequired redis 驱动缺少连接器
	ErrRedisConnectorRequired = xerrors.New("breaker: redis driver requires a connector")

	// ErrOpenState 熔断器处于打开状态
	ErrOpenState = xerrors.New("breaker: circuit breaker is open")

	// ErrCapabilityNotFound 能力未注册
	ErrCapabilityNotFound = xerrors.New("breaker: capability not found")

	// ErrCapabilityRegistered 能力已注册
	ErrCapabilityRegistered = xerrors.New("breaker: capability already registered")
)
