package breaker

import (
	"context"

	"github.com/ceyewan/fuse/clog"
	"github.com/ceyewan/fuse/metrics"

	"google.golang.org/grpc"
)

// UnaryClientInterceptor 返回 gRPC 一元调用客户端拦截器
// 调用前询问熔断器，调用后按结果上报成功/失败
//
// 存储不可用时降级放行，避免熔断器故障放大为业务故障。
//
// 使用示例:
//
//	brk, _ := breaker.New(cfg, breaker.WithLogger(logger))
//	conn, _ := grpc.NewClient(
//		"localhost:9001",
//		grpc.WithUnaryInterceptor(brk.UnaryClientInterceptor()),
//	)
func (cb *circuitBreaker) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		allowed, err := cb.CanProceed(ctx)
		if err != nil {
			// 降级策略：熔断器状态不可读时放行，避免影响业务
			cb.logger.Warn("breaker state unavailable, allowing call",
				clog.String("method", method),
				clog.Error(err))
			allowed = true
		}

		if !allowed {
			cb.countRequest(ctx, method, "rejected")
			if cb.fallback != nil {
				return cb.fallback(ctx, cb.cfg.Identity, ErrOpenState)
			}
			return ErrOpenState
		}

		callErr := invoker(ctx, method, req, reply, cc, opts...)
		if callErr != nil {
			_ = cb.RecordFailure(ctx)
			cb.countRequest(ctx, method, "failure")
		} else {
			_ = cb.RecordSuccess(ctx)
			cb.countRequest(ctx, method, "success")
		}

		return callErr
	}
}

// StreamClientInterceptor 返回 gRPC 流式调用客户端拦截器
// 以流的建立结果作为成功/失败上报依据
//
// 使用示例:
//
//	brk, _ := breaker.New(cfg, breaker.WithLogger(logger))
//	conn, _ := grpc.NewClient(
//		"localhost:9001",
//		grpc.WithStreamInterceptor(brk.StreamClientInterceptor()),
//	)
func (cb *circuitBreaker) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		allowed, err := cb.CanProceed(ctx)
		if err != nil {
			cb.logger.Warn("breaker state unavailable, allowing stream",
				clog.String("method", method),
				clog.Error(err))
			allowed = true
		}

		if !allowed {
			cb.countRequest(ctx, method, "rejected")
			if cb.fallback != nil {
				if fbErr := cb.fallback(ctx, cb.cfg.Identity, ErrOpenState); fbErr != nil {
					return nil, fbErr
				}
			}
			return nil, ErrOpenState
		}

		stream, streamErr := streamer(ctx, desc, cc, method, opts...)
		if streamErr != nil {
			_ = cb.RecordFailure(ctx)
			cb.countRequest(ctx, method, "failure")
			return nil, streamErr
		}

		_ = cb.RecordSuccess(ctx)
		cb.countRequest(ctx, method, "success")
		return stream, nil
	}
}

// countRequest 拦截器/中间件请求的指标上报
func (cb *circuitBreaker) countRequest(ctx context.Context, method, result string) {
	if counter, err := cb.meter.Counter(MetricRequestsTotal, "Total requests through the breaker"); err == nil && counter != nil {
		counter.Inc(ctx,
			metrics.L(LabelIdentity, cb.cfg.Identity),
			metrics.L(LabelMethod, method),
			metrics.L(LabelResult, result))
	}
}
