package connector

import "github.com/ceyewan/fuse/xerrors"

// Sentinel Errors - 连接器专用的哨兵错误
var (
	ErrConnection  = xerrors.New("connector: connection failed")
	ErrConfig      = xerrors.New("connector: invalid config")
	ErrClientNil   = xerrors.New("connector: client not initialized")
	ErrHealthCheck = xerrors.New("connector: health check failed")
)
