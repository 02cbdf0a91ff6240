package breaker

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// DefaultPrefix 存储键的默认命名空间前缀
const DefaultPrefix = "fuse:breaker:"

// DeriveKey 从标识派生稳定的存储键
//
// 相同的 identity 总是派生出相同的键，不同的 identity 以极大
// 概率派生出不同的键；键只包含前缀字符与小写十六进制，
// 对常见 KV 存储的键命名空间是安全的。
//
// 导出此函数是为了让组合方在不构造熔断器的情况下
// 预先计算共享的存储键。
func DeriveKey(prefix, identity string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s%016x", prefix, xxhash.Sum64String(identity))
}
