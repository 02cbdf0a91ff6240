package clog

import (
	"fmt"
	"strings"
)

// Config 日志配置结构，定义日志的基本行为
//
// 支持的配置项：
//
//	Level: 日志级别 (debug|info|warn|error|fatal)
//	Format: 输出格式 (json|console)
//	Output: 输出目标 (stdout|stderr|文件路径)
//	AddSource: 是否显示调用位置信息
type Config struct {
	Level     string `json:"level" yaml:"level"`         // debug|info|warn|error|fatal
	Format    string `json:"format" yaml:"format"`       // json|console
	Output    string `json:"output" yaml:"output"`       // stdout|stderr|<file path>
	AddSource bool   `json:"addSource" yaml:"addSource"` // 是否记录调用位置
}

// NewDevDefaultConfig 返回开发环境友好的默认配置
//
// name 会作为日志的 app 字段，便于区分来源。
func NewDevDefaultConfig(name string) *Config {
	_ = name // app 字段由调用方通过 With 注入，这里仅保持签名统一
	return &Config{
		Level:  "debug",
		Format: "console",
		Output: "stdout",
	}
}

// validate 验证配置的有效性并为空值设置默认值（内部使用）
func (c *Config) validate() error {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}

	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	format := strings.ToLower(c.Format)
	if format != "json" && format != "console" {
		return fmt.Errorf("invalid format: %s, must be json or console", c.Format)
	}
	// Output 可以是 stdout, stderr 或文件路径，不做严格校验
	return nil
}
