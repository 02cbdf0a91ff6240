package clog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newFileLogger 创建一个输出到临时文件的 logger，返回读取函数
func newFileLogger(t *testing.T, cfg *Config, opts ...Option) (Logger, func() string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.log")
	cfg.Output = path

	logger, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	return logger, func() string {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		return string(data)
	}
}

// TestNewDefaults 测试 nil 配置使用默认值
func TestNewDefaults(t *testing.T) {
	logger, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) should not fail: %v", err)
	}
	if logger == nil {
		t.Fatal("New(nil) should return a logger")
	}
}

// TestNewInvalidConfig 测试非法配置
func TestNewInvalidConfig(t *testing.T) {
	if _, err := New(&Config{Level: "verbose"}); err == nil {
		t.Error("invalid level should fail")
	}
	if _, err := New(&Config{Format: "xml"}); err == nil {
		t.Error("invalid format should fail")
	}
}

// TestJSONOutput 测试 JSON 格式输出与字段
func TestJSONOutput(t *testing.T) {
	logger, read := newFileLogger(t, &Config{Level: "info", Format: "json"})

	logger.Info("hello", String("key", "value"), Int("count", 3))
	logger.Flush()

	line := strings.TrimSpace(read())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, line)
	}

	if entry["msg"] != "hello" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry["key"] != "value" {
		t.Errorf("unexpected key field: %v", entry["key"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("unexpected count field: %v", entry["count"])
	}
}

// TestLevelFiltering 测试级别过滤
func TestLevelFiltering(t *testing.T) {
	logger, read := newFileLogger(t, &Config{Level: "warn", Format: "json"})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	out := read()
	if strings.Contains(out, "info message") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "warn message") {
		t.Error("warn should pass at warn level")
	}
}

// TestSetLevel 测试动态级别调整
func TestSetLevel(t *testing.T) {
	logger, read := newFileLogger(t, &Config{Level: "error", Format: "json"})

	logger.Info("before")
	if err := logger.SetLevel(DebugLevel); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}
	logger.Info("after")

	out := read()
	if strings.Contains(out, "before") {
		t.Error("info should be filtered before SetLevel")
	}
	if !strings.Contains(out, "after") {
		t.Error("info should pass after SetLevel(debug)")
	}
}

// TestNamespace 测试命名空间字段
func TestNamespace(t *testing.T) {
	logger, read := newFileLogger(t, &Config{Level: "info", Format: "json"}, WithNamespace("fuse"))

	logger.WithNamespace("breaker").Info("namespaced")

	if !strings.Contains(read(), `"namespace":"fuse.breaker"`) {
		t.Errorf("namespace field missing: %s", read())
	}
}

// TestWithFields 测试预设字段
func TestWithFields(t *testing.T) {
	logger, read := newFileLogger(t, &Config{Level: "info", Format: "json"})

	child := logger.With(String("component", "breaker"))
	child.Info("with fields")

	if !strings.Contains(read(), `"component":"breaker"`) {
		t.Errorf("preset field missing: %s", read())
	}
}

// TestContextField 测试 Context 字段提取
func TestContextField(t *testing.T) {
	type ctxKey string
	logger, read := newFileLogger(t, &Config{Level: "info", Format: "json"},
		WithContextField(ctxKey("trace-id"), "trace_id"))

	ctx := context.WithValue(context.Background(), ctxKey("trace-id"), "abc123")
	logger.InfoContext(ctx, "with context")

	if !strings.Contains(read(), `"trace_id":"abc123"`) {
		t.Errorf("context field missing: %s", read())
	}
}

// TestDiscard 测试静默 Logger
func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Info("ignored")
	logger.Error("ignored", Error(nil))

	if logger.With(String("k", "v")) == nil {
		t.Error("Discard().With should return a logger")
	}
	if logger.WithNamespace("x") == nil {
		t.Error("Discard().WithNamespace should return a logger")
	}
}

// TestParseLevel 测试级别解析
func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": DebugLevel,
		"INFO":  InfoLevel,
		"Warn":  WarnLevel,
		"error": ErrorLevel,
		"fatal": FatalLevel,
	}
	for s, want := range cases {
		got, err := ParseLevel(s)
		if err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", s, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", s, got, want)
		}
	}

	if _, err := ParseLevel("trace"); err == nil {
		t.Error("ParseLevel should fail for unknown level")
	}
}
