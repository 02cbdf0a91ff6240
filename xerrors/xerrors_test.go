package xerrors

import (
	"testing"
)

// TestWrap 测试错误包装保留错误链
func TestWrap(t *testing.T) {
	base := New("base error")
	wrapped := Wrap(base, "context")

	if wrapped == nil {
		t.Fatal("Wrap should not return nil for non-nil error")
	}
	if !Is(wrapped, base) {
		t.Error("wrapped error should match base via Is")
	}
	if wrapped.Error() != "context: base error" {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}
}

// TestWrapNil 测试 nil 错误包装
func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

// TestWrapf 测试格式化包装
func TestWrapf(t *testing.T) {
	base := New("base")
	wrapped := Wrapf(base, "attempt %d", 3)

	if wrapped.Error() != "attempt 3: base" {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}
	if !Is(wrapped, base) {
		t.Error("wrapped error should match base via Is")
	}
}

// TestMust 测试 Must 在错误时 panic
func TestMust(t *testing.T) {
	v := Must(42, nil)
	if v != 42 {
		t.Errorf("Must should return value, got %d", v)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(0, New("boom"))
}
