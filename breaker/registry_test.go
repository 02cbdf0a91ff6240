package breaker

import (
	"context"
	"testing"
	"time"
)

// TestCapabilities 测试能力表的完整性
func TestCapabilities(t *testing.T) {
	brk := newTestBreaker(t, &Config{Identity: "caps"})
	caps := Capabilities(brk)

	expected := []string{
		CapCanProceed, CapRecordSuccess, CapRecordFailure,
		CapGetState, CapReset, CapGetStats, CapSerialize,
	}
	if len(caps) != len(expected) {
		t.Fatalf("expected %d capabilities, got: %d", len(expected), len(caps))
	}
	for _, name := range expected {
		if _, ok := caps[name]; !ok {
			t.Errorf("capability %q should be present", name)
		}
	}
}

// TestRegistryInvoke 测试按名字调用能力
func TestRegistryInvoke(t *testing.T) {
	ctx := context.Background()
	brk := newTestBreaker(t, &Config{
		Identity:         "registry",
		FailureThreshold: 1,
		Timeout:          time.Hour,
	})

	reg := NewRegistry()
	if err := reg.RegisterBreaker(brk); err != nil {
		t.Fatalf("RegisterBreaker should not return error, got: %v", err)
	}

	result, err := reg.Invoke(ctx, CapCanProceed)
	if err != nil {
		t.Fatalf("Invoke should not return error, got: %v", err)
	}
	if ok, _ := result.(bool); !ok {
		t.Errorf("canProceed should return true for a fresh breaker, got: %v", result)
	}

	if _, err := reg.Invoke(ctx, CapRecordFailure); err != nil {
		t.Fatalf("recordFailure invocation should not return error, got: %v", err)
	}

	result, err = reg.Invoke(ctx, CapGetState)
	if err != nil {
		t.Fatalf("getCircuitState invocation should not return error, got: %v", err)
	}
	if result != StateOpen {
		t.Errorf("state should be open after threshold failure, got: %v", result)
	}

	if _, err := reg.Invoke(ctx, CapReset); err != nil {
		t.Fatalf("resetCircuit invocation should not return error, got: %v", err)
	}

	result, err = reg.Invoke(ctx, CapGetStats)
	if err != nil {
		t.Fatalf("getStats invocation should not return error, got: %v", err)
	}
	stats, ok := result.(*Stats)
	if !ok || stats.State != StateClosed {
		t.Errorf("getStats should return closed stats after reset, got: %v", result)
	}

	result, err = reg.Invoke(ctx, CapSerialize)
	if err != nil {
		t.Fatalf("serialize invocation should not return error, got: %v", err)
	}
	if snap, ok := result.(*Snapshot); !ok || snap.Version != SnapshotVersion {
		t.Errorf("serialize should return a versioned snapshot, got: %v", result)
	}
}

// TestRegistryUnknownCapability 测试未注册的能力名
func TestRegistryUnknownCapability(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Invoke(context.Background(), "selfDestruct")
	if err != ErrCapabilityNotFound {
		t.Fatalf("expected ErrCapabilityNotFound, got: %v", err)
	}
}

// TestRegistryDuplicateRegistration 测试重名注册
func TestRegistryDuplicateRegistration(t *testing.T) {
	reg := NewRegistry()
	noop := func(ctx context.Context) (any, error) { return nil, nil }

	if err := reg.Register("probe", noop); err != nil {
		t.Fatalf("first registration should succeed, got: %v", err)
	}
	if err := reg.Register("probe", noop); err != ErrCapabilityRegistered {
		t.Fatalf("expected ErrCapabilityRegistered, got: %v", err)
	}
}

// TestRegistryNames 测试名字列表排序输出
func TestRegistryNames(t *testing.T) {
	brk := newTestBreaker(t, &Config{Identity: "names"})

	reg := NewRegistry()
	if err := reg.RegisterBreaker(brk); err != nil {
		t.Fatalf("RegisterBreaker should not return error, got: %v", err)
	}

	names := reg.Names()
	if len(names) != 7 {
		t.Fatalf("expected 7 names, got: %d (%v)", len(names), names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names should be sorted, got: %v", names)
		}
	}
}
