package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopScanHooks{}
	s.OnBuildStart(ctx, 3)
	s.OnFileScanned(ctx, "src/User.php", `App\User`, 2)
	s.OnBuildComplete(ctx, 3, 5, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "extraction")
	c.OnCacheMiss(ctx, "extraction")
	c.OnCacheSet(ctx, "extraction", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Scan().(NoopScanHooks); !ok {
		t.Error("Scan() should return NoopScanHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customScan := &testScanHooks{}
	SetScanHooks(customScan)
	if Scan() != customScan {
		t.Error("SetScanHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Scan().(NoopScanHooks); !ok {
		t.Error("Reset() should restore NoopScanHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testScanHooks{}
	SetScanHooks(custom)
	SetScanHooks(nil)

	if Scan() != custom {
		t.Error("SetScanHooks(nil) should be ignored")
	}
}

func TestSetHooksReturnsPrevious(t *testing.T) {
	Reset()
	defer Reset()

	first := &testScanHooks{}
	if prev := SetScanHooks(first); prev != (NoopScanHooks{}) {
		t.Errorf("SetScanHooks() prev = %v, want NoopScanHooks", prev)
	}
	if prev := SetScanHooks(&testScanHooks{}); prev != first {
		t.Errorf("SetScanHooks() prev = %p, want %p", prev, first)
	}

	cache := &testCacheHooks{}
	SetCacheHooks(cache)
	if prev := SetCacheHooks(NoopCacheHooks{}); prev != cache {
		t.Errorf("SetCacheHooks() prev = %p, want %p", prev, cache)
	}
}

type testScanHooks struct{ NoopScanHooks }
type testCacheHooks struct{ NoopCacheHooks }
