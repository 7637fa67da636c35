package discovery

import (
	"testing"
	"time"

	"github.com/keyclick/keyclick/internal/model"
)

func testResult(role string) model.DiscoveryResult {
	return model.DiscoveryResult{
		Elements: []model.ScreenElement{{X: 1, Y: 2, Width: 3, Height: 4, Role: role}},
	}
}

func TestCacheHitAndMiss(t *testing.T) {
	c := NewResultCache(500 * time.Millisecond)
	c.Put(42, testResult("btn"))

	got, ok := c.Get(42)
	if !ok {
		t.Fatal("fresh entry should hit")
	}
	if got.Elements[0].Role != "btn" {
		t.Errorf("Role = %q, want %q", got.Elements[0].Role, "btn")
	}

	if _, ok := c.Get(43); ok {
		t.Error("unknown pid should miss")
	}
}

func TestCacheTTLBoundary(t *testing.T) {
	c := NewResultCache(500 * time.Millisecond)
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	c.Put(42, testResult("btn"))

	current = current.Add(499 * time.Millisecond)
	if _, ok := c.Get(42); !ok {
		t.Error("1ms under the ttl should hit")
	}

	current = current.Add(1 * time.Millisecond)
	if _, ok := c.Get(42); ok {
		t.Error("exactly at the ttl should miss")
	}

	c.Put(42, testResult("btn"))
	current = current.Add(501 * time.Millisecond)
	if _, ok := c.Get(42); ok {
		t.Error("1ms past the ttl should miss")
	}
}

func TestCacheZeroTTLDisables(t *testing.T) {
	c := NewResultCache(0)
	c.Put(42, testResult("btn"))
	if _, ok := c.Get(42); ok {
		t.Error("zero ttl should never hit")
	}
}

func TestCacheLockContentionIsMiss(t *testing.T) {
	c := NewResultCache(time.Hour)
	c.Put(42, testResult("btn"))

	c.mu.Lock()
	_, ok := c.Get(42)
	c.mu.Unlock()

	if ok {
		t.Error("contended lookup should miss, not block")
	}
	if _, ok := c.Get(42); !ok {
		t.Error("entry should survive the contended lookup")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewResultCache(time.Hour)
	c.Put(1, testResult("btn"))
	c.Put(2, testResult("lnk"))

	c.Invalidate(1)
	if _, ok := c.Get(1); ok {
		t.Error("invalidated pid should miss")
	}
	if _, ok := c.Get(2); !ok {
		t.Error("other pid should survive")
	}

	c.InvalidateAll()
	if _, ok := c.Get(2); ok {
		t.Error("InvalidateAll should clear everything")
	}
}

func TestCacheSetTTL(t *testing.T) {
	c := NewResultCache(time.Hour)
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	c.Put(42, testResult("btn"))
	current = current.Add(10 * time.Millisecond)

	c.SetTTL(5 * time.Millisecond)
	if _, ok := c.Get(42); ok {
		t.Error("entry should be judged against the shortened ttl")
	}
}
