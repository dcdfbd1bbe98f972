package cache

import (
	"context"
	"testing"
	"time"
)

func TestLRUCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache[[]string](2, time.Minute)

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Set(ctx, "a", []string{"Roads"})
	got, ok := c.Get(ctx, "a")
	if !ok || len(got) != 1 || got[0] != "Roads" {
		t.Fatalf("unexpected get: %v ok=%v", got, ok)
	}

	c.Delete(ctx, "a")
	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache[int](2, time.Minute)
	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	c.Get(ctx, "a") // a becomes most recent
	c.Set(ctx, "c", 3)

	if _, ok := c.Get(ctx, "b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := c.Get(ctx, "a"); !ok {
		t.Fatal("expected a to survive")
	}
	if c.Size(ctx) != 2 {
		t.Fatalf("expected size 2, got %d", c.Size(ctx))
	}
}

func TestLRUCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache[int](10, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	now = now.Add(2 * time.Minute)
	c.Set(ctx, "c", 3)

	if removed := c.CleanExpired(); removed != 2 {
		t.Fatalf("expected 2 expired entries, got %d", removed)
	}
	if _, ok := c.Get(ctx, "c"); !ok {
		t.Fatal("fresh entry should remain")
	}
}

func TestManagerStartStop(t *testing.T) {
	m := NewManager()
	m.Register(NewLRUCache[int](1, time.Millisecond))
	m.StartCleanup(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	m.Stop()
	m.Stop() // second stop is a no-op
}
