package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr, client := newMiniredis(t)
	ctx := context.Background()
	c := NewRedisCache[[]string](client, "complaints:", time.Minute)

	if _, ok := c.Get(ctx, "categories"); ok {
		t.Fatal("expected miss")
	}
	c.Set(ctx, "categories", []string{"Roads", "Noise"})
	got, ok := c.Get(ctx, "categories")
	if !ok {
		t.Fatal("expected hit")
	}
	if diff := cmp.Diff([]string{"Roads", "Noise"}, got); diff != "" {
		t.Fatalf("cached value (-want +got):\n%s", diff)
	}
	if ttl := mr.TTL("complaints:categories"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected TTL: %v", ttl)
	}
	if n := c.Size(ctx); n != 1 {
		t.Fatalf("expected size 1, got %d", n)
	}

	c.Delete(ctx, "categories")
	if mr.Exists("complaints:categories") {
		t.Fatal("expected key to be deleted")
	}
}

func TestRedisCacheCorruptPayloadIsMiss(t *testing.T) {
	mr, client := newMiniredis(t)
	ctx := context.Background()
	c := NewRedisCache[[]string](client, "p:", time.Minute)

	if err := mr.Set("p:categories", "not-json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok := c.Get(ctx, "categories"); ok {
		t.Fatal("expected miss on corrupt payload")
	}
	if mr.Exists("p:categories") {
		t.Fatal("corrupt payload should be evicted")
	}
}

func TestRedisCacheUnavailableIsMiss(t *testing.T) {
	mr, client := newMiniredis(t)
	ctx := context.Background()
	c := NewRedisCache[int](client, "p:", time.Minute)
	mr.Close()

	c.Set(ctx, "k", 1)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss when redis is down")
	}
	if n := c.Size(ctx); n != -1 {
		t.Fatalf("expected -1 size when redis is down, got %d", n)
	}
}

func TestRedisCacheZeroTTLDisablesWrites(t *testing.T) {
	mr, client := newMiniredis(t)
	c := NewRedisCache[int](client, "p:", 0)
	c.Set(context.Background(), "k", 1)
	if mr.Exists("p:k") {
		t.Fatal("zero TTL should skip writes")
	}
}
