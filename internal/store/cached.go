package store

import (
	"context"

	"complaints/internal/cache"
	"complaints/internal/core"
)

// Cached wraps a Gateway with read-through caching of both collections.
// A nil cache disables caching for that collection.
type Cached struct {
	base Gateway
	subs cache.Cache[[]core.Submission]
	cats cache.Cache[[]string]
}

var (
	_ Gateway     = (*Cached)(nil)
	_ Invalidator = (*Cached)(nil)
)

func NewCached(base Gateway, subs cache.Cache[[]core.Submission], cats cache.Cache[[]string]) *Cached {
	if base == nil {
		panic("store.NewCached: base gateway is nil")
	}
	return &Cached{base: base, subs: subs, cats: cats}
}

func (c *Cached) ListSubmissions(ctx context.Context) ([]core.Submission, error) {
	if c.subs != nil {
		if v, ok := c.subs.Get(ctx, ComplaintsCollection); ok {
			return append([]core.Submission(nil), v...), nil
		}
	}
	v, err := c.base.ListSubmissions(ctx)
	if err != nil {
		return nil, err
	}
	if c.subs != nil {
		c.subs.Set(ctx, ComplaintsCollection, append([]core.Submission(nil), v...))
	}
	return v, nil
}

func (c *Cached) ListCategories(ctx context.Context) ([]string, error) {
	if c.cats != nil {
		if v, ok := c.cats.Get(ctx, CategoriesCollection); ok {
			return append([]string(nil), v...), nil
		}
	}
	v, err := c.base.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if c.cats != nil {
		c.cats.Set(ctx, CategoriesCollection, append([]string(nil), v...))
	}
	return v, nil
}

// AppendCategory writes through and evicts the cached category list.
func (c *Cached) AppendCategory(ctx context.Context, name string) error {
	if err := c.base.AppendCategory(ctx, name); err != nil {
		return err
	}
	if c.cats != nil {
		c.cats.Delete(ctx, CategoriesCollection)
	}
	return nil
}

func (c *Cached) Invalidate(ctx context.Context) {
	if c.subs != nil {
		c.subs.Delete(ctx, ComplaintsCollection)
	}
	if c.cats != nil {
		c.cats.Delete(ctx, CategoriesCollection)
	}
}
