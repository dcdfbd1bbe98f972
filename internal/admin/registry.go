package admin

import (
	"context"
	"fmt"
	"sync"

	"complaints/internal/core"
	"complaints/internal/log"
	"complaints/internal/store"
)

// EventPublisher announces categories once they are persisted.
type EventPublisher interface {
	PublishCategoryAdded(ctx context.Context, name string) error
}

// CategoryRegistry holds the ordered category labels mirrored from the store.
type CategoryRegistry struct {
	mu     sync.RWMutex
	labels []string

	// writeMu orders store round trips: Add holds it across check, persist
	// and append, Load across fetch and swap.
	writeMu sync.Mutex

	lister           store.CategoryLister
	appender         store.CategoryAppender
	rejectDuplicates bool
	events           EventPublisher
	logger           *log.Logger
}

func NewCategoryRegistry(lister store.CategoryLister, appender store.CategoryAppender, opts ...Option) *CategoryRegistry {
	o := buildOptions(opts)
	return &CategoryRegistry{
		labels:           []string{},
		lister:           lister,
		appender:         appender,
		rejectDuplicates: o.rejectDuplicates,
		events:           o.events,
		logger:           o.logger,
	}
}

// Load replaces the labels with the store's. On error the previous labels stay.
func (r *CategoryRegistry) Load(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	labels, err := r.lister.ListCategories(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to load categories",
			log.FieldOperation, log.OpList,
			log.FieldCollection, store.CategoriesCollection,
			log.FieldError, err)
		return fmt.Errorf("load categories: %w", err)
	}
	if labels == nil {
		labels = []string{}
	}

	r.mu.Lock()
	r.labels = labels
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Categories loaded", log.FieldCollection, store.CategoriesCollection, log.FieldCount, len(labels))
	return nil
}

// Add persists a new label and then appends it locally. Blank labels never
// reach the store. Returns the stored (trimmed) label.
func (r *CategoryRegistry) Add(ctx context.Context, label string) (string, error) {
	name, err := core.NormalizeCategory(label)
	if err != nil {
		r.logger.InfoContext(ctx, "Rejected blank category",
			log.FieldOperation, log.OpValidate)
		return "", err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if r.rejectDuplicates && core.ContainsCategory(r.List(), name) {
		return "", fmt.Errorf("%w: %q", core.ErrDuplicateCategory, name)
	}

	if err := r.appender.AppendCategory(ctx, name); err != nil {
		r.logger.ErrorContext(ctx, "Failed to persist category",
			log.FieldOperation, log.OpAppend,
			log.FieldCategory, name,
			log.FieldError, err)
		return "", fmt.Errorf("append category: %w", err)
	}

	r.mu.Lock()
	r.labels = append(r.labels, name)
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Category added",
		log.FieldOperation, log.OpAppend,
		log.FieldCategory, name)

	if r.events != nil {
		if err := r.events.PublishCategoryAdded(ctx, name); err != nil {
			r.logger.WarnContext(ctx, "Failed to publish category event",
				log.FieldCategory, name,
				log.FieldError, err)
		}
	}
	return name, nil
}

// List returns a copy of the labels in insertion order.
func (r *CategoryRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.labels...)
}
