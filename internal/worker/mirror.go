package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"complaints/internal/amqp"
	"complaints/internal/core"
	"complaints/internal/store"
)

// Mirror is the secondary store that receives added categories.
type Mirror interface {
	store.CategoryLister
	store.CategoryAppender
}

// CategoryMirror copies categories added through the admin into a second
// store, typically the shared spreadsheet.
type CategoryMirror struct {
	mirror Mirror
}

func NewCategoryMirror(mirror Mirror) *CategoryMirror {
	return &CategoryMirror{mirror: mirror}
}

// HandleCategoryAdded processes one event from AMQP. Blank labels and labels
// the mirror already holds are skipped.
func (w *CategoryMirror) HandleCategoryAdded(ctx context.Context, msg *amqp.CategoryAddedMessage) error {
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		slog.WarnContext(ctx, "Skipping blank category event", "timestamp", msg.Timestamp)
		return nil
	}

	existing, err := w.mirror.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list mirror categories: %w", err)
	}
	if core.ContainsCategory(existing, name) {
		slog.InfoContext(ctx, "Category already mirrored", "category", name)
		return nil
	}

	if err := w.mirror.AppendCategory(ctx, name); err != nil {
		return fmt.Errorf("append category to mirror: %w", err)
	}
	slog.InfoContext(ctx, "Category mirrored", "category", name, "timestamp", msg.Timestamp)
	return nil
}

// StartupSync appends every source category missing from the mirror.
// Recovers events lost while the worker was down.
func (w *CategoryMirror) StartupSync(ctx context.Context, source store.CategoryLister) (int, error) {
	want, err := source.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("list source categories: %w", err)
	}
	have, err := w.mirror.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("list mirror categories: %w", err)
	}

	added := 0
	for _, name := range want {
		name = strings.TrimSpace(name)
		if name == "" || core.ContainsCategory(have, name) {
			continue
		}
		if err := w.mirror.AppendCategory(ctx, name); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror category on startup", "category", name, "error", err)
			continue
		}
		have = append(have, name)
		added++
	}

	if added > 0 {
		slog.InfoContext(ctx, "Startup category sync complete", "added", added)
	} else {
		slog.InfoContext(ctx, "No missing categories found on startup")
	}
	return added, nil
}
