package store

import (
	"context"

	"complaints/internal/core"
)

// Collection names in the remote store.
const (
	ComplaintsCollection = "complaints"
	CategoriesCollection = "categories"
)

// Ports for outbound adapters.
type (
	// SubmissionLister fetches every record of the complaints collection.
	SubmissionLister interface {
		ListSubmissions(ctx context.Context) ([]core.Submission, error)
	}

	// CategoryLister fetches every category label in store enumeration order.
	CategoryLister interface {
		ListCategories(ctx context.Context) ([]string, error)
	}

	// CategoryAppender persists one new category document.
	CategoryAppender interface {
		AppendCategory(ctx context.Context, name string) error
	}

	// Gateway is the full remote store surface used by the admin session.
	Gateway interface {
		SubmissionLister
		CategoryLister
		CategoryAppender
	}

	// Invalidator drops any locally held copy so the next list hits the store.
	Invalidator interface {
		Invalidate(ctx context.Context)
	}
)
