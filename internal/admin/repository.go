package admin

import (
	"context"
	"fmt"
	"sync"

	"complaints/internal/core"
	"complaints/internal/log"
	"complaints/internal/store"
)

// SubmissionRepository is a read-only in-memory copy of the complaints collection.
type SubmissionRepository struct {
	mu     sync.RWMutex
	subs   []core.Submission
	lister store.SubmissionLister
	logger *log.Logger
}

func NewSubmissionRepository(lister store.SubmissionLister, opts ...Option) *SubmissionRepository {
	return &SubmissionRepository{
		subs:   []core.Submission{},
		lister: lister,
		logger: buildOptions(opts).logger,
	}
}

// Load replaces the records with the store's. On error the previous records stay.
func (r *SubmissionRepository) Load(ctx context.Context) error {
	subs, err := r.lister.ListSubmissions(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to load submissions",
			log.FieldOperation, log.OpList,
			log.FieldCollection, store.ComplaintsCollection,
			log.FieldError, err)
		return fmt.Errorf("load submissions: %w", err)
	}
	if subs == nil {
		subs = []core.Submission{}
	}

	r.mu.Lock()
	r.subs = subs
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Submissions loaded", log.FieldCollection, store.ComplaintsCollection, log.FieldCount, len(subs))
	return nil
}

// All returns a copy of every record in load order.
func (r *SubmissionRepository) All() []core.Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]core.Submission{}, r.subs...)
}
