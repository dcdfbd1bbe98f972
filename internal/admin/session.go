package admin

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"complaints/internal/core"
	"complaints/internal/log"
	"complaints/internal/store"

	"golang.org/x/sync/errgroup"
)

// Session is the operator's working state: the category registry and the
// submission repository, plus the derivations the dashboard renders.
type Session struct {
	gateway     store.Gateway
	categories  *CategoryRegistry
	submissions *SubmissionRepository
	logger      *log.Logger
	loaded      atomic.Bool
}

func NewSession(gateway store.Gateway, opts ...Option) *Session {
	o := buildOptions(opts)
	return &Session{
		gateway:     gateway,
		categories:  NewCategoryRegistry(gateway, gateway, opts...),
		submissions: NewSubmissionRepository(gateway, opts...),
		logger:      o.logger,
	}
}

// Load fetches both collections concurrently. Each load touches only its own
// collection. The group carries no context, so a failure in one does not
// cancel the other; when either fails the returned error joins both.
func (s *Session) Load(ctx context.Context) error {
	var (
		g              errgroup.Group
		catErr, subErr error
	)
	g.Go(func() error {
		catErr = s.categories.Load(ctx)
		return catErr
	})
	g.Go(func() error {
		subErr = s.submissions.Load(ctx)
		return subErr
	})
	err := g.Wait()

	s.loaded.Store(true)
	if err != nil {
		return errors.Join(catErr, subErr)
	}
	return nil
}

// Reload drops any cached copy held by the gateway and loads again.
func (s *Session) Reload(ctx context.Context) error {
	if inv, ok := s.gateway.(store.Invalidator); ok {
		inv.Invalidate(ctx)
	}
	return s.Load(ctx)
}

// Loaded reports whether at least one load attempt has completed.
func (s *Session) Loaded() bool {
	return s.loaded.Load()
}

func (s *Session) Categories() []string {
	return s.categories.List()
}

func (s *Session) Submissions() []core.Submission {
	return s.submissions.All()
}

// View returns the submissions matching selection. core.AllCategories selects all.
func (s *Session) View(selection string) []core.Submission {
	return core.FilterByCategory(selection, s.submissions.All())
}

// Distribution counts every loaded submission over the current registry.
func (s *Session) Distribution() core.Distribution {
	return core.Distribute(s.categories.List(), s.submissions.All())
}

func (s *Session) AddCategory(ctx context.Context, label string) (string, error) {
	return s.categories.Add(ctx, label)
}

// Export serializes the filtered view and hands the document to saver.
func (s *Session) Export(ctx context.Context, selection string, saver core.Saver) error {
	view := s.View(selection)
	data, err := core.ExportCSV(view)
	if err != nil {
		return fmt.Errorf("serialize export: %w", err)
	}
	if err := saver.Save(ctx, core.ExportFilename, data); err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	s.logger.InfoContext(ctx, "Export saved",
		log.FieldCategory, selection,
		log.FieldCount, len(view),
		"bytes", len(data))
	return nil
}
