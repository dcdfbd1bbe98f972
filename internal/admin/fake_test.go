package admin

import (
	"context"
	"errors"
	"sync"
	"time"

	"complaints/internal/core"
)

var errStoreDown = errors.New("store unavailable")

// fakeGateway is a scriptable store.Gateway.
type fakeGateway struct {
	mu          sync.Mutex
	subs        []core.Submission
	cats        []string
	listSubsErr error
	listCatsErr error
	appendErr   error
	appendCalls []string
	appendDelay time.Duration

	// when set, the corresponding list blocks until the channel is closed
	subsGate chan struct{}
	catsGate chan struct{}

	invalidated int
}

func (f *fakeGateway) ListSubmissions(ctx context.Context) ([]core.Submission, error) {
	if f.subsGate != nil {
		select {
		case <-f.subsGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listSubsErr != nil {
		return nil, f.listSubsErr
	}
	return append([]core.Submission(nil), f.subs...), nil
}

func (f *fakeGateway) ListCategories(ctx context.Context) ([]string, error) {
	if f.catsGate != nil {
		select {
		case <-f.catsGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listCatsErr != nil {
		return nil, f.listCatsErr
	}
	return append([]string(nil), f.cats...), nil
}

func (f *fakeGateway) AppendCategory(_ context.Context, name string) error {
	time.Sleep(f.appendDelay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appendCalls = append(f.appendCalls, name)
	if f.appendErr != nil {
		return f.appendErr
	}
	f.cats = append(f.cats, name)
	return nil
}

func (f *fakeGateway) Invalidate(context.Context) {
	f.mu.Lock()
	f.invalidated++
	f.mu.Unlock()
}

type recordingPublisher struct {
	names []string
	err   error
}

func (p *recordingPublisher) PublishCategoryAdded(_ context.Context, name string) error {
	p.names = append(p.names, name)
	return p.err
}

type memorySaver struct {
	filename string
	data     []byte
	err      error
}

func (s *memorySaver) Save(_ context.Context, filename string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.filename = filename
	s.data = append([]byte(nil), data...)
	return nil
}
