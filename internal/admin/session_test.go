package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"complaints/internal/core"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

var sampleSubs = []core.Submission{
	{Name: "Ann", Email: "ann@x.com", Message: "pothole", Category: "Roads"},
	{Name: "Bob", Email: "bob@x.com", Message: "barking", Category: "Noise"},
	{Name: "Cid", Email: "cid@x.com", Message: "no label", Category: ""},
	{Name: "Dee", Email: "dee@x.com", Message: "crack", Category: "Roads"},
}

func TestSessionLoadEitherCompletionOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, order := range []string{"categories-first", "submissions-first"} {
		t.Run(order, func(t *testing.T) {
			g := &fakeGateway{
				subs:     sampleSubs,
				cats:     []string{"Noise", "Roads", "Parks"},
				subsGate: make(chan struct{}),
				catsGate: make(chan struct{}),
			}
			s := NewSession(g)

			done := make(chan error, 1)
			go func() { done <- s.Load(context.Background()) }()

			first, second := g.catsGate, g.subsGate
			if order == "submissions-first" {
				first, second = second, first
			}
			close(first)
			select {
			case err := <-done:
				t.Fatalf("Load returned before both collections finished: %v", err)
			case <-time.After(20 * time.Millisecond):
			}
			close(second)

			select {
			case err := <-done:
				if err != nil {
					t.Fatalf("load: %v", err)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Load did not complete")
			}

			if diff := cmp.Diff([]string{"Noise", "Roads", "Parks"}, s.Categories()); diff != "" {
				t.Fatalf("categories (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(sampleSubs, s.Submissions()); diff != "" {
				t.Fatalf("submissions (-want +got):\n%s", diff)
			}
			if !s.Loaded() {
				t.Fatal("session should report loaded")
			}
		})
	}
}

func TestSessionLoadPartialFailure(t *testing.T) {
	ctx := context.Background()
	g := &fakeGateway{subs: sampleSubs[:1], cats: []string{"Roads"}}
	s := NewSession(g)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	g.subs = sampleSubs
	g.cats = []string{"Roads", "Noise"}
	g.listCatsErr = errStoreDown

	err := s.Load(ctx)
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected category load error, got %v", err)
	}
	if diff := cmp.Diff([]string{"Roads"}, s.Categories()); diff != "" {
		t.Fatalf("categories should keep prior state (-want +got):\n%s", diff)
	}
	if len(s.Submissions()) != len(sampleSubs) {
		t.Fatalf("submissions should still refresh, got %d", len(s.Submissions()))
	}
}

func TestSessionLoadBothFail(t *testing.T) {
	errTimeout := errors.New("timeout")
	g := &fakeGateway{listCatsErr: errStoreDown, listSubsErr: errTimeout}
	s := NewSession(g)
	err := s.Load(context.Background())
	if !errors.Is(err, errStoreDown) || !errors.Is(err, errTimeout) {
		t.Fatalf("expected both failures joined, got %v", err)
	}
	if len(s.Categories()) != 0 || len(s.Submissions()) != 0 {
		t.Fatal("collections should stay empty")
	}
	if !s.Loaded() {
		t.Fatal("a failed attempt still counts as loaded")
	}
}

func TestSessionReloadInvalidates(t *testing.T) {
	g := &fakeGateway{}
	s := NewSession(g)
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if g.invalidated != 1 {
		t.Fatalf("expected gateway invalidation, got %d", g.invalidated)
	}
}

func TestSessionViewAndDistribution(t *testing.T) {
	g := &fakeGateway{subs: sampleSubs, cats: []string{"Noise", "Roads", "Parks"}}
	s := NewSession(g)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := s.View(core.AllCategories); len(got) != 4 {
		t.Fatalf("all view: %d records", len(got))
	}
	roads := s.View("Roads")
	if len(roads) != 2 || roads[0].Name != "Ann" || roads[1].Name != "Dee" {
		t.Fatalf("Roads view: %+v", roads)
	}
	if got := s.View("Parks"); got == nil || len(got) != 0 {
		t.Fatalf("Parks view should be empty, got %#v", got)
	}

	d := s.Distribution()
	if diff := cmp.Diff(map[string]int{"Noise": 1, "Roads": 2, "Parks": 0}, d.Counts()); diff != "" {
		t.Fatalf("distribution (-want +got):\n%s", diff)
	}
	if d.Unmatched != 1 {
		t.Fatalf("unmatched = %d", d.Unmatched)
	}

	if _, err := s.AddCategory(context.Background(), "Waste"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := s.Distribution().Labels(); len(got) != 4 || got[3] != "Waste" {
		t.Fatalf("distribution should follow the registry, got %v", got)
	}
}

func TestSessionExport(t *testing.T) {
	ctx := context.Background()
	g := &fakeGateway{subs: sampleSubs, cats: []string{"Roads"}}
	s := NewSession(g)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	saver := &memorySaver{}
	if err := s.Export(ctx, "Noise", saver); err != nil {
		t.Fatalf("export: %v", err)
	}
	if saver.filename != core.ExportFilename {
		t.Fatalf("filename = %q", saver.filename)
	}
	want := "Name,Email,Message,Category\nBob,bob@x.com,barking,Noise\n"
	if string(saver.data) != want {
		t.Fatalf("export = %q, want %q", saver.data, want)
	}

	empty := &memorySaver{}
	if err := s.Export(ctx, "Parks", empty); err != nil {
		t.Fatalf("export empty: %v", err)
	}
	if string(empty.data) != "Name,Email,Message,Category\n" {
		t.Fatalf("empty export = %q", empty.data)
	}

	if err := s.Export(ctx, core.AllCategories, &memorySaver{err: errors.New("disk full")}); err == nil {
		t.Fatal("expected saver error")
	}
}
