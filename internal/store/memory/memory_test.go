package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"complaints/internal/core"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryStoreAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := New([]string{"A", " ", "B", "A"}, []core.Submission{{Name: "n", Category: "A"}})

	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "A"}, cats); diff != "" {
		t.Fatalf("categories (-want +got):\n%s", diff)
	}

	if err := s.AppendCategory(ctx, "C"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendCategory(ctx, "A"); err != nil {
		t.Fatalf("append duplicate: %v", err)
	}
	cats, _ = s.ListCategories(ctx)
	if diff := cmp.Diff([]string{"A", "B", "A", "C", "A"}, cats); diff != "" {
		t.Fatalf("after append (-want +got):\n%s", diff)
	}

	subs, err := s.ListSubmissions(ctx)
	if err != nil || len(subs) != 1 {
		t.Fatalf("unexpected submissions: %v err=%v", subs, err)
	}
}

func TestListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New([]string{"A"}, []core.Submission{{Name: "n"}})
	cats, _ := s.ListCategories(ctx)
	cats[0] = "mutated"
	subs, _ := s.ListSubmissions(ctx)
	subs[0].Name = "mutated"

	cats, _ = s.ListCategories(ctx)
	subs, _ = s.ListSubmissions(ctx)
	if cats[0] != "A" || subs[0].Name != "n" {
		t.Fatalf("store state leaked through returned slices")
	}
}

func TestNewFromFilesSeeds(t *testing.T) {
	dir := t.TempDir()
	// No files -> defaults
	s := NewFromFiles(dir)
	cats, _ := s.ListCategories(context.Background())
	subs, _ := s.ListSubmissions(context.Background())
	if len(cats) == 0 || len(subs) != 0 {
		t.Fatalf("expected default categories and no submissions, got cats=%v subs=%v", cats, subs)
	}

	mustWrite := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	mustWrite("seed_categories.txt", "# header\nRoads\nNoise\nRoads\n\n")
	mustWrite("seed_complaints.csv", "Name,Email,Message,Category\nAnn,ann@x.com,\"pothole, deep\",Roads\nBob,bob@x.com,loud,\n")

	s = NewFromFiles(dir)
	cats, _ = s.ListCategories(context.Background())
	if diff := cmp.Diff([]string{"Roads", "Noise", "Roads"}, cats); diff != "" {
		t.Fatalf("seeded categories (-want +got):\n%s", diff)
	}
	subs, _ = s.ListSubmissions(context.Background())
	want := []core.Submission{
		{Name: "Ann", Email: "ann@x.com", Message: "pothole, deep", Category: "Roads"},
		{Name: "Bob", Email: "bob@x.com", Message: "loud"},
	}
	if diff := cmp.Diff(want, subs); diff != "" {
		t.Fatalf("seeded submissions (-want +got):\n%s", diff)
	}
}
