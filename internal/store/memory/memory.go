package memory

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"complaints/internal/core"
	"complaints/internal/store"
)

// Store is an in-process store.Gateway, handy for local runs and tests.
type Store struct {
	mu   sync.Mutex
	cats []string
	subs []core.Submission
}

var _ store.Gateway = (*Store)(nil)

func New(cats []string, subs []core.Submission) *Store {
	return &Store{
		cats: cleanLabels(cats),
		subs: append([]core.Submission(nil), subs...),
	}
}

// NewFromFiles seeds the store from seed_categories.txt and seed_complaints.csv
// under base. Missing files fall back to a small default category list.
func NewFromFiles(base string) *Store {
	cats := readLines(filepath.Join(base, "seed_categories.txt"))
	if len(cats) == 0 {
		cats = []string{"Roads", "Noise", "Parks", "Waste"}
	}
	return New(cats, readSubmissions(filepath.Join(base, "seed_complaints.csv")))
}

// ListSubmissions returns a copy of every stored submission.
func (s *Store) ListSubmissions(_ context.Context) ([]core.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Submission(nil), s.subs...), nil
}

// ListCategories returns categories in insertion order, duplicates included.
func (s *Store) ListCategories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cats...), nil
}

// AppendCategory stores the label as given.
func (s *Store) AppendCategory(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cats = append(s.cats, name)
	return nil
}

// AddSubmission records a complaint. Used for seeding and by tests.
func (s *Store) AddSubmission(sub core.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func readSubmissions(path string) []core.Submission {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	subs, err := core.ReadCSV(f)
	if err != nil {
		return nil
	}
	return subs
}

// cleanLabels trims labels and drops blanks. Order and duplicates are kept.
func cleanLabels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
