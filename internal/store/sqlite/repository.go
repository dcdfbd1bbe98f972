package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"complaints/internal/core"
	"complaints/internal/store"

	_ "modernc.org/sqlite"
)

const (
	listSubmissionsSQL = `SELECT name, email, message, category FROM complaints ORDER BY id`
	listCategoriesSQL  = `SELECT name FROM categories ORDER BY id`
	insertCategorySQL  = `INSERT INTO categories (name) VALUES (?)`
	insertComplaintSQL = `INSERT INTO complaints (name, email, message, category) VALUES (?, ?, ?, ?)`
)

// Repository is a SQLite backed store.Gateway.
type Repository struct {
	db *sql.DB
}

var _ store.Gateway = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListSubmissions implements store.SubmissionLister
func (r *Repository) ListSubmissions(ctx context.Context) ([]core.Submission, error) {
	rows, err := r.db.QueryContext(ctx, listSubmissionsSQL)
	if err != nil {
		return nil, fmt.Errorf("query complaints: %w", err)
	}
	defer rows.Close()

	var out []core.Submission
	for rows.Next() {
		var s core.Submission
		if err := rows.Scan(&s.Name, &s.Email, &s.Message, &s.Category); err != nil {
			return nil, fmt.Errorf("scan complaint: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate complaints: %w", err)
	}
	return out, nil
}

// ListCategories implements store.CategoryLister
func (r *Repository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

// AppendCategory implements store.CategoryAppender
func (r *Repository) AppendCategory(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, insertCategorySQL, name)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	id, _ := res.LastInsertId()
	slog.InfoContext(ctx, "Category saved to SQLite", "id", id, "category", name)
	return nil
}

// InsertSubmission records a complaint. Complaints are written by the public
// form, so this exists for seeding and tests.
func (r *Repository) InsertSubmission(ctx context.Context, s core.Submission) error {
	if _, err := r.db.ExecContext(ctx, insertComplaintSQL, s.Name, s.Email, s.Message, s.Category); err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}
	return nil
}
