package backend

import (
	"context"

	"complaints/internal/store"
)

// CleanupFunc releases the resources behind a backend
type CleanupFunc func() error

// BackendResult contains the gateway and an optional cleanup function
type BackendResult struct {
	Gateway store.Gateway
	Cleanup CleanupFunc
}

// Close runs the cleanup function when present.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates gateways based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	MongoBackend  BackendType = "mongo"
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, MongoBackend, SQLiteBackend, SheetsBackend:
		return true
	default:
		return false
	}
}
