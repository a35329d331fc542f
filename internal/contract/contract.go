// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/orderscope/orderscope/schema"
)

// HistoryStore defines the interface for recording analysis runs.
// This allows the history layer to be mocked for testing.
type HistoryStore interface {
	// RecordRun persists one completed analysis run.
	RecordRun(ctx context.Context, rec schema.RunRecord) error

	// ListRuns returns the most recent runs, newest first, up to limit.
	ListRuns(ctx context.Context, limit int) ([]StoredRun, error)

	// Clear removes every recorded run.
	Clear(ctx context.Context) error

	// GetStatus returns status information about the history store.
	GetStatus(ctx context.Context) (HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoredRun is a RunRecord read back from the store, with its row identity.
type StoredRun struct {
	ID        int64            `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Record    schema.RunRecord `json:"record"`
}

// HistoryStatus holds status information about the history store.
type HistoryStatus struct {
	Backend  schema.DatabaseBackend `json:"backend"`
	Location string                 `json:"location"`
	RunCount int64                  `json:"run_count"`
}
