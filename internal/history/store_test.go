package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderscope/orderscope/internal/contract"
	"github.com/orderscope/orderscope/schema"
)

func fptr(v float64) *float64 { return &v }

func newSQLiteStore(t *testing.T) contract.HistoryStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecord(keyword string) schema.RunRecord {
	return schema.RunRecord{
		SourceFile:   "orders.csv",
		Keyword:      keyword,
		Scope:        schema.AllMonthsScope,
		TotalOrders:  2,
		AOV:          fptr(70),
		DurationMs:   12,
		RowsScanned:  4,
		MonthBuckets: 2,
	}
}

func TestSQLiteStore_RecordAndList(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, sampleRecord("widget")))
	require.NoError(t, store.RecordRun(ctx, sampleRecord("gadget")))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "gadget", runs[0].Record.Keyword)
	assert.Equal(t, "widget", runs[1].Record.Keyword)
	assert.Greater(t, runs[0].ID, runs[1].ID)
	assert.False(t, runs[0].CreatedAt.IsZero())

	require.NotNil(t, runs[0].Record.AOV)
	assert.Equal(t, 70.0, *runs[0].Record.AOV)
	assert.Equal(t, 4, runs[0].Record.RowsScanned)
}

func TestSQLiteStore_NullAOV(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	rec := sampleRecord("widget")
	rec.AOV = nil
	require.NoError(t, store.RecordRun(ctx, rec))

	runs, err := store.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].Record.AOV)
}

func TestSQLiteStore_ListLimit(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	for range 5 {
		require.NoError(t, store.RecordRun(ctx, sampleRecord("widget")))
	}

	runs, err := store.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestSQLiteStore_ClearAndStatus(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, sampleRecord("widget")))

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, int64(1), status.RunCount)
	assert.NotEmpty(t, status.Location)

	require.NoError(t, store.Clear(ctx))

	status, err = store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), status.RunCount)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.RecordRun(ctx, sampleRecord("widget")))
	require.NoError(t, store.Close())

	// Records survive reopening the same file.
	store, err = NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNoneStore_NoOps(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	assert.NoError(t, store.RecordRun(ctx, sampleRecord("widget")))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	assert.NoError(t, store.Clear(ctx))

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.Equal(t, int64(0), status.RunCount)
}

func TestNewStore_UnsupportedBackend(t *testing.T) {
	_, err := NewStore(schema.DatabaseBackend("redis"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
