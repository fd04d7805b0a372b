package delivery

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	query string
	args  []any
}

type fakeExecer struct {
	calls []execCall
	err   error
}

func (f *fakeExecer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.calls = append(f.calls, execCall{query, args})
	if f.err != nil {
		return nil, f.err
	}
	return driverResult(1), nil
}

type driverResult int64

func (r driverResult) LastInsertId() (int64, error) { return 0, nil }
func (r driverResult) RowsAffected() (int64, error) { return int64(r), nil }

func TestArchiveStore(t *testing.T) {
	db := &fakeExecer{}
	archive := NewArchiveStore(db)
	fixed := time.Date(2026, 10, 16, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	archive.now = func() time.Time { return fixed }

	require.NoError(t, archive.EnsureSchema(context.Background()))
	require.NoError(t, archive.Store(context.Background(), "weekly-report-2026-10-16.txt", "conteúdo"))

	require.Len(t, db.calls, 2)
	assert.Contains(t, db.calls[0].query, "CREATE TABLE IF NOT EXISTS feedback_reports")
	assert.Contains(t, db.calls[1].query, "ON CONFLICT (name)")
	assert.Equal(t, []any{"weekly-report-2026-10-16.txt", "conteúdo", fixed.UTC()}, db.calls[1].args)

	db.err = errors.New("connection reset")
	assert.ErrorContains(t, archive.Store(context.Background(), "x", "y"), "connection reset")
	assert.ErrorContains(t, archive.EnsureSchema(context.Background()), "connection reset")
}

func TestTee(t *testing.T) {
	primary := newMemStore()
	mirror := &fakeExecer{err: errors.New("pg down")}

	tee := NewTee(primary, NewArchiveStore(mirror))
	require.NoError(t, tee.Store(context.Background(), "r.txt", "x"))
	assert.Equal(t, "x", primary.objects["r.txt"])
	assert.Len(t, mirror.calls, 1)

	content, err := tee.Retrieve(context.Background(), "r.txt")
	require.NoError(t, err)
	assert.Equal(t, "x", content)

	primary.err = errors.New("s3 down")
	assert.Error(t, tee.Store(context.Background(), "r.txt", "x"))
	assert.Len(t, mirror.calls, 1)
}
