package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/focus/internal/db"
)

// FailingExecDBTX wraps a DBTX and fails every ExecContext call from the
// FailFrom-th call onward (counting from 1). Reads pass through, so it
// simulates a store that can still be read but no longer accepts writes.
type FailingExecDBTX struct {
	db.DBTX
	FailFrom int32
	Err      error

	count atomic.Int32
}

func (f *FailingExecDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if f.FailFrom > 0 && n >= f.FailFrom {
		return nil, f.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// Execs reports how many ExecContext calls were attempted.
func (f *FailingExecDBTX) Execs() int {
	return int(f.count.Load())
}
