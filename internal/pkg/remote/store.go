// Package remote talks to the hosted PostgreSQL backend. The sync engine is
// the only writer; the restore path is the only reader. Both go through the
// Store interface so tests can substitute a fake.
package remote

import (
	"context"
	"errors"
)

var (
	// ErrUnreachable is returned when the backend cannot be contacted.
	ErrUnreachable = errors.New("remote store unreachable")
)

// Record is one row in its wire form: column name to value.
type Record map[string]interface{}

// Filter matches rows by column equality.
type Filter map[string]interface{}

// Store is the contract the sync engine and restore path depend on.
type Store interface {
	// Upsert inserts records into collection, replacing rows that collide on
	// conflictKey (a single column or a comma-separated composite).
	Upsert(ctx context.Context, collection string, records []Record, conflictKey string) error

	// Insert adds a single record.
	Insert(ctx context.Context, collection string, record Record) error

	// Update sets fields on every row matching filter.
	Update(ctx context.Context, collection string, filter Filter, fields Record) error

	// Delete removes every row matching filter.
	Delete(ctx context.Context, collection string, filter Filter) error

	// Select returns rows matching filter, optionally ordered by orderBy
	// (column name, ascending) and capped at limit (0 means no cap).
	Select(ctx context.Context, collection string, filter Filter, orderBy string, limit int) ([]Record, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
