// Package store is the pgx-backed persistence layer for the fleet
// ledger. It exposes three narrow surfaces:
//
//   - config documents: whole-document JSON load/save for the three
//     schema registries (exclusions, aliases, categories), keyed by
//     reserved numeric ids in the app_config table
//   - the vehicle record shape: the raw column list of the wide
//     vehiculos table and single-vehicle snapshots
//   - a config-change audit trail
//
// The core never issues SQL itself; it depends on this package through
// small interfaces so tests can substitute fakes.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// ErrConfigNotFound is returned when no stored document exists for a
// config id. Callers treat it as "use defaults", not as a failure.
var ErrConfigNotFound = errors.New("config document not found")

// Store wraps a database handle with the ledger's queries.
type Store struct {
	db DBTX
}

// New creates a Store over a pool or transaction.
func New(db DBTX) *Store {
	return &Store{db: db}
}
