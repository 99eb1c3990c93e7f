package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKey is returned when an operation violates referential
	// integrity, e.g. deleting a spot or customer that reservations still
	// reference.
	ErrForeignKey = errors.New("record is referenced by other records")
)

// SQLExecutor defines an interface that can be satisfied by *sql.DB or *sql.Tx
// This allows repository methods to be used within transactions or with a direct DB connection.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// scanner is an interface satisfied by *sql.Row and *sql.Rows.
// This allows for generic scanning helpers.
type scanner interface {
	Scan(dest ...interface{}) error
}

// TxRunner runs a function inside a database transaction. Services use it to
// make check-then-write sequences atomic without depending on *sql.DB
// directly, which keeps them testable against fake stores.
type TxRunner interface {
	// RunSerializable executes fn inside a SERIALIZABLE transaction,
	// committing on nil error and rolling back otherwise.
	RunSerializable(fn func(tx SQLExecutor) error) error
}

type txRunner struct {
	db *sql.DB
}

// NewTxRunner creates a TxRunner backed by the given database connection.
func NewTxRunner(db *sql.DB) TxRunner {
	return &txRunner{db: db}
}

func (r *txRunner) RunSerializable(fn func(tx SQLExecutor) error) error {
	tx, err := r.db.BeginTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return errors.Join(ErrDatabaseError, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Join(ErrDatabaseError, err)
	}
	return nil
}

// mapPQError translates driver-level constraint violations into the sentinel
// errors above. Returns nil when err is not a recognized constraint violation.
func mapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ErrDuplicateKey
		case "23503": // foreign_key_violation
			return ErrForeignKey
		}
	}
	return nil
}
