package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/time-service/internal/persistence"
)

// DB is the query surface shared by *pgxpool.Pool and pgx.Tx, so the same
// repository code runs inside and outside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repositories groups the stores a workflow operates on.
type Repositories interface {
	Entries() EntryRepository
	Departments() DepartmentRepository
}

// UnitOfWork runs a function against repositories bound to a single transaction.
type UnitOfWork interface {
	Repositories
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}

// Store is the Postgres-backed UnitOfWork.
type Store struct {
	db          DB
	entries     EntryRepository
	departments DepartmentRepository
}

// NewStore builds repositories over db.
func NewStore(db DB) *Store {
	return &Store{
		db:          db,
		entries:     NewEntryRepository(db),
		departments: NewDepartmentRepository(db),
	}
}

func (s *Store) Entries() EntryRepository {
	return s.entries
}

func (s *Store) Departments() DepartmentRepository {
	return s.departments
}

// WithinTx commits when fn succeeds and rolls back otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(Repositories) error) error {
	return persistence.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(NewStore(tx))
	})
}
