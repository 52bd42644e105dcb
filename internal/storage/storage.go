package storage

import (
	"context"
	"database/sql"

	"github.com/stephenafamo/bob"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/config"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
)

type Storage struct {
	DB      bob.DB
	Dialect sqlconfig.Dialect

	sqlDB *sql.DB
	fault FaultInjector
}

type Option func(*Storage)

// WithFaultInjector makes every Writer statement consult f first.
func WithFaultInjector(f FaultInjector) Option {
	return func(s *Storage) {
		s.fault = f
	}
}

// Open connects to the store described by env and verifies it is reachable.
func Open(ctx context.Context, env *config.Config, opts ...Option) (*Storage, error) {
	dialect, err := sqlconfig.Lookup(env.Dialect)
	if err != nil {
		return nil, err
	}

	db, err := openDB(env, dialect, true)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{Err: err}
	}

	return NewStorage(db, dialect, opts...), nil
}

func NewStorage(db *sql.DB, dialect sqlconfig.Dialect, opts ...Option) *Storage {
	s := &Storage{
		DB:      bob.NewDB(db),
		Dialect: dialect,
		sqlDB:   db,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write begins a transaction. The caller must Commit or Rollback the Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, classifyError(s.Dialect, err)
	}

	bobTx := bob.NewTx(tx)
	exec := executor{Executor: bobTx, dialect: s.Dialect, fault: s.fault}
	ddl := exec
	if !s.Dialect.TransactionalDDL() {
		ddl = executor{Executor: s.DB, dialect: s.Dialect, fault: s.fault}
	}

	return NewWriter(bobTx, exec, ddl, s.Dialect), nil
}

// Reader returns read access outside of any transaction.
func (s *Storage) Reader() *Reader {
	return NewReader(executor{Executor: s.DB, dialect: s.Dialect}, s.Dialect)
}

func (s *Storage) Ping(ctx context.Context) error {
	if err := s.sqlDB.PingContext(ctx); err != nil {
		return &ConnectionError{Err: err}
	}
	return nil
}

func (s *Storage) Close() error {
	return s.sqlDB.Close()
}
