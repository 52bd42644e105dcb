package service

import (
	"context"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/config"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/operator"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/operator/actions"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/rawtransaction"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/transaction"
)

// LoaderService persists raw and cleaned tables. Every write is one operator
// action, so it runs in its own transaction behind the single writer.
type LoaderService struct {
	env       *config.Config
	storage   *storage.Storage
	delegator *operator.OperatorDelegator
}

func NewLoaderService(env *config.Config, store *storage.Storage, delegator *operator.OperatorDelegator) *LoaderService {
	return &LoaderService{env: env, storage: store, delegator: delegator}
}

// SyncResult reports what a raw load followed by a sync wrote.
type SyncResult struct {
	RawRows     int
	CleanedRows int
}

// Load writes t into destination and returns the number of rows written.
func (s *LoaderService) Load(ctx context.Context, t *model.Table, destination string, mode model.LoadMode) (int, error) {
	load := &actions.LoadRaw{Table: t, Destination: destination, Mode: mode}
	if err := s.delegator.Process(ctx, load); err != nil {
		return 0, err
	}
	return load.Loaded, nil
}

// SyncCleaned rebuilds the cleaned table from raw_transactions and returns the
// number of cleaned rows.
func (s *LoaderService) SyncCleaned(ctx context.Context) (int, error) {
	sync := &actions.SyncCleaned{}
	if err := s.delegator.Process(ctx, sync); err != nil {
		return 0, err
	}
	return sync.Inserted, nil
}

// LoadAndSync loads t into raw_transactions and rebuilds the cleaned table in
// the same transaction.
func (s *LoaderService) LoadAndSync(ctx context.Context, t *model.Table, mode model.LoadMode) (*SyncResult, error) {
	load := &actions.LoadRaw{Table: t, Mode: mode}
	sync := &actions.SyncCleaned{}
	if err := s.delegator.Process(ctx, actions.Sequence{load, sync}); err != nil {
		return nil, err
	}
	return &SyncResult{RawRows: load.Loaded, CleanedRows: sync.Inserted}, nil
}

// Drop removes the named tables. Missing tables are ignored.
func (s *LoaderService) Drop(ctx context.Context, names ...string) error {
	return s.delegator.Process(ctx, &actions.DropTable{Names: names})
}

// Clear drops the raw and cleaned tables. Upload history is kept.
func (s *LoaderService) Clear(ctx context.Context) error {
	return s.Drop(ctx, rawtransaction.TableName, transaction.TableName)
}

// CreateStore creates the database if needed and applies migrations.
func (s *LoaderService) CreateStore(ctx context.Context) (*storage.MigrationResult, error) {
	return storage.CreateStore(ctx, s.env)
}

func (s *LoaderService) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}
