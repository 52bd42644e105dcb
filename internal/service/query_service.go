package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/queries"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/uploadrun"
)

// QueryService serves the reporting side: named queries, upload history and
// table exports. It only reads.
type QueryService struct {
	storage  *storage.Storage
	resolver queries.Resolver
}

func NewQueryService(store *storage.Storage, resolver queries.Resolver) *QueryService {
	return &QueryService{storage: store, resolver: resolver}
}

func (s *QueryService) runner() *queries.Runner {
	return queries.NewRunner(s.resolver, s.storage.Reader())
}

// Query runs a named query. Unknown names fail with *queries.QueryNotFoundError.
func (s *QueryService) Query(ctx context.Context, name string) (*queries.Result, error) {
	return s.runner().Execute(ctx, name)
}

// QueryLenient runs a named query and returns an empty result on any failure.
func (s *QueryService) QueryLenient(ctx context.Context, name string) *queries.Result {
	return s.runner().ExecuteLenient(ctx, name)
}

// History returns the most recent upload runs, newest first.
func (s *QueryService) History(ctx context.Context, limit int) ([]uploadrun.Run, error) {
	return s.storage.Reader().UploadRuns.List(ctx, limit)
}

// Export writes table as CSV with a header row and returns the number of data rows.
func (s *QueryService) Export(ctx context.Context, table string, w io.Writer) (int, error) {
	t, err := s.storage.Reader().RawTransactions.ReadAll(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", table, err)
	}

	out := csv.NewWriter(w)
	if err := out.Write(t.Columns); err != nil {
		return 0, err
	}
	if err := out.WriteAll(t.Rows); err != nil {
		return 0, err
	}
	return t.Len(), nil
}
