package sqlconfig

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

type Postgres struct{}

func (Postgres) Name() string       { return NamePostgres }
func (Postgres) DriverName() string { return "postgres" }

func (Postgres) QuoteIdent(identifier string) string {
	return quoteWith(identifier, `"`)
}

func (Postgres) ColumnType(kind ColumnKind) string {
	switch kind {
	case KindInteger:
		return "BIGINT"
	case KindDecimal:
		return "NUMERIC"
	default:
		return "TEXT"
	}
}

func (Postgres) TransactionalDDL() bool { return true }

func (Postgres) MaxParams() int { return 65535 }

func (p Postgres) TransactionsDDL(table string) []string {
	quoted := p.QuoteIdent(table)
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id SERIAL PRIMARY KEY,
	type VARCHAR(16) NOT NULL CHECK (type IN (%s)),
	date DATE NOT NULL,
	item VARCHAR(255) NOT NULL,
	amount NUMERIC(15,2) NOT NULL,
	currency VARCHAR(10) NOT NULL DEFAULT 'PHP',
	category VARCHAR(100) NOT NULL,
	account VARCHAR(100) NOT NULL,
	status VARCHAR(50) NOT NULL DEFAULT 'Reconciled',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, quoted, typeList()),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (date)", p.QuoteIdent(table+"_date_idx"), quoted),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (category)", p.QuoteIdent(table+"_category_idx"), quoted),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (account)", p.QuoteIdent(table+"_account_idx"), quoted),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (type)", p.QuoteIdent(table+"_type_idx"), quoted),
	}
}

// CreateDatabaseSQL has no IF NOT EXISTS form on PostgreSQL; callers check
// pg_database first.
func (p Postgres) CreateDatabaseSQL(name string) string {
	return "CREATE DATABASE " + p.QuoteIdent(name)
}

func (Postgres) Insert(table string, columns []string, rows [][]any) bob.Query {
	mods := []bob.Mod[*dialect.InsertQuery]{im.Into(psql.Quote(table), columns...)}
	for _, row := range rows {
		mods = append(mods, im.Values(psql.Arg(row...)))
	}
	return psql.Insert(mods...)
}

func (Postgres) DeleteAll(table string) bob.Query {
	return psql.Delete(dm.From(psql.Quote(table)))
}

func (Postgres) Select(table string, columns []string, orderBy string, desc bool, limit int) bob.Query {
	mods := []bob.Mod[*dialect.SelectQuery]{sm.From(psql.Quote(table))}
	for _, c := range columns {
		mods = append(mods, sm.Columns(psql.Quote(c)))
	}
	if orderBy != "" {
		if desc {
			mods = append(mods, sm.OrderBy(psql.Quote(orderBy)).Desc())
		} else {
			mods = append(mods, sm.OrderBy(psql.Quote(orderBy)).Asc())
		}
	}
	if limit > 0 {
		mods = append(mods, sm.Limit(limit))
	}
	return psql.Select(mods...)
}

func (Postgres) DateArg(t time.Time) any { return t.UTC() }
func (Postgres) TimeArg(t time.Time) any { return t.UTC() }

// IsConstraintViolation matches integrity (23) and data exception (22) classes.
func (Postgres) IsConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	class := pqErr.Code.Class()
	return class == "23" || class == "22"
}

func (Postgres) IsConnectionFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08"
	}
	return errors.Is(err, driver.ErrBadConn)
}
