package sqlconfig

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dialect"
	"github.com/stephenafamo/bob/dialect/sqlite/dm"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteTimeLayout is the text form of timestamps stored in SQLite.
const SQLiteTimeLayout = "2006-01-02 15:04:05.000"

type SQLite struct{}

func (SQLite) Name() string       { return NameSQLite }
func (SQLite) DriverName() string { return "sqlite" }

func (SQLite) QuoteIdent(identifier string) string {
	return quoteWith(identifier, `"`)
}

func (SQLite) ColumnType(kind ColumnKind) string {
	switch kind {
	case KindInteger:
		return "INTEGER"
	case KindDecimal:
		return "NUMERIC"
	default:
		return "TEXT"
	}
}

func (SQLite) TransactionalDDL() bool { return true }

func (SQLite) MaxParams() int { return 32766 }

// TransactionsDDL spells bounded lengths as CHECK constraints since SQLite does
// not enforce VARCHAR sizes.
func (s SQLite) TransactionsDDL(table string) []string {
	quoted := s.QuoteIdent(table)
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type TEXT NOT NULL CHECK (type IN (%s)),
	date DATE NOT NULL,
	item VARCHAR(255) NOT NULL CHECK (length(item) <= 255),
	amount DECIMAL(15,2) NOT NULL,
	currency VARCHAR(10) NOT NULL DEFAULT 'PHP' CHECK (length(currency) <= 10),
	category VARCHAR(100) NOT NULL CHECK (length(category) <= 100),
	account VARCHAR(100) NOT NULL CHECK (length(account) <= 100),
	status VARCHAR(50) NOT NULL DEFAULT 'Reconciled' CHECK (length(status) <= 50),
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, quoted, typeList()),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (date)", s.QuoteIdent(table+"_date_idx"), quoted),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (category)", s.QuoteIdent(table+"_category_idx"), quoted),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (account)", s.QuoteIdent(table+"_account_idx"), quoted),
	}
}

// CreateDatabaseSQL is empty: the database file is created on first open.
func (SQLite) CreateDatabaseSQL(string) string {
	return ""
}

func (SQLite) Insert(table string, columns []string, rows [][]any) bob.Query {
	mods := []bob.Mod[*dialect.InsertQuery]{im.Into(sqlite.Quote(table), columns...)}
	for _, row := range rows {
		mods = append(mods, im.Values(sqlite.Arg(row...)))
	}
	return sqlite.Insert(mods...)
}

func (SQLite) DeleteAll(table string) bob.Query {
	return sqlite.Delete(dm.From(sqlite.Quote(table)))
}

func (SQLite) Select(table string, columns []string, orderBy string, desc bool, limit int) bob.Query {
	mods := []bob.Mod[*dialect.SelectQuery]{sm.From(sqlite.Quote(table))}
	for _, c := range columns {
		mods = append(mods, sm.Columns(sqlite.Quote(c)))
	}
	if orderBy != "" {
		if desc {
			mods = append(mods, sm.OrderBy(sqlite.Quote(orderBy)).Desc())
		} else {
			mods = append(mods, sm.OrderBy(sqlite.Quote(orderBy)).Asc())
		}
	}
	if limit > 0 {
		mods = append(mods, sm.Limit(limit))
	}
	return sqlite.Select(mods...)
}

func (SQLite) DateArg(t time.Time) any { return t.UTC().Format("2006-01-02") }
func (SQLite) TimeArg(t time.Time) any { return t.UTC().Format(SQLiteTimeLayout) }

func (SQLite) IsConstraintViolation(err error) bool {
	var sqlErr *sqlitedriver.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	return sqlErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

func (SQLite) IsConnectionFailure(err error) bool {
	var sqlErr *sqlitedriver.Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code()&0xff == sqlite3.SQLITE_CANTOPEN
	}
	return errors.Is(err, driver.ErrBadConn)
}
