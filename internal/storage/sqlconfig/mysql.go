package sqlconfig

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/mysql"
	"github.com/stephenafamo/bob/dialect/mysql/dialect"
	"github.com/stephenafamo/bob/dialect/mysql/dm"
	"github.com/stephenafamo/bob/dialect/mysql/im"
	"github.com/stephenafamo/bob/dialect/mysql/sm"
)

// MySQL error numbers raised when a row breaks a column or key constraint.
var mysqlConstraintErrors = map[uint16]bool{
	1048: true, // column cannot be null
	1062: true, // duplicate entry
	1264: true, // out of range value
	1265: true, // data truncated (invalid ENUM in strict mode)
	1292: true, // incorrect date value
	1366: true, // incorrect value for column
	1406: true, // data too long
	1451: true,
	1452: true,
	3819: true, // check constraint violated
}

type MySQL struct{}

func (MySQL) Name() string       { return NameMySQL }
func (MySQL) DriverName() string { return "mysql" }

func (MySQL) QuoteIdent(identifier string) string {
	return quoteWith(identifier, "`")
}

func (MySQL) ColumnType(kind ColumnKind) string {
	switch kind {
	case KindInteger:
		return "BIGINT"
	case KindDecimal:
		return "DECIMAL(20,6)"
	default:
		return "TEXT"
	}
}

func (MySQL) TransactionalDDL() bool { return false }

func (MySQL) MaxParams() int { return 65535 }

func (m MySQL) TransactionsDDL(table string) []string {
	return []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id INT AUTO_INCREMENT PRIMARY KEY,
	type ENUM(%s) NOT NULL,
	date DATE NOT NULL,
	item VARCHAR(255) NOT NULL,
	amount DECIMAL(15,2) NOT NULL,
	currency VARCHAR(10) NOT NULL DEFAULT 'PHP',
	category VARCHAR(100) NOT NULL,
	account VARCHAR(100) NOT NULL,
	status VARCHAR(50) NOT NULL DEFAULT 'Reconciled',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	INDEX idx_date (date),
	INDEX idx_category (category),
	INDEX idx_account (account),
	INDEX idx_type (type)
)`, m.QuoteIdent(table), typeList())}
}

func (m MySQL) CreateDatabaseSQL(name string) string {
	return "CREATE DATABASE IF NOT EXISTS " + m.QuoteIdent(name)
}

func (MySQL) Insert(table string, columns []string, rows [][]any) bob.Query {
	mods := []bob.Mod[*dialect.InsertQuery]{im.Into(mysql.Quote(table), columns...)}
	for _, row := range rows {
		mods = append(mods, im.Values(mysql.Arg(row...)))
	}
	return mysql.Insert(mods...)
}

func (MySQL) DeleteAll(table string) bob.Query {
	return mysql.Delete(dm.From(mysql.Quote(table)))
}

func (MySQL) Select(table string, columns []string, orderBy string, desc bool, limit int) bob.Query {
	mods := []bob.Mod[*dialect.SelectQuery]{sm.From(mysql.Quote(table))}
	for _, c := range columns {
		mods = append(mods, sm.Columns(mysql.Quote(c)))
	}
	if orderBy != "" {
		if desc {
			mods = append(mods, sm.OrderBy(mysql.Quote(orderBy)).Desc())
		} else {
			mods = append(mods, sm.OrderBy(mysql.Quote(orderBy)).Asc())
		}
	}
	if limit > 0 {
		mods = append(mods, sm.Limit(int64(limit)))
	}
	return mysql.Select(mods...)
}

func (MySQL) DateArg(t time.Time) any { return t.UTC() }
func (MySQL) TimeArg(t time.Time) any { return t.UTC() }

func (MySQL) IsConstraintViolation(err error) bool {
	var myErr *mysqldriver.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	return mysqlConstraintErrors[myErr.Number]
}

func (MySQL) IsConnectionFailure(err error) bool {
	return errors.Is(err, mysqldriver.ErrInvalidConn) || errors.Is(err, driver.ErrBadConn)
}
