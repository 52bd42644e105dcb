package sqlconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/stephenafamo/bob"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
)

// ColumnKind is the storage class inferred for a raw column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInteger
	KindDecimal
)

func (k ColumnKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	default:
		return "text"
	}
}

// Column is a column definition for tables whose schema is inferred from data.
type Column struct {
	Name string
	Kind ColumnKind
}

// Dialect hides the differences between the supported SQL backends. Statements
// that carry data are built with bob; DDL is plain text since bob builds DML only.
type Dialect interface {
	Name() string
	DriverName() string

	QuoteIdent(identifier string) string
	ColumnType(kind ColumnKind) string
	// MaxParams is the number of bind parameters a single statement may carry.
	MaxParams() int
	// TransactionalDDL reports whether CREATE/DROP can run inside a transaction
	// without committing it.
	TransactionalDDL() bool

	TransactionsDDL(table string) []string
	CreateDatabaseSQL(name string) string

	Insert(table string, columns []string, rows [][]any) bob.Query
	DeleteAll(table string) bob.Query
	Select(table string, columns []string, orderBy string, desc bool, limit int) bob.Query

	DateArg(t time.Time) any
	TimeArg(t time.Time) any

	IsConstraintViolation(err error) bool
	IsConnectionFailure(err error) bool
}

const (
	NameMySQL    = "mysql"
	NamePostgres = "postgres"
	NameSQLite   = "sqlite"
)

// Lookup returns the dialect registered under name.
func Lookup(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case NameMySQL:
		return MySQL{}, nil
	case NamePostgres, "postgresql", "psql":
		return Postgres{}, nil
	case NameSQLite, "sqlite3":
		return SQLite{}, nil
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", name)
	}
}

// CreateTableSQL renders CREATE TABLE IF NOT EXISTS for inferred columns.
func CreateTableSQL(d Dialect, table string, columns []Column) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = d.QuoteIdent(c.Name) + " " + d.ColumnType(c.Kind)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.QuoteIdent(table), strings.Join(defs, ", "))
}

// DropTableSQL renders an idempotent DROP TABLE.
func DropTableSQL(d Dialect, table string) string {
	return "DROP TABLE IF EXISTS " + d.QuoteIdent(table)
}

func quoteWith(identifier string, quote string) string {
	return quote + strings.ReplaceAll(identifier, quote, quote+quote) + quote
}

// typeList renders the accepted transaction types as a SQL value list.
func typeList() string {
	values := make([]string, len(model.TransactionTypes))
	for i, t := range model.TransactionTypes {
		values[i] = "'" + string(t) + "'"
	}
	return strings.Join(values, ",")
}
