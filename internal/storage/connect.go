package storage

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/config"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
)

// DataSourceName builds the driver DSN for env. Without withDatabase the DSN
// targets the server rather than the application database.
func DataSourceName(env *config.Config, dialect sqlconfig.Dialect, withDatabase bool) string {
	switch dialect.Name() {
	case sqlconfig.NamePostgres:
		database := "postgres"
		if withDatabase {
			database = env.PostgresDB
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(env.PostgresUsername, env.PostgresPassword),
			Host:     net.JoinHostPort(env.PostgresAddress, env.PostgresPort),
			Path:     "/" + database,
			RawQuery: "sslmode=disable",
		}
		return u.String()

	case sqlconfig.NameSQLite:
		return "file:" + env.SQLitePath + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	default:
		cfg := mysqldriver.NewConfig()
		cfg.User = env.MySQLUser
		cfg.Passwd = env.MySQLPassword
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(env.MySQLHost, env.MySQLPort)
		if withDatabase {
			cfg.DBName = env.MySQLDatabase
		}
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		return cfg.FormatDSN()
	}
}

func openDB(env *config.Config, dialect sqlconfig.Dialect, withDatabase bool) (*sql.DB, error) {
	db, err := sql.Open(dialect.DriverName(), DataSourceName(env, dialect, withDatabase))
	if err != nil {
		return nil, &ConnectionError{Err: fmt.Errorf("sql.Open: %w", err)}
	}

	if dialect.Name() == sqlconfig.NameSQLite {
		// SQLite serializes writers.
		db.SetMaxOpenConns(1)
		return db, nil
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}
