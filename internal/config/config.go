package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Dialect selects the backing store: mysql, postgres or sqlite.
	Dialect string

	MySQLHost     string
	MySQLPort     string
	MySQLUser     string
	MySQLPassword string
	MySQLDatabase string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	SQLitePath string

	// QueriesFile overrides the embedded named query definitions.
	QueriesFile string

	HTTPPort       string
	ImportDir      string
	ImportInterval time.Duration
	LogLevel       logrus.Level
}

// DatabaseName is the name of the database the selected dialect connects to.
func (c *Config) DatabaseName() string {
	switch c.Dialect {
	case "postgres":
		return c.PostgresDB
	case "sqlite":
		return c.SQLitePath
	default:
		return c.MySQLDatabase
	}
}

// ProcessEnvironmentVariables builds the configuration from the environment,
// after loading a .env file from the working directory when one exists.
func ProcessEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// In all cases the default behavior should be for a local MySQL setup
	env := Config{
		Dialect:          "mysql",
		MySQLHost:        "localhost",
		MySQLPort:        "3306",
		MySQLUser:        "root",
		MySQLPassword:    "",
		MySQLDatabase:    "personal_finance_dashboard",
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "personal_finance_dashboard",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		SQLitePath:       "data/personal_finance.db",
		HTTPPort:         "9446",
		ImportDir:        "import",
		ImportInterval:   time.Minute,
		LogLevel:         logrus.InfoLevel,
	}

	override(&env.Dialect, "FINANCE_DB_DIALECT")
	override(&env.MySQLHost, "MYSQL_HOST")
	override(&env.MySQLPort, "MYSQL_PORT")
	override(&env.MySQLUser, "MYSQL_USER")
	override(&env.MySQLPassword, "MYSQL_PASSWORD")
	override(&env.MySQLDatabase, "MYSQL_DATABASE")
	override(&env.PostgresAddress, "POSTGRES_ADDRESS")
	override(&env.PostgresPort, "POSTGRES_PORT")
	override(&env.PostgresDB, "POSTGRES_DB")
	override(&env.PostgresUsername, "POSTGRES_USERNAME")
	override(&env.PostgresPassword, "POSTGRES_PASSWORD")
	override(&env.SQLitePath, "SQLITE_PATH")
	override(&env.QueriesFile, "FINANCE_QUERIES_FILE")
	override(&env.HTTPPort, "FINANCE_HTTP_PORT")
	override(&env.ImportDir, "FINANCE_IMPORT_DIR")

	env.Dialect = strings.ToLower(env.Dialect)
	switch env.Dialect {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("FINANCE_DB_DIALECT: unsupported dialect %q", env.Dialect)
	}

	if interval := os.Getenv("FINANCE_IMPORT_INTERVAL"); len(interval) != 0 {
		parsed, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("FINANCE_IMPORT_INTERVAL: %w", err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("FINANCE_IMPORT_INTERVAL: must be positive, got %s", interval)
		}
		env.ImportInterval = parsed
	}

	if level := os.Getenv("FINANCE_LOG_LEVEL"); len(level) != 0 {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("FINANCE_LOG_LEVEL: %w", err)
		}
		env.LogLevel = parsed
	}

	return &env, nil
}

func override(field *string, key string) {
	if value := os.Getenv(key); len(value) != 0 {
		*field = value
	}
}
