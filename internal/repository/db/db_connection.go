package db

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Driver names registered by the imported drivers.
const (
	sqliteDriverName   = "sqlite"
	postgresDriverName = "pgx"
)

// Options configures the connection pool.
type Options struct {
	URL             string
	AutoMigrate     bool
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// ParseURL maps a database URL to a driver name and a driver DSN.
// postgres:// and postgresql:// select pgx; everything else is a SQLite path,
// optionally prefixed with sqlite://.
func ParseURL(url string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgresDriverName, url
	case strings.HasPrefix(url, "sqlite://"):
		rest := strings.TrimPrefix(url, "sqlite://")
		// sqlite:///relative.db and sqlite:////abs/path.db
		rest = strings.TrimPrefix(rest, "/")
		return sqliteDriverName, rest
	default:
		return sqliteDriverName, url
	}
}

// Open connects to the database named by opts.URL, applies driver-specific
// settings and, if requested, creates the tables.
func Open(opts Options) (*sqlx.DB, error) {
	driver, dsn := ParseURL(opts.URL)
	if dsn == "" {
		return nil, fmt.Errorf("empty database dsn in %q", opts.URL)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	switch driver {
	case sqliteDriverName:
		err = configureSQLite(db)
	default:
		configurePool(db, opts)
	}
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if opts.AutoMigrate {
		if err := EnsureSchema(db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func configurePool(db *sqlx.DB, opts Options) {
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxOpenConns)
	}
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
}

// configureSQLite pins the pool to a single long-lived connection. Pragmas are
// per connection, and an in-memory database lives only as long as its connection.
func configureSQLite(db *sqlx.DB) error {
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("set %s: %w", strings.TrimSuffix(pragma, ";"), err)
		}
	}
	return nil
}
