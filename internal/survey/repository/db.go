package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pocketbase/dbx"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ============================================================
// Repository
// ============================================================

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

// timeLayout keeps stored timestamps fixed-width so they sort as text.
const timeLayout = "2006-01-02T15:04:05.000000Z"

//go:embed migrations
var migrationsFS embed.FS

type Repository struct {
	db     *dbx.DB
	driver string
	now    func() time.Time
}

func New(db *dbx.DB) *Repository {
	return &Repository{
		db:     db,
		driver: db.DriverName(),
		now:    time.Now,
	}
}

// Open connects to the configured database driver.
func Open(driver, dsn string) (*dbx.DB, error) {
	switch driver {
	case DriverSQLite:
		return OpenSQLite(dsn)
	case DriverPostgres, DriverMySQL:
		if dsn == "" {
			return nil, fmt.Errorf("dsn is required for driver %s", driver)
		}
		return dbx.Open(driver, dsn)
	default:
		return nil, fmt.Errorf("unknown db driver %s", driver)
	}
}

// OpenSQLite opens sqlite at the given path.
func OpenSQLite(dbPath string) (*dbx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbPath)
	sqlDB, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return dbx.NewFromDB(sqlDB, DriverSQLite), nil
}

// Init applies pending migrations for the current driver.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.DB().PingContext(ctx)
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) timestamp() string {
	return r.now().UTC().Format(timeLayout)
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) dialect() (string, error) {
	switch r.driver {
	case DriverSQLite:
		return "sqlite", nil
	case DriverPostgres:
		return "postgres", nil
	case DriverMySQL:
		return "mysql", nil
	}
	return "", fmt.Errorf("no migrations for driver %s", r.driver)
}

func (r *Repository) runMigrations(ctx context.Context) error {
	dialect, err := r.dialect()
	if err != nil {
		return err
	}

	_, err = r.db.NewQuery(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at VARCHAR(40) NOT NULL
	)`).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	dir := path.Join("migrations", dialect)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var applied string
		err := r.db.Select("version").
			From("schema_migrations").
			Where(dbx.HashExp{"version": name}).
			WithContext(ctx).
			Row(&applied)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration %s: %w", name, err)
		}

		data, err := migrationsFS.ReadFile(path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		for _, stmt := range splitStatements(string(data)) {
			if _, err := r.db.NewQuery(stmt).WithContext(ctx).Execute(); err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
		}

		_, err = r.db.Insert("schema_migrations", dbx.Params{
			"version":    name,
			"applied_at": r.timestamp(),
		}).WithContext(ctx).Execute()
		if err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		log.Printf("[DB] applied migration %s/%s", dialect, name)
	}
	return nil
}

func splitStatements(sqlText string) []string {
	var out []string
	for _, stmt := range strings.Split(sqlText, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
