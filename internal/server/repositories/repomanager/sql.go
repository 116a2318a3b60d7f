// Package repomanager vends the user repository for the configured database
// driver and runs the embedded goose migrations against it.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/talksy/internal/dbx"
	"github.com/dmitrijs2005/talksy/internal/server/migrations"
	"github.com/dmitrijs2005/talksy/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// SQLRepositoryManager binds repositories to a single SQL dialect.
type SQLRepositoryManager struct {
	driver  string
	dialect string
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	if m.driver == DriverSQLite {
		return users.NewSQLiteRepository(db)
	}
	return users.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// Driver reports the database/sql driver name the manager was built for.
func (m *SQLRepositoryManager) Driver() string {
	return m.driver
}

// NewRepositoryManager returns a manager for driver, which must be
// DriverPostgres or DriverSQLite.
func NewRepositoryManager(driver string) (*SQLRepositoryManager, error) {
	switch driver {
	case DriverPostgres:
		return &SQLRepositoryManager{driver: driver, dialect: "pgx"}, nil
	case DriverSQLite:
		return &SQLRepositoryManager{driver: driver, dialect: "sqlite3"}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
