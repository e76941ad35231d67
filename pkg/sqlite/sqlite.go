package sqlite

import (
	"context"
	"io/fs"

	"github.com/Astemirdum/inventory-service/pkg/migrator"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	Driver = "sqlite3"
	Memory = ":memory:"
)

// NewSQLiteDB opens a single-connection database. In-memory databases live per
// connection, so the pool must never grow beyond one.
func NewSQLiteDB(ctx context.Context, path string, migrationFiles fs.FS, log *zap.Logger) (*sqlx.DB, error) {
	if path == "" {
		path = Memory
	}
	dsn := path
	if path != Memory {
		dsn = "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
	}
	db, err := sqlx.Open(Driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "sqlx.Open")
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "db.Ping")
	}
	if _, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "foreign_keys")
	}

	if migrationFiles != nil {
		if err = migrator.Up(db.DB, "sqlite3", migrationFiles, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}
