package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/Astemirdum/inventory-service/pkg/migrator"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DriverPgx = "pgx"
	// DriverPQ selects lib/pq.
	DriverPQ = "postgres"
)

type DB struct {
	Driver   string `yaml:"driver" envconfig:"DB_DRIVER" default:"pgx"`
	Host     string `yaml:"host" envconfig:"DB_HOST" default:"localhost"`
	Port     string `yaml:"port" envconfig:"DB_PORT" default:"5432"`
	User     string `yaml:"user" envconfig:"DB_USER" default:"postgres"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD" json:"-"`
	NameDB   string `yaml:"dbname" envconfig:"DB_NAME" default:"inventory"`
	SSLMode  string `yaml:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

func (cfg *DB) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.NameDB, cfg.SSLMode)
}

func NewPostgresDB(ctx context.Context, cfg *DB, migrationFiles fs.FS, log *zap.Logger) (*sqlx.DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverPgx
	}
	if driver != DriverPgx && driver != DriverPQ {
		return nil, errors.Errorf("unsupported postgres driver %q", driver)
	}

	db, err := sqlx.Open(driver, cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "sqlx.Open")
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "db.Ping")
	}

	if migrationFiles != nil {
		if err = migrator.Up(db.DB, "postgres", migrationFiles, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}
