package migrator

import (
	"database/sql"
	"io/fs"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// goose keeps dialect, logger and base FS in package state.
var mu sync.Mutex

func Up(db *sql.DB, dialect string, fsys fs.FS, log *zap.Logger) error {
	mu.Lock()
	defer mu.Unlock()

	goose.SetLogger(gooseLogger{log.Named("migrator").Sugar()})
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "goose.SetDialect")
	}
	if err := goose.Up(db, "."); err != nil {
		return errors.Wrap(err, "goose.Up")
	}
	return nil
}

// gooseLogger adapts zap to goose.Logger.
type gooseLogger struct {
	*zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.Infof(strings.TrimSuffix(format, "\n"), v...)
}

var _ goose.Logger = gooseLogger{}
