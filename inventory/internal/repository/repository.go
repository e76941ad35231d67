package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Astemirdum/inventory-service/inventory/internal/errs"
	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Repository interface {
	CreateStudent(ctx context.Context, student model.Student) (model.Student, error)
	GetStudent(ctx context.Context, id int64) (model.Student, error)
	ListStudents(ctx context.Context) ([]model.Student, error)

	CreateItem(ctx context.Context, item model.Item) (model.Item, error)
	GetItem(ctx context.Context, id int64) (model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	// TakeItem removes one unit from stock, failing with errs.ErrOutOfStock at zero.
	TakeItem(ctx context.Context, itemID int64) error
	// PutItem puts one unit back into stock.
	PutItem(ctx context.Context, itemID int64) error

	CreateBorrow(ctx context.Context, borrow model.Borrow) (model.Borrow, error)
	GetBorrow(ctx context.Context, id int64) (model.Borrow, error)
	ListBorrows(ctx context.Context) ([]model.BorrowView, error)
	// MarkReturned flips an active borrow to returned, failing with
	// errs.ErrAlreadyReturned if it is not active any more.
	MarkReturned(ctx context.Context, borrowID int64, at time.Time) (model.Borrow, error)

	// RunExclusive runs fn inside one transaction. fn must only use the
	// repository it is given.
	RunExclusive(ctx context.Context, fn func(repo Repository) error) error
}

type repository struct {
	db  *sqlx.DB
	q   sqlx.ExtContext
	qb  sq.StatementBuilderType
	log *zap.Logger
	// txOpts is nil on SQLite, which serializes writers by itself.
	txOpts *sql.TxOptions
	inTx   bool

	maxAttempts int
	baseDelay   time.Duration
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	qb := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	txOpts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	if db.DriverName() == "sqlite3" {
		qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		txOpts = nil
	}
	return &repository{
		db:          db,
		q:           db,
		qb:          qb,
		log:         log.Named("repo"),
		txOpts:      txOpts,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
	}, nil
}

const (
	studentsTableName = `students`
	itemsTableName    = `items`
	borrowsTableName  = `borrows`
)

var (
	studentColumns = []string{"id", "name", "type", "created_at"}
	itemColumns    = []string{"id", "title", "quantity", "created_at"}
	borrowColumns  = []string{"id", "student_id", "item_id", "borrowed_at", "returned_at", "returned"}
)

func (r *repository) CreateStudent(ctx context.Context, student model.Student) (model.Student, error) {
	q, args, err := r.qb.Insert(studentsTableName).
		Columns("name", "type", "created_at").
		Values(student.Name, student.Type, student.CreatedAt).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Student{}, err
	}
	if err := sqlx.GetContext(ctx, r.q, &student.ID, q, args...); err != nil {
		r.log.Error("CreateStudent", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return model.Student{}, mapErr(err)
	}
	return student, nil
}

func (r *repository) GetStudent(ctx context.Context, id int64) (model.Student, error) {
	q, args, err := r.qb.Select(studentColumns...).
		From(studentsTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Student{}, err
	}
	var student model.Student
	if err := sqlx.GetContext(ctx, r.q, &student, q, args...); err != nil {
		return model.Student{}, errors.Wrapf(mapErr(err), "student %d", id)
	}
	return student, nil
}

func (r *repository) ListStudents(ctx context.Context) ([]model.Student, error) {
	q, args, err := r.qb.Select(studentColumns...).
		From(studentsTableName).
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, err
	}
	students := make([]model.Student, 0)
	if err := sqlx.SelectContext(ctx, r.q, &students, q, args...); err != nil {
		return nil, mapErr(err)
	}
	return students, nil
}

func (r *repository) CreateItem(ctx context.Context, item model.Item) (model.Item, error) {
	q, args, err := r.qb.Insert(itemsTableName).
		Columns("title", "quantity", "created_at").
		Values(item.Title, item.Quantity, item.CreatedAt).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	if err := sqlx.GetContext(ctx, r.q, &item.ID, q, args...); err != nil {
		r.log.Error("CreateItem", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return model.Item{}, mapErr(err)
	}
	return item, nil
}

func (r *repository) GetItem(ctx context.Context, id int64) (model.Item, error) {
	q, args, err := r.qb.Select(itemColumns...).
		From(itemsTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	var item model.Item
	if err := sqlx.GetContext(ctx, r.q, &item, q, args...); err != nil {
		return model.Item{}, errors.Wrapf(mapErr(err), "item %d", id)
	}
	return item, nil
}

func (r *repository) ListItems(ctx context.Context) ([]model.Item, error) {
	q, args, err := r.qb.Select(itemColumns...).
		From(itemsTableName).
		OrderBy("title", "id").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0)
	if err := sqlx.SelectContext(ctx, r.q, &items, q, args...); err != nil {
		return nil, mapErr(err)
	}
	return items, nil
}

func (r *repository) TakeItem(ctx context.Context, itemID int64) error {
	q, args, err := r.qb.Update(itemsTableName).
		Set("quantity", sq.Expr("quantity - 1")).
		Where(sq.Eq{"id": itemID}).
		Where(sq.Gt{"quantity": 0}).
		ToSql()
	if err != nil {
		return err
	}
	n, err := r.exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(errs.ErrOutOfStock, "item %d", itemID)
	}
	return nil
}

func (r *repository) PutItem(ctx context.Context, itemID int64) error {
	q, args, err := r.qb.Update(itemsTableName).
		Set("quantity", sq.Expr("quantity + 1")).
		Where(sq.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return err
	}
	n, err := r.exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(errs.ErrNotFound, "item %d", itemID)
	}
	return nil
}

func (r *repository) CreateBorrow(ctx context.Context, borrow model.Borrow) (model.Borrow, error) {
	q, args, err := r.qb.Insert(borrowsTableName).
		Columns("student_id", "item_id", "borrowed_at", "returned").
		Values(borrow.StudentID, borrow.ItemID, borrow.BorrowedAt, false).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Borrow{}, err
	}
	if err := sqlx.GetContext(ctx, r.q, &borrow.ID, q, args...); err != nil {
		r.log.Error("CreateBorrow", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return model.Borrow{}, mapErr(err)
	}
	borrow.Returned = false
	borrow.ReturnedAt = nil
	return borrow, nil
}

func (r *repository) GetBorrow(ctx context.Context, id int64) (model.Borrow, error) {
	q, args, err := r.qb.Select(borrowColumns...).
		From(borrowsTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Borrow{}, err
	}
	var borrow model.Borrow
	if err := sqlx.GetContext(ctx, r.q, &borrow, q, args...); err != nil {
		return model.Borrow{}, errors.Wrapf(mapErr(err), "borrow %d", id)
	}
	return borrow, nil
}

func (r *repository) MarkReturned(ctx context.Context, borrowID int64, at time.Time) (model.Borrow, error) {
	q, args, err := r.qb.Update(borrowsTableName).
		Set("returned", true).
		Set("returned_at", at).
		Where(sq.Eq{"id": borrowID}).
		Where(sq.Eq{"returned": false}).
		ToSql()
	if err != nil {
		return model.Borrow{}, err
	}
	n, err := r.exec(ctx, q, args...)
	if err != nil {
		return model.Borrow{}, err
	}
	if n == 0 {
		if _, err := r.GetBorrow(ctx, borrowID); err != nil {
			return model.Borrow{}, err
		}
		return model.Borrow{}, errors.Wrapf(errs.ErrAlreadyReturned, "borrow %d", borrowID)
	}
	return r.GetBorrow(ctx, borrowID)
}

func (r *repository) ListBorrows(ctx context.Context) ([]model.BorrowView, error) {
	q, args, err := r.qb.Select(
		"b.id", "b.student_id", "b.item_id", "b.borrowed_at", "b.returned_at", "b.returned",
		"s.name as student_name", "s.type as student_type", "i.title as item_title").
		From(borrowsTableName+" b").
		Join(studentsTableName+" s on s.id = b.student_id").
		Join(itemsTableName+" i on i.id = b.item_id").
		OrderBy("b.borrowed_at desc", "b.id desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListBorrows", zap.String("query", q))

	borrows := make([]model.BorrowView, 0)
	if err := sqlx.SelectContext(ctx, r.q, &borrows, q, args...); err != nil {
		return nil, mapErr(err)
	}
	return borrows, nil
}

func (r *repository) exec(ctx context.Context, q string, args ...any) (int64, error) {
	res, err := r.q.ExecContext(ctx, q, args...)
	if err != nil {
		r.log.Error("exec", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return 0, mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "RowsAffected")
	}
	return n, nil
}

var _ Repository = (*repository)(nil)

var (
	_ sqlx.ExtContext = (*sqlx.DB)(nil)
	_ sqlx.ExtContext = (*sqlx.Tx)(nil)
)
