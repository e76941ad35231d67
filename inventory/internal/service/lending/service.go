package lending

import (
	"context"
	"time"

	"github.com/Astemirdum/inventory-service/inventory/internal/errs"
	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	"github.com/Astemirdum/inventory-service/inventory/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, event model.LendingEvent) error
}

type Service struct {
	log       *zap.Logger
	repo      repository.Repository
	publisher Publisher
	tracer    trace.Tracer
	now       func() time.Time
}

func NewService(repo repository.Repository, publisher Publisher, log *zap.Logger) *Service {
	return &Service{
		log:       log.Named("lending"),
		repo:      repo,
		publisher: publisher,
		tracer:    otel.Tracer("inventory/lending"),
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Borrow lends one unit of the item to the student. The stock decrement and
// the new borrow record commit together or not at all.
func (s *Service) Borrow(ctx context.Context, studentID, itemID int64) (_ model.Borrow, err error) {
	ctx, span := s.tracer.Start(ctx, "lending.Borrow", trace.WithAttributes(
		attribute.Int64("student.id", studentID),
		attribute.Int64("item.id", itemID),
	))
	defer func() { endSpan(span, err) }()

	if studentID <= 0 || itemID <= 0 {
		return model.Borrow{}, errors.Wrap(errs.ErrValidation, "student_id and item_id are required")
	}

	var borrow model.Borrow
	err = s.repo.RunExclusive(ctx, func(tx repository.Repository) error {
		if _, err := tx.GetStudent(ctx, studentID); err != nil {
			return err
		}
		item, err := tx.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errors.Wrapf(errs.ErrOutOfStock, "item %d", itemID)
		}
		if err := tx.TakeItem(ctx, itemID); err != nil {
			return err
		}
		borrow, err = tx.CreateBorrow(ctx, model.Borrow{
			StudentID:  studentID,
			ItemID:     itemID,
			BorrowedAt: s.now(),
		})
		return err
	})
	if err != nil {
		s.log.Debug("borrow refused", zap.Int64("student_id", studentID), zap.Int64("item_id", itemID), zap.Error(err))
		return model.Borrow{}, err
	}

	span.SetAttributes(attribute.Int64("borrow.id", borrow.ID))
	s.log.Info("item borrowed", zap.Int64("borrow_id", borrow.ID), zap.Int64("student_id", studentID), zap.Int64("item_id", itemID))
	s.publish(ctx, model.EventBorrowed, borrow, borrow.BorrowedAt)
	return borrow, nil
}

// ReturnItem closes an active borrow and puts the unit back into stock.
func (s *Service) ReturnItem(ctx context.Context, borrowID int64) (_ model.Borrow, err error) {
	ctx, span := s.tracer.Start(ctx, "lending.ReturnItem", trace.WithAttributes(
		attribute.Int64("borrow.id", borrowID),
	))
	defer func() { endSpan(span, err) }()

	if borrowID <= 0 {
		return model.Borrow{}, errors.Wrap(errs.ErrValidation, "borrow_id is required")
	}

	var borrow model.Borrow
	err = s.repo.RunExclusive(ctx, func(tx repository.Repository) error {
		current, err := tx.GetBorrow(ctx, borrowID)
		if err != nil {
			return err
		}
		if current.Returned {
			return errors.Wrapf(errs.ErrAlreadyReturned, "borrow %d", borrowID)
		}
		if borrow, err = tx.MarkReturned(ctx, borrowID, s.now()); err != nil {
			return err
		}
		return tx.PutItem(ctx, borrow.ItemID)
	})
	if err != nil {
		s.log.Debug("return refused", zap.Int64("borrow_id", borrowID), zap.Error(err))
		return model.Borrow{}, err
	}

	s.log.Info("item returned", zap.Int64("borrow_id", borrow.ID), zap.Int64("item_id", borrow.ItemID))
	occurredAt := s.now()
	if borrow.ReturnedAt != nil {
		occurredAt = *borrow.ReturnedAt
	}
	s.publish(ctx, model.EventReturned, borrow, occurredAt)
	return borrow, nil
}

func (s *Service) ListBorrows(ctx context.Context) ([]model.BorrowView, error) {
	return s.repo.ListBorrows(ctx)
}

// publish runs after commit; a lost event never rolls back stock.
func (s *Service) publish(ctx context.Context, typ model.EventType, borrow model.Borrow, at time.Time) {
	if s.publisher == nil {
		return
	}
	event := model.LendingEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		BorrowID:   borrow.ID,
		StudentID:  borrow.StudentID,
		ItemID:     borrow.ItemID,
		OccurredAt: at,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish lending event", zap.String("type", string(typ)), zap.Int64("borrow_id", borrow.ID), zap.Error(err))
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
