package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/Astemirdum/inventory-service/inventory/internal/errs"
	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	"github.com/Astemirdum/inventory-service/inventory/internal/repository"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	tracer trace.Tracer
	now    func() time.Time
}

func NewService(repo repository.Repository, log *zap.Logger) *Service {
	return &Service{
		log:    log.Named("catalog"),
		repo:   repo,
		tracer: otel.Tracer("inventory/catalog"),
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// AddStudent registers a student. A blank type means free membership.
func (s *Service) AddStudent(ctx context.Context, name string, typ model.MembershipType) (_ model.Student, err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.AddStudent")
	defer func() { endSpan(span, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return model.Student{}, errors.Wrap(errs.ErrValidation, "name is required")
	}
	typ = model.MembershipType(strings.TrimSpace(string(typ)))
	if typ == "" {
		typ = model.MembershipFree
	}
	if !typ.Valid() {
		return model.Student{}, errors.Wrapf(errs.ErrValidation, "unknown membership type %q", typ)
	}

	student, err := s.repo.CreateStudent(ctx, model.Student{
		Name:      name,
		Type:      typ,
		CreatedAt: s.now(),
	})
	if err != nil {
		return model.Student{}, errors.Wrap(err, "CreateStudent")
	}
	span.SetAttributes(attribute.Int64("student.id", student.ID))
	s.log.Debug("student added", zap.Int64("id", student.ID), zap.String("type", string(student.Type)))
	return student, nil
}

// AddItem puts a new item into the catalog. Negative quantities become zero.
func (s *Service) AddItem(ctx context.Context, title string, qty int) (_ model.Item, err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.AddItem")
	defer func() { endSpan(span, err) }()

	title = strings.TrimSpace(title)
	if title == "" {
		return model.Item{}, errors.Wrap(errs.ErrValidation, "title is required")
	}
	if qty < 0 {
		qty = 0
	}

	item, err := s.repo.CreateItem(ctx, model.Item{
		Title:     title,
		Quantity:  qty,
		CreatedAt: s.now(),
	})
	if err != nil {
		return model.Item{}, errors.Wrap(err, "CreateItem")
	}
	span.SetAttributes(attribute.Int64("item.id", item.ID), attribute.Int("item.quantity", item.Quantity))
	s.log.Debug("item added", zap.Int64("id", item.ID), zap.Int("quantity", item.Quantity))
	return item, nil
}

func (s *Service) ListStudents(ctx context.Context) ([]model.Student, error) {
	return s.repo.ListStudents(ctx)
}

func (s *Service) ListItems(ctx context.Context) ([]model.Item, error) {
	return s.repo.ListItems(ctx)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
