package handler

import (
	"context"

	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	"github.com/Astemirdum/inventory-service/inventory/internal/service/catalog"
	"github.com/Astemirdum/inventory-service/inventory/internal/service/lending"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	AddStudent(ctx context.Context, name string, typ model.MembershipType) (model.Student, error)
	AddItem(ctx context.Context, title string, qty int) (model.Item, error)
	ListStudents(ctx context.Context) ([]model.Student, error)
	ListItems(ctx context.Context) ([]model.Item, error)
}

type LendingService interface {
	Borrow(ctx context.Context, studentID, itemID int64) (model.Borrow, error)
	ReturnItem(ctx context.Context, borrowID int64) (model.Borrow, error)
	ListBorrows(ctx context.Context) ([]model.BorrowView, error)
}

var (
	_ CatalogService = (*catalog.Service)(nil)
	_ LendingService = (*lending.Service)(nil)
)
