package handler

import (
	"context"
	"fmt"

	"github.com/Astemirdum/inventory-service/inventory/internal/model"
)

// Dispatcher applies commands from the board form and the commands topic to
// the services. A Dispatcher serves a single command.
type Dispatcher struct {
	catalog CatalogService
	lending LendingService
	note    string
}

func NewDispatcher(catalog CatalogService, lending LendingService) *Dispatcher {
	return &Dispatcher{catalog: catalog, lending: lending}
}

// Note describes the last command that succeeded.
func (d *Dispatcher) Note() string {
	return d.note
}

func (d *Dispatcher) AddStudent(ctx context.Context, cmd model.AddStudentCommand) error {
	student, err := d.catalog.AddStudent(ctx, cmd.Name, cmd.Type)
	if err != nil {
		return err
	}
	d.note = fmt.Sprintf("Student %s added (%s)", student.Name, student.Type)
	return nil
}

func (d *Dispatcher) AddItem(ctx context.Context, cmd model.AddItemCommand) error {
	item, err := d.catalog.AddItem(ctx, cmd.Title, cmd.Qty)
	if err != nil {
		return err
	}
	d.note = fmt.Sprintf("Item %s added, %d in stock", item.Title, item.Quantity)
	return nil
}

func (d *Dispatcher) Borrow(ctx context.Context, cmd model.BorrowCommand) error {
	borrow, err := d.lending.Borrow(ctx, cmd.StudentID, cmd.ItemID)
	if err != nil {
		return err
	}
	d.note = fmt.Sprintf("Borrow #%d recorded", borrow.ID)
	return nil
}

func (d *Dispatcher) Return(ctx context.Context, cmd model.ReturnCommand) error {
	borrow, err := d.lending.ReturnItem(ctx, cmd.BorrowID)
	if err != nil {
		return err
	}
	d.note = fmt.Sprintf("Borrow #%d returned", borrow.ID)
	return nil
}

var _ model.Executor = (*Dispatcher)(nil)
