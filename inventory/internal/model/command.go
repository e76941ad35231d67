package model

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/Astemirdum/inventory-service/inventory/internal/errs"
	"github.com/pkg/errors"
)

type Action string

const (
	ActionAddStudent Action = "add_student"
	ActionAddItem    Action = "add_item"
	ActionBorrow     Action = "borrow"
	ActionReturn     Action = "return"
)

const defaultItemQty = 1

// Executor carries out commands. A new command variant adds a method here,
// so every executor has to handle it before the build passes.
type Executor interface {
	AddStudent(ctx context.Context, cmd AddStudentCommand) error
	AddItem(ctx context.Context, cmd AddItemCommand) error
	Borrow(ctx context.Context, cmd BorrowCommand) error
	Return(ctx context.Context, cmd ReturnCommand) error
}

type Command interface {
	Action() Action
	Execute(ctx context.Context, e Executor) error
}

type AddStudentCommand struct {
	Name string
	Type MembershipType
}

func (AddStudentCommand) Action() Action { return ActionAddStudent }

func (c AddStudentCommand) Execute(ctx context.Context, e Executor) error {
	return e.AddStudent(ctx, c)
}

type AddItemCommand struct {
	Title string
	Qty   int
}

func (AddItemCommand) Action() Action { return ActionAddItem }

func (c AddItemCommand) Execute(ctx context.Context, e Executor) error {
	return e.AddItem(ctx, c)
}

type BorrowCommand struct {
	StudentID int64
	ItemID    int64
}

func (BorrowCommand) Action() Action { return ActionBorrow }

func (c BorrowCommand) Execute(ctx context.Context, e Executor) error {
	return e.Borrow(ctx, c)
}

type ReturnCommand struct {
	BorrowID int64
}

func (ReturnCommand) Action() Action { return ActionReturn }

func (c ReturnCommand) Execute(ctx context.Context, e Executor) error {
	return e.Return(ctx, c)
}

var (
	_ Command = AddStudentCommand{}
	_ Command = AddItemCommand{}
	_ Command = BorrowCommand{}
	_ Command = ReturnCommand{}
)

// ParseForm reads a command from a form-encoded board submission.
func ParseForm(form url.Values) (Command, error) {
	switch action := Action(strings.TrimSpace(form.Get("action"))); action {
	case ActionAddStudent:
		return AddStudentCommand{
			Name: form.Get("name"),
			Type: MembershipType(form.Get("type")),
		}, nil
	case ActionAddItem:
		qty := defaultItemQty
		if raw := strings.TrimSpace(form.Get("qty")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, errors.Wrapf(errs.ErrValidation, "qty %q is not a number", raw)
			}
			qty = n
		}
		return AddItemCommand{Title: form.Get("title"), Qty: qty}, nil
	case ActionBorrow:
		studentID, err := parseID(form, "student_id")
		if err != nil {
			return nil, err
		}
		itemID, err := parseID(form, "item_id")
		if err != nil {
			return nil, err
		}
		return BorrowCommand{StudentID: studentID, ItemID: itemID}, nil
	case ActionReturn:
		borrowID, err := parseID(form, "borrow_id")
		if err != nil {
			return nil, err
		}
		return ReturnCommand{BorrowID: borrowID}, nil
	default:
		return nil, errors.Wrapf(errs.ErrUnknownAction, "%q", action)
	}
}

// parseID treats a missing field as zero; services reject non-positive ids.
func parseID(form url.Values, key string) (int64, error) {
	raw := strings.TrimSpace(form.Get(key))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errs.ErrValidation, "%s %q is not a number", key, raw)
	}
	return id, nil
}

// CommandMessage is the wire shape of a command on the commands topic.
type CommandMessage struct {
	Action    Action         `json:"action"`
	Name      string         `json:"name,omitempty"`
	Type      MembershipType `json:"type,omitempty"`
	Title     string         `json:"title,omitempty"`
	Qty       *int           `json:"qty,omitempty"`
	StudentID int64          `json:"student_id,omitempty"`
	ItemID    int64          `json:"item_id,omitempty"`
	BorrowID  int64          `json:"borrow_id,omitempty"`
}

func (m CommandMessage) Command() (Command, error) {
	switch m.Action {
	case ActionAddStudent:
		return AddStudentCommand{Name: m.Name, Type: m.Type}, nil
	case ActionAddItem:
		qty := defaultItemQty
		if m.Qty != nil {
			qty = *m.Qty
		}
		return AddItemCommand{Title: m.Title, Qty: qty}, nil
	case ActionBorrow:
		return BorrowCommand{StudentID: m.StudentID, ItemID: m.ItemID}, nil
	case ActionReturn:
		return ReturnCommand{BorrowID: m.BorrowID}, nil
	default:
		return nil, errors.Wrapf(errs.ErrUnknownAction, "%q", m.Action)
	}
}
