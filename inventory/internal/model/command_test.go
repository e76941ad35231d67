package model_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/Astemirdum/inventory-service/inventory/internal/errs"
	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	"github.com/stretchr/testify/require"
)

func TestParseForm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		form    url.Values
		want    model.Command
		wantErr error
	}{
		{
			name: "add student",
			form: url.Values{"action": {"add_student"}, "name": {"Dana"}, "type": {"premium"}},
			want: model.AddStudentCommand{Name: "Dana", Type: model.MembershipPremium},
		},
		{
			name: "add student without type",
			form: url.Values{"action": {"add_student"}, "name": {"Dana"}},
			want: model.AddStudentCommand{Name: "Dana"},
		},
		{
			name: "add item default qty",
			form: url.Values{"action": {"add_item"}, "title": {"Calculator"}},
			want: model.AddItemCommand{Title: "Calculator", Qty: 1},
		},
		{
			name: "add item negative qty is passed through",
			form: url.Values{"action": {"add_item"}, "title": {"Calculator"}, "qty": {"-3"}},
			want: model.AddItemCommand{Title: "Calculator", Qty: -3},
		},
		{
			name:    "add item bad qty",
			form:    url.Values{"action": {"add_item"}, "title": {"Calculator"}, "qty": {"five"}},
			wantErr: errs.ErrValidation,
		},
		{
			name: "borrow",
			form: url.Values{"action": {"borrow"}, "student_id": {"1"}, "item_id": {"2"}},
			want: model.BorrowCommand{StudentID: 1, ItemID: 2},
		},
		{
			name: "borrow missing item",
			form: url.Values{"action": {"borrow"}, "student_id": {"1"}},
			want: model.BorrowCommand{StudentID: 1},
		},
		{
			name:    "borrow bad id",
			form:    url.Values{"action": {"borrow"}, "student_id": {"x"}, "item_id": {"2"}},
			wantErr: errs.ErrValidation,
		},
		{
			name: "return",
			form: url.Values{"action": {"return"}, "borrow_id": {" 7 "}},
			want: model.ReturnCommand{BorrowID: 7},
		},
		{
			name:    "unknown action",
			form:    url.Values{"action": {"delete_item"}},
			wantErr: errs.ErrUnknownAction,
		},
		{
			name:    "no action",
			form:    url.Values{},
			wantErr: errs.ErrUnknownAction,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := model.ParseForm(tt.form)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCommandMessage_Command(t *testing.T) {
	t.Parallel()
	qty := 0
	tests := []struct {
		name    string
		msg     model.CommandMessage
		want    model.Command
		wantErr error
	}{
		{
			name: "add item explicit zero",
			msg:  model.CommandMessage{Action: model.ActionAddItem, Title: "Projector Remote", Qty: &qty},
			want: model.AddItemCommand{Title: "Projector Remote", Qty: 0},
		},
		{
			name: "add item default",
			msg:  model.CommandMessage{Action: model.ActionAddItem, Title: "Projector Remote"},
			want: model.AddItemCommand{Title: "Projector Remote", Qty: 1},
		},
		{
			name: "return",
			msg:  model.CommandMessage{Action: model.ActionReturn, BorrowID: 3},
			want: model.ReturnCommand{BorrowID: 3},
		},
		{
			name:    "unknown",
			msg:     model.CommandMessage{Action: "noop"},
			wantErr: errs.ErrUnknownAction,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.msg.Command()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

type recorder struct {
	got []model.Action
}

func (r *recorder) AddStudent(context.Context, model.AddStudentCommand) error {
	r.got = append(r.got, model.ActionAddStudent)
	return nil
}

func (r *recorder) AddItem(context.Context, model.AddItemCommand) error {
	r.got = append(r.got, model.ActionAddItem)
	return nil
}

func (r *recorder) Borrow(context.Context, model.BorrowCommand) error {
	r.got = append(r.got, model.ActionBorrow)
	return nil
}

func (r *recorder) Return(context.Context, model.ReturnCommand) error {
	r.got = append(r.got, model.ActionReturn)
	return nil
}

func TestCommand_Execute(t *testing.T) {
	t.Parallel()
	cmds := []model.Command{
		model.AddStudentCommand{},
		model.AddItemCommand{},
		model.BorrowCommand{},
		model.ReturnCommand{},
	}
	r := &recorder{}
	for _, cmd := range cmds {
		require.NoError(t, cmd.Execute(context.Background(), r))
		require.Equal(t, cmd.Action(), r.got[len(r.got)-1])
	}
	require.Len(t, r.got, len(cmds))
}
