package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Astemirdum/inventory-service/inventory/internal/errs"
	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	service_mocks "github.com/Astemirdum/inventory-service/inventory/internal/handler/mocks"
)

func TestHandler_ShowBoard(t *testing.T) {
	t.Parallel()
	h, catalogSvc, lendingSvc := newTestHandler(t)
	catalogSvc.EXPECT().ListStudents(gomock.Any()).
		Return([]model.Student{{ID: 1, Name: "Dana", Type: model.MembershipPremium}}, nil)
	catalogSvc.EXPECT().ListItems(gomock.Any()).
		Return([]model.Item{{ID: 2, Title: "Projector Remote", Quantity: 0}}, nil)
	lendingSvc.EXPECT().ListBorrows(gomock.Any()).
		Return([]model.BorrowView{{
			Borrow:      model.Borrow{ID: 3, StudentID: 1, ItemID: 2, BorrowedAt: borrowedAt},
			StudentName: "Dana",
			StudentType: model.MembershipPremium,
			ItemTitle:   "Projector Remote",
		}}, nil)

	e := newEcho()
	e.GET("/", h.ShowBoard)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?msg=Borrow+%233+recorded", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `<p class="msg">Borrow #3 recorded</p>`)
	require.NotContains(t, body, `class="err"`)
	require.Contains(t, body, "Dana (premium)")
	require.Contains(t, body, "<td>Projector Remote</td><td>0</td>")
	require.Contains(t, body, "2024-09-01 10:00")
	require.Contains(t, body, string(model.StatusActive))
	require.Contains(t, body, `name="borrow_id" value="3"`)
}

func TestHandler_SubmitBoard(t *testing.T) {
	t.Parallel()
	type mockBehavior func(c *service_mocks.MockCatalogService, l *service_mocks.MockLendingService)

	flash := func(key, text string) string {
		return "/?" + url.Values{key: {text}}.Encode()
	}

	var tests = []struct {
		name         string
		form         url.Values
		mockBehavior mockBehavior
		wantCode     int
		wantLocation string
	}{
		{
			name: "add student",
			form: url.Values{"action": {"add_student"}, "name": {"Dana"}},
			mockBehavior: func(c *service_mocks.MockCatalogService, l *service_mocks.MockLendingService) {
				c.EXPECT().AddStudent(context.Background(), "Dana", model.MembershipType("")).
					Return(model.Student{ID: 1, Name: "Dana", Type: model.MembershipFree}, nil)
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: flash("msg", "Student Dana added (free)"),
		},
		{
			name: "add item with default qty",
			form: url.Values{"action": {"add_item"}, "title": {"Calculator"}},
			mockBehavior: func(c *service_mocks.MockCatalogService, l *service_mocks.MockLendingService) {
				c.EXPECT().AddItem(context.Background(), "Calculator", 1).
					Return(model.Item{ID: 2, Title: "Calculator", Quantity: 1}, nil)
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: flash("msg", "Item Calculator added, 1 in stock"),
		},
		{
			name: "borrow",
			form: url.Values{"action": {"borrow"}, "student_id": {"1"}, "item_id": {"2"}},
			mockBehavior: func(c *service_mocks.MockCatalogService, l *service_mocks.MockLendingService) {
				l.EXPECT().Borrow(context.Background(), int64(1), int64(2)).
					Return(model.Borrow{ID: 3, StudentID: 1, ItemID: 2}, nil)
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: flash("msg", "Borrow #3 recorded"),
		},
		{
			name: "borrow out of stock",
			form: url.Values{"action": {"borrow"}, "student_id": {"1"}, "item_id": {"2"}},
			mockBehavior: func(c *service_mocks.MockCatalogService, l *service_mocks.MockLendingService) {
				l.EXPECT().Borrow(context.Background(), int64(1), int64(2)).
					Return(model.Borrow{}, errors.Wrapf(errs.ErrOutOfStock, "item %d", 2))
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: flash("err", "item 2: item is out of stock"),
		},
		{
			name: "return",
			form: url.Values{"action": {"return"}, "borrow_id": {"3"}},
			mockBehavior: func(c *service_mocks.MockCatalogService, l *service_mocks.MockLendingService) {
				l.EXPECT().ReturnItem(context.Background(), int64(3)).
					Return(model.Borrow{ID: 3, Returned: true}, nil)
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: flash("msg", "Borrow #3 returned"),
		},
		{
			name: "return internal error",
			form: url.Values{"action": {"return"}, "borrow_id": {"3"}},
			mockBehavior: func(c *service_mocks.MockCatalogService, l *service_mocks.MockLendingService) {
				l.EXPECT().ReturnItem(context.Background(), int64(3)).
					Return(model.Borrow{}, errors.New("db internal"))
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: flash("err", "internal error"),
		},
		{
			name:         "bad qty",
			form:         url.Values{"action": {"add_item"}, "title": {"Calculator"}, "qty": {"many"}},
			mockBehavior: func(c *service_mocks.MockCatalogService, l *service_mocks.MockLendingService) {},
			wantCode:     http.StatusSeeOther,
			wantLocation: flash("err", `qty "many" is not a number: validation error`),
		},
		{
			name:         "unknown action",
			form:         url.Values{"action": {"delete_item"}},
			mockBehavior: func(c *service_mocks.MockCatalogService, l *service_mocks.MockLendingService) {},
			wantCode:     http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, catalogSvc, lendingSvc := newTestHandler(t)
			e := newEcho()
			e.POST("/", h.SubmitBoard)

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.form.Encode()))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
			w := httptest.NewRecorder()

			tt.mockBehavior(catalogSvc, lendingSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.wantCode, w.Code)
			require.Equal(t, tt.wantLocation, w.Header().Get(echo.HeaderLocation))
		})
	}
}
