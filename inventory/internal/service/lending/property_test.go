package lending_test

import (
	"context"
	"testing"

	"github.com/Astemirdum/inventory-service/inventory/internal/errs"
	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	"github.com/Astemirdum/inventory-service/inventory/internal/service/lending"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"pgregory.net/rapid"
)

// Random borrow/return sequences keep stock non-negative and conserve units:
// active borrows of an item plus its quantity equal the initial quantity.
func TestService_StockInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo, db, err := openRepo()
		if err != nil {
			t.Fatalf("open repo: %v", err)
		}
		defer db.Close()

		ctx := context.Background()
		svc := lending.NewService(repo, nil, zap.NewNop())

		student, err := repo.CreateStudent(ctx, model.Student{Name: "Dana", Type: model.MembershipFree})
		if err != nil {
			t.Fatalf("student: %v", err)
		}

		initial := make(map[int64]int)
		itemIDs := make([]int64, 0, 3)
		for i, n := 0, rapid.IntRange(1, 3).Draw(t, "items"); i < n; i++ {
			qty := rapid.IntRange(0, 3).Draw(t, "qty")
			it, err := repo.CreateItem(ctx, model.Item{Title: "Item", Quantity: qty})
			if err != nil {
				t.Fatalf("item: %v", err)
			}
			initial[it.ID] = qty
			itemIDs = append(itemIDs, it.ID)
		}

		var borrowIDs []int64
		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if len(borrowIDs) == 0 || rapid.Bool().Draw(t, "borrow") {
				itemID := rapid.SampledFrom(itemIDs).Draw(t, "item")
				b, err := svc.Borrow(ctx, student.ID, itemID)
				switch {
				case err == nil:
					borrowIDs = append(borrowIDs, b.ID)
				case errors.Is(err, errs.ErrOutOfStock):
				default:
					t.Fatalf("borrow: %v", err)
				}
				continue
			}
			borrowID := rapid.SampledFrom(borrowIDs).Draw(t, "return")
			if _, err := svc.ReturnItem(ctx, borrowID); err != nil && !errors.Is(err, errs.ErrAlreadyReturned) {
				t.Fatalf("return: %v", err)
			}
		}

		borrows, err := svc.ListBorrows(ctx)
		if err != nil {
			t.Fatalf("list borrows: %v", err)
		}
		active := make(map[int64]int)
		for _, b := range borrows {
			if !b.Returned {
				active[b.ItemID]++
			}
		}
		for _, id := range itemIDs {
			it, err := repo.GetItem(ctx, id)
			if err != nil {
				t.Fatalf("get item: %v", err)
			}
			if it.Quantity < 0 {
				t.Fatalf("item %d has negative quantity %d", id, it.Quantity)
			}
			if active[id]+it.Quantity != initial[id] {
				t.Fatalf("item %d: active %d + quantity %d != initial %d", id, active[id], it.Quantity, initial[id])
			}
		}
	})
}

// Borrowing and immediately returning restores the quantity.
func TestService_BorrowReturnRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo, db, err := openRepo()
		if err != nil {
			t.Fatalf("open repo: %v", err)
		}
		defer db.Close()

		ctx := context.Background()
		svc := lending.NewService(repo, nil, zap.NewNop())
		student, err := repo.CreateStudent(ctx, model.Student{Name: "Dana", Type: model.MembershipFree})
		if err != nil {
			t.Fatalf("student: %v", err)
		}
		qty := rapid.IntRange(1, 50).Draw(t, "qty")
		it, err := repo.CreateItem(ctx, model.Item{Title: "Calculator", Quantity: qty})
		if err != nil {
			t.Fatalf("item: %v", err)
		}

		b, err := svc.Borrow(ctx, student.ID, it.ID)
		if err != nil {
			t.Fatalf("borrow: %v", err)
		}
		if _, err := svc.ReturnItem(ctx, b.ID); err != nil {
			t.Fatalf("return: %v", err)
		}
		got, err := repo.GetItem(ctx, it.ID)
		if err != nil {
			t.Fatalf("get item: %v", err)
		}
		if got.Quantity != qty {
			t.Fatalf("quantity %d, want %d", got.Quantity, qty)
		}
	})
}
