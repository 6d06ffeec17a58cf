package cart

import (
	"context"
	"testing"

	product "github.com/angelmondragon/scancart-backend/internal/products"
	"github.com/angelmondragon/scancart-backend/pkg/db/dbtest"
	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/types"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	client := dbtest.Open(t)
	products := product.NewRepository(client.DB())
	ctx := context.Background()
	for _, p := range []models.Product{
		{ProductID: "A", ProductName: "Apple", Price: types.MustMoney("1000"), Discount: types.MustMoney("100")},
		{ProductID: "B", ProductName: "Bread", Price: types.MustMoney("3000")},
	} {
		p := p
		if err := products.Create(ctx, &p); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client, products)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if !pkgerrors.IsCode(err, code) {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, nil, nil); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}

func TestGetCartEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetCart(context.Background(), "alice")
	requireCode(t, err, pkgerrors.CodeNotFound)
	if pkgerrors.As(err).Message() != EmptyCartMessage {
		t.Fatalf("unexpected message %q", pkgerrors.As(err).Message())
	}
}

func TestAddItemAndGetCart(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.AddItem(ctx, AddItemInput{ProductID: "B", UserID: "alice", Quantity: 2})
	if err != nil {
		t.Fatalf("add B: %v", err)
	}
	second, err := svc.AddItem(ctx, AddItemInput{ProductID: "A", UserID: "alice", Quantity: 1})
	if err != nil {
		t.Fatalf("add A: %v", err)
	}
	if first == 0 || second <= first {
		t.Fatalf("expected increasing item ids, got %d then %d", first, second)
	}

	lines, err := svc.GetCart(ctx, "alice")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ProductID != "B" || lines[0].Quantity != 2 || lines[0].Price.String() != "3000.00" {
		t.Fatalf("unexpected first line %+v", lines[0])
	}
	if lines[1].ProductID != "A" || lines[1].Discount.String() != "100.00" {
		t.Fatalf("unexpected second line %+v", lines[1])
	}
}

func TestAddItemValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []AddItemInput{
		{UserID: "alice", Quantity: 1},
		{ProductID: "A", Quantity: 1},
		{ProductID: "A", UserID: "alice"},
	}
	for _, input := range cases {
		_, err := svc.AddItem(ctx, input)
		requireCode(t, err, pkgerrors.CodeValidation)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AddItem(context.Background(), AddItemInput{ProductID: "Z", UserID: "alice", Quantity: 1})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestAddItemDuplicateConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddItemInput{ProductID: "A", UserID: "alice", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := svc.AddItem(ctx, AddItemInput{ProductID: "A", UserID: "alice", Quantity: 3})
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestUpdateQuantityUpserts(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	if err := svc.UpdateQuantity(ctx, UpdateQuantityInput{ProductID: "A", UserID: "bob", Quantity: 4}); err != nil {
		t.Fatalf("insert via update: %v", err)
	}
	if err := svc.UpdateQuantity(ctx, UpdateQuantityInput{ProductID: "A", UserID: "bob", Quantity: 2}); err != nil {
		t.Fatalf("update: %v", err)
	}

	cart, err := repo.FindCartByUser(ctx, "bob")
	if err != nil {
		t.Fatalf("find cart: %v", err)
	}
	items, err := repo.ListItems(ctx, cart.CartID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected single line with quantity 2, got %+v", items)
	}
}

func TestUpdateQuantityRejectsZero(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.UpdateQuantity(context.Background(), UpdateQuantityInput{ProductID: "A", UserID: "bob", Quantity: 0})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	requireCode(t, svc.RemoveItem(ctx, "carol", "A"), pkgerrors.CodeNotFound)

	if _, err := svc.AddItem(ctx, AddItemInput{ProductID: "A", UserID: "carol", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.RemoveItem(ctx, "carol", "A"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	requireCode(t, svc.RemoveItem(ctx, "carol", "A"), pkgerrors.CodeNotFound)

	_, err := svc.GetCart(ctx, "carol")
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestEnsureCartIsIdempotent(t *testing.T) {
	_, repo := newTestService(t)
	ctx := context.Background()

	first, err := repo.EnsureCart(ctx, "dave")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	second, err := repo.EnsureCart(ctx, "dave")
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if first.CartID != second.CartID {
		t.Fatalf("expected same cart, got %d and %d", first.CartID, second.CartID)
	}
}
