package scancart

import (
	"context"
	"errors"
	"sync"

	"github.com/angelmondragon/scancart-backend/pkg/cartapi"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/types"
)

var errServer = errors.New("server unavailable")

type updateCall struct {
	productID string
	quantity  int
}

type fakeAPI struct {
	mu       sync.Mutex
	products map[string]cartapi.Product
	cart     []cartapi.CartLine
	cartErr  error

	lookupErr  error
	updateErr  error
	deleteErrs map[string]error

	updates []updateCall
	deletes []string
}

func newFakeAPI(products ...cartapi.Product) *fakeAPI {
	f := &fakeAPI{
		products:   map[string]cartapi.Product{},
		deleteErrs: map[string]error{},
	}
	for _, p := range products {
		f.products[p.ProductID] = p
	}
	return f
}

func product(id, price, discount string) cartapi.Product {
	return cartapi.Product{
		ProductID:   id,
		ProductName: "Product " + id,
		Price:       types.MustMoney(price),
		Discount:    types.MustMoney(discount),
	}
}

func (f *fakeAPI) GetCart(ctx context.Context, userID string) ([]cartapi.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	return append([]cartapi.CartLine(nil), f.cart...), nil
}

func (f *fakeAPI) GetProduct(ctx context.Context, productID string) (*cartapi.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	p, ok := f.products[productID]
	if !ok {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, &cartapi.StatusError{StatusCode: 404, Message: "Product not found."}, "get product request failed")
	}
	return &p, nil
}

func (f *fakeAPI) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updateCall{productID: productID, quantity: quantity})
	return f.updateErr
}

func (f *fakeAPI) DeleteCartItem(ctx context.Context, userID, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, productID)
	return f.deleteErrs[productID]
}

func (f *fakeAPI) updateCalls() []updateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]updateCall(nil), f.updates...)
}

func (f *fakeAPI) deleteCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}
