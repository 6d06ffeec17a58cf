// Package scancart holds the client-side cart of a scanning shopper and keeps
// it reconciled with the cart API.
package scancart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/scancart-backend/pkg/cartapi"
)

// Item is one product line in the local cart.
type Item struct {
	Product  cartapi.Product
	Quantity int
}

// LineTotal is quantity × (price − discount).
func (i Item) LineTotal() decimal.Decimal {
	unit := i.Product.Price.Sub(i.Product.Discount.Decimal)
	return unit.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Listener observes every replacement of the list.
type Listener func(items []Item, totals Totals)

// List is the ordered, concurrency-safe item sequence.
type List struct {
	mu       sync.RWMutex
	items    []Item
	listener Listener
}

func NewList(listener Listener) *List {
	return &List{listener: listener}
}

// Items returns a copy of the current items.
func (l *List) Items() []Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneItems(l.items)
}

// Replace swaps in a new item sequence and notifies the listener.
func (l *List) Replace(items []Item) {
	next := cloneItems(items)

	l.mu.Lock()
	l.items = next
	listener := l.listener
	l.mu.Unlock()

	if listener != nil {
		listener(cloneItems(next), ComputeTotals(next))
	}
}

// Len reports the number of lines.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func indexOf(items []Item, productID string) int {
	for i, item := range items {
		if item.Product.ProductID == productID {
			return i
		}
	}
	return -1
}
