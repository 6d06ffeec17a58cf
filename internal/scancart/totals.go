package scancart

import "github.com/shopspring/decimal"

// Totals are the four summary figures shown under the cart.
type Totals struct {
	GrandTotal    decimal.Decimal
	GrandDiscount decimal.Decimal
	GrandCount    int
	GrandPrice    decimal.Decimal
}

// ComputeTotals sums every visible item.
func ComputeTotals(items []Item) Totals {
	totals := Totals{
		GrandTotal:    decimal.Zero,
		GrandDiscount: decimal.Zero,
		GrandPrice:    decimal.Zero,
	}
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		totals.GrandTotal = totals.GrandTotal.Add(item.LineTotal())
		totals.GrandDiscount = totals.GrandDiscount.Add(item.Product.Discount.Mul(qty))
		totals.GrandPrice = totals.GrandPrice.Add(item.Product.Price.Mul(qty))
		totals.GrandCount += item.Quantity
	}
	return totals
}
