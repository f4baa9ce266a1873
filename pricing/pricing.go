// Package pricing holds the storefront's single checkout business rule.
// Every code path that computes order totals goes through Compute, so the
// client-side checkout summary and the order API can never disagree.
package pricing

const (
	// TaxRate is applied to the subtotal.
	TaxRate = 0.10
	// FlatShipping is the shipping charge regardless of order size.
	FlatShipping = 0.0
)

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

func Compute(subtotal float64) Totals {
	tax := subtotal * TaxRate
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: FlatShipping,
		Total:    subtotal + tax + FlatShipping,
	}
}
