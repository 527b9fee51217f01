package models

// BudgetTotals holds the money summary derived from a document's line items.
type BudgetTotals struct {
	// Subtotal is the sum of Importe over all line items, rounded to 2 decimals.
	Subtotal float64 `json:"subtotal"`
	// IVA is Subtotal times the tax rate in force at the call site.
	IVA float64 `json:"iva"`
	// Total is Subtotal plus IVA.
	Total float64 `json:"total"`
}
