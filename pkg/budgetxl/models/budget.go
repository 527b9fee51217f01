package models

// BudgetData is everything one read pass recovers from a document.
type BudgetData struct {
	// BookName is the document file name (no path).
	BookName string `json:"book_name"`
	// Header holds the fixed-coordinate metadata cells.
	Header HeaderFields `json:"header"`
	// Items are the detected line items in ascending row order.
	Items []LineItem `json:"items"`
	// Totals are derived from Items, not read off the sheet.
	Totals BudgetTotals `json:"totals"`
}
