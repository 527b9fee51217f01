package parser

import (
	"math"

	"github.com/obrasoft/budgetxl/pkg/budgetxl/models"
)

// Totals derives subtotal, tax and total from the detected items. The
// tax rate is an explicit parameter: reading an existing document and
// recomputing a freshly written one legitimately run with different
// rates, so no rate is hard-coded here.
func Totals(items []models.LineItem, rate float64) models.BudgetTotals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Importe
	}
	subtotal = round2(subtotal)
	iva := round2(subtotal * rate)
	return models.BudgetTotals{
		Subtotal: subtotal,
		IVA:      iva,
		Total:    round2(subtotal + iva),
	}
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
