package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/obrasoft/budgetxl/pkg/budgetxl/models"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/template"
)

// itemNumberPattern matches hierarchical numbering tokens like "2" or "1.3".
var itemNumberPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// ItemDetectionParams holds the structural heuristics that separate
// line-item rows from headers, separators and totals in a
// human-authored sheet.
type ItemDetectionParams struct {
	// MinRow is the first row considered; everything above is header.
	MinRow int
	// MinConceptLen is the minimum resolved length of the concept cell.
	// The read path uses 2. The document-import side applies its own,
	// deliberately independent threshold of 3 before writing.
	MinConceptLen int

	NumberingCol string
	UnitCol      string
	ConceptCol   string
	QtyCol       string
	PriceCol     string
}

// DefaultItemParams returns the detection parameters for the fixed
// template design.
func DefaultItemParams() ItemDetectionParams {
	return ItemDetectionParams{
		MinRow:        template.BandStart,
		MinConceptLen: 2,
		NumberingCol:  template.NumberingCol,
		UnitCol:       template.UnitCol,
		ConceptCol:    template.ConceptCol,
		QtyCol:        template.QtyCol,
		PriceCol:      template.PriceCol,
	}
}

// DetectItems classifies rows as line items: a numbering token in the
// first column plus a minimally long concept. Quantity defaults to 1,
// unit to "ud", price to 0; the amount is always recomputed from
// quantity and price. Output preserves ascending row order.
//
// The heuristic misclassifies in both directions: a stray row that
// happens to look numbered is taken, a genuine item with freeform
// numbering is skipped. That trade-off is accepted; it is what makes
// the predicate testable against hand-authored sheets.
func DetectItems(rows map[int]Row, sharedStrings []string, params ItemDetectionParams) []models.LineItem {
	nums := make([]int, 0, len(rows))
	for r := range rows {
		if r >= params.MinRow {
			nums = append(nums, r)
		}
	}
	sort.Ints(nums)

	var items []models.LineItem
	for _, r := range nums {
		row := rows[r]

		numero := strings.TrimSpace(row[params.NumberingCol].Resolve(sharedStrings))
		if !itemNumberPattern.MatchString(numero) {
			continue
		}
		concepto := row[params.ConceptCol].Resolve(sharedStrings)
		if len(strings.TrimSpace(concepto)) < params.MinConceptLen {
			continue
		}

		unidad := strings.TrimSpace(row[params.UnitCol].Resolve(sharedStrings))
		if unidad == "" {
			unidad = "ud"
		}
		cantidad := 1.0
		if v, ok := row[params.QtyCol].ResolveNumber(sharedStrings); ok {
			cantidad = v
		}
		precio := 0.0
		if v, ok := row[params.PriceCol].ResolveNumber(sharedStrings); ok {
			precio = v
		}

		items = append(items, models.LineItem{
			Numero:   numero,
			Concepto: concepto,
			Unidad:   unidad,
			Cantidad: cantidad,
			Precio:   precio,
			Importe:  round2(cantidad * precio),
		})
	}
	return items
}
