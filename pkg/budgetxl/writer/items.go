package writer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/obrasoft/budgetxl/pkg/budgetxl/models"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/opc"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/parser"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/template"
)

// ErrBandOverflow reports more line items than the template's item band
// can hold, separators included.
var ErrBandOverflow = errors.New("writer: line items exceed the template band")

// minConceptLen is the import-side concept threshold. It is deliberately
// not the read path's two-character minimum; the two limits stay
// independent.
const minConceptLen = 3

// InsertItems replaces the template's item band with the given inputs,
// numbered 1.1 onward, and points the totals formulas at the rows the
// band now spans using the supplied tax rate. An empty input list is a
// no-op: the document is left byte-for-byte unchanged.
//
// Each data row carries the item's unit, the merged concept range, the
// literal quantity and price, and an amount formula referencing that
// row's own quantity and price cells, so later manual edits in a
// spreadsheet application stay self-consistent. A blank separator row
// follows every data row but the last, matching the template's rhythm.
func InsertItems(c *opc.Container, sheetEntry string, inputs []models.ItemInput, taxRate float64) error {
	inputs = clampInputs(inputs)
	if len(inputs) == 0 {
		return nil
	}
	rowsNeeded := 2*len(inputs) - 1
	if rowsNeeded > template.BandEnd-template.BandStart+1 {
		return fmt.Errorf("%w: %d items need %d rows", ErrBandOverflow, len(inputs), rowsNeeded)
	}

	data, err := c.ReadEntry(sheetEntry)
	if err != nil {
		return err
	}
	sheet := string(data)

	// Style tokens are harvested from the band's current first row
	// before it is replaced; they are opaque, copied verbatim and never
	// recomputed.
	styles := harvestStyles(parser.ExtractRows(data), template.BandStart)
	rowAttrs := harvestRowAttrs(sheet, template.BandStart)

	var (
		b      strings.Builder
		merges []string
	)
	row := template.BandStart
	for i, in := range inputs {
		if i > 0 {
			fmt.Fprintf(&b, `<row r="%d"/>`, row)
			row++
		}
		b.WriteString(buildItemRow(row, rowAttrs, styles, i, in))
		merges = append(merges, fmt.Sprintf("%s%d:%s%d", template.ConceptCol, row, template.ConceptEndCol, row))
		row++
	}
	lastRow := row - 1

	sheet, err = spliceBand(sheet, template.BandStart, template.BandEnd, b.String())
	if err != nil {
		return err
	}
	sheet = updateMerges(sheet, template.BandStart, template.BandEnd, merges)
	sheet, err = rewriteTotals(sheet, lastRow, taxRate)
	if err != nil {
		return err
	}

	return c.ReplaceEntry(sheetEntry, []byte(sheet))
}

// clampInputs drops records with no usable concept and fills the
// defaults a proposal generator may omit.
func clampInputs(inputs []models.ItemInput) []models.ItemInput {
	out := make([]models.ItemInput, 0, len(inputs))
	for _, in := range inputs {
		if len(strings.TrimSpace(in.Concepto())) < minConceptLen {
			continue
		}
		if strings.TrimSpace(in.Unidad) == "" {
			in.Unidad = "ud"
		}
		if in.Cantidad <= 0 {
			in.Cantidad = 1
		}
		if in.PrecioUnitario < 0 {
			in.PrecioUnitario = 0
		}
		out = append(out, in)
	}
	return out
}

func harvestStyles(rows map[int]parser.Row, bandStart int) map[string]string {
	styles := make(map[string]string)
	for col, cell := range rows[bandStart] {
		if cell.Style != "" {
			styles[col] = cell.Style
		}
	}
	return styles
}

func buildItemRow(rowNum int, rowAttrs string, styles map[string]string, index int, in models.ItemInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<row r="%d"%s>`, rowNum, rowAttrs)
	n := strconv.Itoa(rowNum)
	b.WriteString(inlineCell(template.NumberingCol+n, styleAttr(styles, template.NumberingCol), fmt.Sprintf("1.%d", index+1)))
	b.WriteString(inlineCell(template.UnitCol+n, styleAttr(styles, template.UnitCol), in.Unidad))
	b.WriteString(inlineCell(template.ConceptCol+n, styleAttr(styles, template.ConceptCol), in.Concepto()))
	b.WriteString(numericCell(template.QtyCol+n, styleAttr(styles, template.QtyCol), in.Cantidad))
	b.WriteString(numericCell(template.PriceCol+n, styleAttr(styles, template.PriceCol), in.PrecioUnitario))
	b.WriteString(formulaCell(template.AmountCol+n, styleAttr(styles, template.AmountCol), template.QtyCol+n+"*"+template.PriceCol+n))
	b.WriteString(`</row>`)
	return b.String()
}

func styleAttr(styles map[string]string, col string) string {
	if s, ok := styles[col]; ok {
		return ` s="` + s + `"`
	}
	return ""
}

// rewriteTotals rewrites the subtotal, tax and total formulas to cover
// exactly the rows the band now spans. The rate lands inside the tax
// formula so the document itself shows how the figure was produced.
func rewriteTotals(sheet string, lastRow int, rate float64) (string, error) {
	sum := fmt.Sprintf("SUM(%s%d:%s%d)", template.AmountCol, template.BandStart, template.AmountCol, lastRow)
	sheet, err := rewriteFormulaCell(sheet, template.SubtotalCell, sum)
	if err != nil {
		return "", err
	}
	tax := fmt.Sprintf("ROUND(%s*%s,2)", template.SubtotalCell, formatNumber(rate))
	sheet, err = rewriteFormulaCell(sheet, template.TaxCell, tax)
	if err != nil {
		return "", err
	}
	return rewriteFormulaCell(sheet, template.TotalCell, template.SubtotalCell+"+"+template.TaxCell)
}
