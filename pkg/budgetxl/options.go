// Package budgetxl reads and fills one fixed presupuesto (construction
// budget) template in xlsx form, working directly on the zip container
// and its worksheet XML so the hand-designed template survives every
// operation untouched.
package budgetxl

import "github.com/obrasoft/budgetxl/pkg/budgetxl/template"

// Options configures how a document is read and written.
type Options struct {
	// SheetIndex selects the worksheet, 0-based. The budget template
	// keeps everything on its first sheet.
	SheetIndex int
	// MinItemRow is the first row the line-item detector considers.
	// If nil, defaults to the template's item band start.
	MinItemRow *int
	// ReadTaxRate is the IVA rate applied when deriving totals from a
	// document's existing items. If nil, defaults to 0.10.
	ReadTaxRate *float64
	// WriteTaxRate is the IVA rate the writer bakes into the totals
	// formulas after inserting items. If nil, defaults to 0.21.
	// The read and write rates are independent of each other.
	WriteTaxRate *float64
}

// DefaultOptions returns options bound to the standard template.
func DefaultOptions() Options {
	return Options{}
}

// EffectiveMinItemRow returns the first row considered for line items.
func (o Options) EffectiveMinItemRow() int {
	if o.MinItemRow != nil {
		return *o.MinItemRow
	}
	return template.BandStart
}

// EffectiveReadTaxRate returns the rate applied on the read path.
func (o Options) EffectiveReadTaxRate() float64 {
	if o.ReadTaxRate != nil {
		return *o.ReadTaxRate
	}
	return 0.10
}

// EffectiveWriteTaxRate returns the rate applied on the write path.
func (o Options) EffectiveWriteTaxRate() float64 {
	if o.WriteTaxRate != nil {
		return *o.WriteTaxRate
	}
	return 0.21
}

func (o Options) worksheetEntry() string {
	return template.WorksheetEntry(o.SheetIndex)
}
