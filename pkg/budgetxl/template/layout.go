// Package template pins the one fixed presupuesto document design the
// engine is bound to: container part names, the header coordinate table,
// the line-item column scheme and band geometry, and the totals cells.
// A different template layout is out of scope.
package template

import (
	"fmt"

	"github.com/obrasoft/budgetxl/pkg/budgetxl/models"
)

const (
	// SheetName is the budget worksheet's display name.
	SheetName = "Presupuesto"

	// SharedStringsPath is the shared string pool part. A freshly filled
	// template may lack it entirely.
	SharedStringsPath = "xl/sharedStrings.xml"
)

// WorksheetEntry returns the container entry name for a 0-based sheet index.
func WorksheetEntry(index int) string {
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", index+1)
}

// Line-item column scheme. The description occupies the merged range
// ConceptCol through ConceptEndCol on each data row.
const (
	NumberingCol  = "A"
	UnitCol       = "B"
	ConceptCol    = "C"
	ConceptEndCol = "F"
	QtyCol        = "G"
	PriceCol      = "H"
	AmountCol     = "I"
)

// Band geometry: the rows reserved for line items and their separators.
const (
	BandStart = 17
	BandEnd   = 116
)

// Totals cells below the band.
const (
	SubtotalRow = 118
	TaxRow      = 119
	TotalRow    = 120

	SubtotalCell = "I118"
	TaxCell      = "I119"
	TotalCell    = "I120"
)

// HeaderCoord binds one named header field to its fixed cell.
type HeaderCoord struct {
	Field string
	Ref   string
}

// HeaderCoords is the fixed header coordinate table, in sheet order.
var HeaderCoords = []HeaderCoord{
	{models.FieldNumero, "E5"},
	{models.FieldFecha, "H5"},
	{models.FieldCliente, "B7"},
	{models.FieldCIFAdmin, "H7"},
	{models.FieldDireccion, "B9"},
	{models.FieldCodigoPostal, "H9"},
	{models.FieldEmailAdmin, "B11"},
	{models.FieldTelefonoAdmin, "H11"},
	{models.FieldObra, "A14"},
}
