package template

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Generate writes a fresh, usable copy of the fixed template design to
// path. The layout constants in this package and the sheet produced here
// agree by construction; the engine's splicing code is exercised against
// documents built this way.
func Generate(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	f.SetColWidth(SheetName, "A", "A", 8)
	f.SetColWidth(SheetName, "B", "B", 6)
	f.SetColWidth(SheetName, "C", "F", 16)
	f.SetColWidth(SheetName, "G", "I", 12)

	if err := writeTitle(f); err != nil {
		return err
	}
	if err := writeHeaderLabels(f); err != nil {
		return err
	}
	if err := writeItemBand(f); err != nil {
		return err
	}
	if err := writeTotals(f); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeTitle(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 18},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	f.SetCellValue(SheetName, "A1", "PRESUPUESTO")
	f.SetCellStyle(SheetName, "A1", "I2", style)
	return f.MergeCell(SheetName, "A1", "I2")
}

func writeHeaderLabels(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	labels := map[string]string{
		"D5":  "Nº:",
		"G5":  "Fecha:",
		"A7":  "Cliente:",
		"G7":  "CIF:",
		"A9":  "Dirección:",
		"G9":  "C.P.:",
		"A11": "Email:",
		"G11": "Teléfono:",
	}
	for ref, text := range labels {
		f.SetCellValue(SheetName, ref, text)
		f.SetCellStyle(SheetName, ref, ref, style)
	}
	// A14 is the obra line itself; it stays blank until a header write
	// composes it.
	return nil
}

func writeItemBand(f *excelize.File) error {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	head, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	headRow := BandStart - 1
	for ref, text := range map[string]string{
		fmt.Sprintf("%s%d", NumberingCol, headRow): "Nº",
		fmt.Sprintf("%s%d", UnitCol, headRow):      "Ud",
		fmt.Sprintf("%s%d", ConceptCol, headRow):   "Concepto",
		fmt.Sprintf("%s%d", QtyCol, headRow):       "Cantidad",
		fmt.Sprintf("%s%d", PriceCol, headRow):     "Precio",
		fmt.Sprintf("%s%d", AmountCol, headRow):    "Importe",
	} {
		f.SetCellValue(SheetName, ref, text)
	}
	f.SetCellStyle(SheetName,
		fmt.Sprintf("%s%d", NumberingCol, headRow),
		fmt.Sprintf("%s%d", AmountCol, headRow), head)
	if err := f.MergeCell(SheetName,
		fmt.Sprintf("%s%d", ConceptCol, headRow),
		fmt.Sprintf("%s%d", ConceptEndCol, headRow)); err != nil {
		return err
	}

	// One styled, empty reference row at the top of the band. The writer
	// harvests its per-column style ids before replacing it, so every
	// generated row inherits this look.
	text, err := f.NewStyle(&excelize.Style{
		Border:    thin,
		Alignment: &excelize.Alignment{Vertical: "top"},
	})
	if err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Border:    thin,
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return err
	}
	num, err := f.NewStyle(&excelize.Style{
		Border:    thin,
		NumFmt:    4,
		Alignment: &excelize.Alignment{Vertical: "top"},
	})
	if err != nil {
		return err
	}
	ref := func(col string) string { return fmt.Sprintf("%s%d", col, BandStart) }
	f.SetCellStyle(SheetName, ref(NumberingCol), ref(UnitCol), text)
	f.SetCellStyle(SheetName, ref(ConceptCol), ref(ConceptEndCol), wrap)
	f.SetCellStyle(SheetName, ref(QtyCol), ref(AmountCol), num)
	f.SetRowHeight(SheetName, BandStart, 24)
	return f.MergeCell(SheetName, ref(ConceptCol), ref(ConceptEndCol))
}

func writeTotals(f *excelize.File) error {
	label, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return err
	}
	value, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: 4,
	})
	if err != nil {
		return err
	}

	rows := []struct {
		row     int
		text    string
		formula string
	}{
		{SubtotalRow, "Subtotal", fmt.Sprintf("SUM(%s%d:%s%d)", AmountCol, BandStart, AmountCol, BandStart)},
		{TaxRow, "IVA", fmt.Sprintf("ROUND(%s*0.21,2)", SubtotalCell)},
		{TotalRow, "TOTAL", fmt.Sprintf("%s+%s", SubtotalCell, TaxCell)},
	}
	for _, r := range rows {
		labelRef := fmt.Sprintf("%s%d", PriceCol, r.row)
		valueRef := fmt.Sprintf("%s%d", AmountCol, r.row)
		f.SetCellValue(SheetName, labelRef, r.text)
		f.SetCellStyle(SheetName, labelRef, labelRef, label)
		if err := f.SetCellFormula(SheetName, valueRef, r.formula); err != nil {
			return err
		}
		f.SetCellStyle(SheetName, valueRef, valueRef, value)
	}
	return nil
}
