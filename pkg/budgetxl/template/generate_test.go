package template

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/obrasoft/budgetxl/pkg/budgetxl/opc"
)

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presupuesto.xlsx")
	if err := Generate(path); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Generated template does not open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != SheetName {
		t.Errorf("Sheet list = %v, expected [%s]", sheets, SheetName)
	}

	formula, err := f.GetCellFormula(SheetName, SubtotalCell)
	if err != nil {
		t.Fatalf("GetCellFormula failed: %v", err)
	}
	if formula != "SUM(I17:I17)" {
		t.Errorf("Subtotal formula = %q", formula)
	}
}

func TestGenerateContainerLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presupuesto.xlsx")
	if err := Generate(path); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	c, err := opc.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	if _, err := c.ReadEntry(WorksheetEntry(0)); err != nil {
		t.Errorf("Worksheet entry missing: %v", err)
	}
}
