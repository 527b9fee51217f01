package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/obrasoft/budgetxl/pkg/budgetxl/models"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/opc"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/parser"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/template"
)

var testItems = []models.ItemInput{
	{Titulo: "Demolición de tabique", Descripcion: "Retirada de escombros incluida", Cantidad: 10, Unidad: "m2", PrecioUnitario: 25.5},
	{Titulo: "Instalación eléctrica", Cantidad: 1, PrecioUnitario: 180},
	{Titulo: "Pintura plástica", Cantidad: 3.5, Unidad: "m2", PrecioUnitario: 45},
}

func generateTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presupuesto.xlsx")
	if err := template.Generate(path); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return path
}

func openContainer(t *testing.T, path string) *opc.Container {
	t.Helper()
	c, err := opc.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func readSheet(t *testing.T, path string) string {
	t.Helper()
	c := openContainer(t, path)
	data, err := c.ReadEntry(template.WorksheetEntry(0))
	if err != nil {
		t.Fatalf("ReadEntry failed: %v", err)
	}
	return string(data)
}

func TestInsertItemsRoundTrip(t *testing.T) {
	path := generateTemplate(t)

	c := openContainer(t, path)
	if err := InsertItems(c, template.WorksheetEntry(0), testItems, 0.21); err != nil {
		t.Fatalf("InsertItems failed: %v", err)
	}

	data, err := c.ReadEntry(template.WorksheetEntry(0))
	if err != nil {
		t.Fatalf("ReadEntry failed: %v", err)
	}
	items := parser.DetectItems(parser.ExtractRows(data), nil, parser.DefaultItemParams())
	if len(items) != 3 {
		t.Fatalf("Expected 3 items back, got %d", len(items))
	}

	expectedImportes := []float64{255, 180, 157.5}
	for i, it := range items {
		want := fmt.Sprintf("1.%d", i+1)
		if it.Numero != want {
			t.Errorf("Item %d numero = %q, expected %q", i, it.Numero, want)
		}
		if it.Importe != expectedImportes[i] {
			t.Errorf("Item %d importe = %v, expected %v", i, it.Importe, expectedImportes[i])
		}
	}
	if items[0].Concepto != "Demolición de tabique\nRetirada de escombros incluida" {
		t.Errorf("Concepto = %q", items[0].Concepto)
	}
	if items[1].Unidad != "ud" {
		t.Errorf("Default unit not applied: %q", items[1].Unidad)
	}
}

func TestInsertItemsFormulas(t *testing.T) {
	path := generateTemplate(t)

	c := openContainer(t, path)
	if err := InsertItems(c, template.WorksheetEntry(0), testItems, 0.21); err != nil {
		t.Fatalf("InsertItems failed: %v", err)
	}
	c.Close()
	sheet := readSheet(t, path)

	// Each amount formula references its own row's quantity and price.
	for _, row := range []int{17, 19, 21} {
		want := fmt.Sprintf("<f>G%d*H%d</f>", row, row)
		if !strings.Contains(sheet, want) {
			t.Errorf("Missing amount formula %s", want)
		}
	}

	// Separators are self-closing rows the extractor skips.
	for _, row := range []int{18, 20} {
		want := fmt.Sprintf(`<row r="%d"/>`, row)
		if !strings.Contains(sheet, want) {
			t.Errorf("Missing separator row %d", row)
		}
	}

	// 3 items span 2*3-1 = 5 rows: the aggregate covers 17 through 21.
	if !strings.Contains(sheet, "<f>SUM(I17:I21)</f>") {
		t.Error("Aggregate range not rewritten to SUM(I17:I21)")
	}
	if !strings.Contains(sheet, "<f>ROUND(I118*0.21,2)</f>") {
		t.Error("Tax formula not rewritten with the 0.21 rate")
	}
	if !strings.Contains(sheet, "<f>I118+I119</f>") {
		t.Error("Total formula not rewritten")
	}
}

func TestInsertItemsMerges(t *testing.T) {
	path := generateTemplate(t)

	c := openContainer(t, path)
	if err := InsertItems(c, template.WorksheetEntry(0), testItems, 0.21); err != nil {
		t.Fatalf("InsertItems failed: %v", err)
	}
	c.Close()
	sheet := readSheet(t, path)

	for _, ref := range []string{"C17:F17", "C19:F19", "C21:F21"} {
		if !strings.Contains(sheet, `<mergeCell ref="`+ref+`"/>`) {
			t.Errorf("Missing generated merge %s", ref)
		}
	}
	// Header merges outside the band survive.
	for _, ref := range []string{"A1:I2", "C16:F16"} {
		if !strings.Contains(sheet, `<mergeCell ref="`+ref+`"/>`) {
			t.Errorf("Non-band merge %s was lost", ref)
		}
	}
}

func TestInsertItemsKeepsStyles(t *testing.T) {
	path := generateTemplate(t)

	refStyles := map[string]string{}
	for col, cell := range parser.ExtractRows([]byte(readSheet(t, path)))[template.BandStart] {
		refStyles[col] = cell.Style
	}
	if len(refStyles) == 0 {
		t.Fatal("Template reference row has no styled cells")
	}

	c := openContainer(t, path)
	if err := InsertItems(c, template.WorksheetEntry(0), testItems, 0.21); err != nil {
		t.Fatalf("InsertItems failed: %v", err)
	}
	c.Close()

	rows := parser.ExtractRows([]byte(readSheet(t, path)))
	for _, row := range []int{17, 19, 21} {
		for col, cell := range rows[row] {
			if want := refStyles[col]; cell.Style != want {
				t.Errorf("Row %d col %s style = %q, expected %q", row, col, cell.Style, want)
			}
		}
	}
}

func TestInsertItemsEmptyNoOp(t *testing.T) {
	path := generateTemplate(t)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	c := openContainer(t, path)
	if err := InsertItems(c, template.WorksheetEntry(0), nil, 0.21); err != nil {
		t.Fatalf("InsertItems with empty input failed: %v", err)
	}
	c.Close()

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(before) != string(after) {
		t.Error("Empty insert must leave the document byte-identical")
	}
}

func TestInsertItemsBandOverflow(t *testing.T) {
	path := generateTemplate(t)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	// 51 items need 101 rows; the band holds 100.
	var many []models.ItemInput
	for i := 0; i < 51; i++ {
		many = append(many, models.ItemInput{Titulo: fmt.Sprintf("Partida %d", i+1), Cantidad: 1, PrecioUnitario: 1})
	}

	c := openContainer(t, path)
	err = InsertItems(c, template.WorksheetEntry(0), many, 0.21)
	if !errors.Is(err, ErrBandOverflow) {
		t.Fatalf("Expected ErrBandOverflow, got %v", err)
	}
	c.Close()

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(before) != string(after) {
		t.Error("Overflow must not touch the document")
	}
}

func TestInsertItemsClamping(t *testing.T) {
	path := generateTemplate(t)

	inputs := []models.ItemInput{
		{Titulo: "ab", Cantidad: 1, PrecioUnitario: 10},                   // concept too short, dropped
		{Titulo: "Partida real", Cantidad: -2, PrecioUnitario: -5},        // clamped
		{Titulo: "Otra partida", Cantidad: 2, Unidad: " ", PrecioUnitario: 30}, // unit defaulted
	}

	c := openContainer(t, path)
	if err := InsertItems(c, template.WorksheetEntry(0), inputs, 0.21); err != nil {
		t.Fatalf("InsertItems failed: %v", err)
	}

	data, err := c.ReadEntry(template.WorksheetEntry(0))
	if err != nil {
		t.Fatalf("ReadEntry failed: %v", err)
	}
	items := parser.DetectItems(parser.ExtractRows(data), nil, parser.DefaultItemParams())
	if len(items) != 2 {
		t.Fatalf("Expected 2 items after clamping, got %d", len(items))
	}
	if items[0].Cantidad != 1 || items[0].Precio != 0 {
		t.Errorf("Clamp defaults not applied: %+v", items[0])
	}
	if items[1].Unidad != "ud" {
		t.Errorf("Blank unit not defaulted: %q", items[1].Unidad)
	}
}

func TestInsertItemsExcelizeRecalc(t *testing.T) {
	path := generateTemplate(t)

	c := openContainer(t, path)
	if err := InsertItems(c, template.WorksheetEntry(0), testItems, 0.21); err != nil {
		t.Fatalf("InsertItems failed: %v", err)
	}
	c.Close()

	// Cross-check with an independent reader: the first amount formula
	// evaluates to quantity times price.
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("excelize failed to open the written document: %v", err)
	}
	defer f.Close()

	got, err := f.CalcCellValue(template.SheetName, "I17")
	if err != nil {
		t.Fatalf("CalcCellValue failed: %v", err)
	}
	v, err := strconv.ParseFloat(got, 64)
	if err != nil {
		t.Fatalf("CalcCellValue returned %q", got)
	}
	if v != 255 {
		t.Errorf("I17 = %v, expected 255", v)
	}
}
