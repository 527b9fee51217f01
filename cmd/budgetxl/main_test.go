package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/obrasoft/budgetxl/pkg/budgetxl"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/models"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/template"
)

func TestTaxRateDefaultsPerCommand(t *testing.T) {
	// Registering every subcommand must leave each one its own default:
	// 0.10 on the read path, 0.21 on the write paths.
	root := newRootCmd()

	expected := map[string]string{
		"read":   "0.1",
		"insert": "0.21",
		"append": "0.21",
	}
	for _, cmd := range root.Commands() {
		want, ok := expected[cmd.Name()]
		if !ok {
			continue
		}
		flag := cmd.Flags().Lookup("tax-rate")
		if flag == nil {
			t.Errorf("%s has no --tax-rate flag", cmd.Name())
			continue
		}
		if flag.DefValue != want {
			t.Errorf("%s --tax-rate default = %s, expected %s", cmd.Name(), flag.DefValue, want)
		}
	}
}

func TestReadCommandDefaultRate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presupuesto.xlsx")
	if err := template.Generate(path); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	items := []models.ItemInput{
		{Titulo: "Partida de prueba", Cantidad: 10, PrecioUnitario: 10},
	}
	if err := budgetxl.InsertItems(path, items, budgetxl.DefaultOptions()); err != nil {
		t.Fatalf("InsertItems failed: %v", err)
	}

	outPath := filepath.Join(dir, "out.json")
	root := newRootCmd()
	root.SetArgs([]string{"read", path, "-o", outPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("read command failed: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var data models.BudgetData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if data.Totals.Subtotal != 100 {
		t.Errorf("Subtotal = %v, expected 100", data.Totals.Subtotal)
	}
	// Without --tax-rate the read path derives IVA at its own 10%
	// default, regardless of the write commands' 21%.
	if data.Totals.IVA != 10 {
		t.Errorf("IVA = %v, expected 10 at the read default rate", data.Totals.IVA)
	}
	if data.Totals.Total != 110 {
		t.Errorf("Total = %v, expected 110", data.Totals.Total)
	}
}
