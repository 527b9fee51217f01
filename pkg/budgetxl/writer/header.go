package writer

import (
	"strings"
	"time"

	"github.com/obrasoft/budgetxl/pkg/budgetxl/models"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/opc"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/template"
)

// WriteHeader rewrites the template's fixed header coordinates with the
// given field values. Everything goes out as inline text so postal
// codes and project numbers keep their leading zeros; each rewritten
// cell keeps the style it already had in the template.
func WriteHeader(c *opc.Container, sheetEntry string, fields models.HeaderFields) error {
	data, err := c.ReadEntry(sheetEntry)
	if err != nil {
		return err
	}
	sheet := string(data)
	for _, hc := range template.HeaderCoords {
		value := headerDisplay(hc.Field, fields.Get(hc.Field))
		sheet, err = setInlineText(sheet, hc.Ref, value)
		if err != nil {
			return err
		}
	}
	return c.ReplaceEntry(sheetEntry, []byte(sheet))
}

// headerDisplay applies the per-field display rules: a date entered as
// DD-MM-YY becomes DD/MM/YYYY (anything else passes through verbatim),
// and the obra line always reads "Obra: <text>.", or bare "Obra:" when
// no text is supplied.
func headerDisplay(field, value string) string {
	switch field {
	case models.FieldFecha:
		if t, err := time.Parse("02-01-06", value); err == nil {
			return t.Format("02/01/2006")
		}
	case models.FieldObra:
		text := strings.TrimSpace(value)
		if text == "" {
			return "Obra:"
		}
		return "Obra: " + text + "."
	}
	return value
}
