package parser

import (
	"github.com/obrasoft/budgetxl/pkg/budgetxl/models"
	"github.com/obrasoft/budgetxl/pkg/budgetxl/template"
)

// ExtractHeader resolves the template's fixed header coordinates into
// named fields. Every field is present in the result; an absent or
// unresolvable cell yields "".
func ExtractHeader(rows map[int]Row, sharedStrings []string) models.HeaderFields {
	var h models.HeaderFields
	for _, hc := range template.HeaderCoords {
		col, rowNum := SplitRef(hc.Ref)
		cell, ok := rows[rowNum][col]
		if !ok {
			continue
		}
		h.Set(hc.Field, cell.Resolve(sharedStrings))
	}
	return h
}
