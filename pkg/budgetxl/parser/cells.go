package parser

import (
	"strconv"
	"strings"
)

// Cell is one raw cell fragment as it appears in a worksheet stream:
// its reference, opaque style token, type attribute, literal value,
// formula text and inline rich-text runs.
type Cell struct {
	Ref        string
	Style      string
	Type       string
	Value      string
	Formula    string
	InlineRuns []string
}

// Resolve returns the cell's logical text value. Resolution order,
// first match wins: inline rich text, shared-string lookup, direct
// literal, empty. A shared-string index outside the table is data
// corruption and resolves to "" rather than failing.
func (c Cell) Resolve(sharedStrings []string) string {
	if len(c.InlineRuns) > 0 {
		parts := make([]string, 0, len(c.InlineRuns))
		for _, run := range c.InlineRuns {
			run = strings.TrimSpace(run)
			if run != "" {
				parts = append(parts, run)
			}
		}
		return strings.Join(parts, " ")
	}
	if c.Type == "s" {
		idx, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil || idx < 0 || idx >= len(sharedStrings) {
			return ""
		}
		return sharedStrings[idx]
	}
	if c.Value != "" {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// ResolveNumber resolves the cell and attempts a numeric parse. A lone
// decimal comma is normalized first, since the documents are
// Spanish-authored. Empty or unparseable content reports false, never
// an error.
func (c Cell) ResolveNumber(sharedStrings []string) (float64, bool) {
	s := strings.TrimSpace(c.Resolve(sharedStrings))
	if s == "" {
		return 0, false
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
