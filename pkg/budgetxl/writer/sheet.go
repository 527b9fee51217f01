// Package writer implements the write path: line-item band replacement,
// header rewrites and totals formula updates, all spliced into the raw
// worksheet XML so every untouched byte of the original template
// survives verbatim. Nothing here re-serializes the document.
package writer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/obrasoft/budgetxl/pkg/budgetxl/parser"
)

// ErrNoSheetData indicates the worksheet stream has no sheetData element.
var ErrNoSheetData = errors.New("writer: worksheet has no sheetData")

var (
	rowPattern        = regexp.MustCompile(`(?s)<row\b[^>]*/>|<row\b[^>]*>.*?</row>`)
	rowNumPattern     = regexp.MustCompile(`<row\b[^>]*?\br="(\d+)"`)
	sheetDataOpen     = regexp.MustCompile(`<sheetData\b[^>]*>`)
	cellStartPattern  = regexp.MustCompile(`<c r="([A-Z]+)\d+"`)
	styleAttrPattern  = regexp.MustCompile(`\bs="([^"]*)"`)
	heightAttrPattern = regexp.MustCompile(`\bht="[^"]*"|\bcustomHeight="[^"]*"`)
	mergeCellsPattern = regexp.MustCompile(`(?s)<mergeCells\b[^>]*/>|<mergeCells\b[^>]*>.*?</mergeCells>`)
	mergeRefPattern   = regexp.MustCompile(`<mergeCell\b[^>]*?\bref="([^"]+)"`)
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}

// rowSpan is one <row> element's byte range within the sheet stream.
type rowSpan struct {
	start, end int
	num        int
}

func scanRows(sheet string) []rowSpan {
	var spans []rowSpan
	for _, loc := range rowPattern.FindAllStringIndex(sheet, -1) {
		m := rowNumPattern.FindStringSubmatch(sheet[loc[0]:loc[1]])
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		spans = append(spans, rowSpan{start: loc[0], end: loc[1], num: n})
	}
	return spans
}

// spliceBand replaces every row inside [bandStart, bandEnd] with the
// given replacement fragment. Rows outside the band, and all bytes
// between them, are carried over untouched. When the band holds no rows
// yet, the fragment is inserted at the band's position.
func spliceBand(sheet string, bandStart, bandEnd int, replacement string) (string, error) {
	if i := strings.Index(sheet, "<sheetData/>"); i >= 0 {
		return sheet[:i] + "<sheetData>" + replacement + "</sheetData>" + sheet[i+len("<sheetData/>"):], nil
	}
	open := sheetDataOpen.FindStringIndex(sheet)
	closeIdx := strings.Index(sheet, "</sheetData>")
	if open == nil || closeIdx < 0 {
		return "", ErrNoSheetData
	}

	spliceStart, spliceEnd := -1, -1
	insertAt := closeIdx
	for _, sp := range scanRows(sheet) {
		if sp.start < open[1] || sp.end > closeIdx {
			continue
		}
		switch {
		case sp.num < bandStart:
			// insertion point moves past rows above the band
		case sp.num <= bandEnd:
			if spliceStart < 0 {
				spliceStart = sp.start
			}
			spliceEnd = sp.end
		default:
			if spliceStart < 0 && sp.start < insertAt {
				insertAt = sp.start
			}
		}
	}
	if spliceStart < 0 {
		return sheet[:insertAt] + replacement + sheet[insertAt:], nil
	}
	return sheet[:spliceStart] + replacement + sheet[spliceEnd:], nil
}

func cellPattern(ref string) *regexp.Regexp {
	q := regexp.QuoteMeta(ref)
	return regexp.MustCompile(`(?s)<c r="` + q + `"[^>]*/>|<c r="` + q + `"[^>]*>.*?</c>`)
}

// styleOf pulls the s attribute off a cell fragment's start tag,
// returned ready for re-emission (` s="N"` or "").
func styleOf(frag string) string {
	end := strings.Index(frag, ">")
	if end < 0 {
		return ""
	}
	if m := styleAttrPattern.FindStringSubmatch(frag[:end+1]); m != nil {
		return ` s="` + m[1] + `"`
	}
	return ""
}

// inlineCell renders an inline-string cell. Text goes out t="inlineStr"
// rather than as a typed number so values like postal codes keep their
// leading zeros.
func inlineCell(ref, style, value string) string {
	t := "<t>" + xmlEscape(value) + "</t>"
	if value != strings.TrimSpace(value) || strings.ContainsAny(value, "\n\r") {
		t = `<t xml:space="preserve">` + xmlEscape(value) + "</t>"
	}
	return `<c r="` + ref + `"` + style + ` t="inlineStr"><is>` + t + `</is></c>`
}

func numericCell(ref, style string, v float64) string {
	return `<c r="` + ref + `"` + style + `><v>` + formatNumber(v) + `</v></c>`
}

func formulaCell(ref, style, formula string) string {
	return `<c r="` + ref + `"` + style + `><f>` + xmlEscape(formula) + `</f></c>`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// rewriteFormulaCell replaces ref's content with a bare formula, keeping
// the style token and dropping any cached <v> so a spreadsheet
// application recalculates on open.
func rewriteFormulaCell(sheet, ref, formula string) (string, error) {
	loc := cellPattern(ref).FindStringIndex(sheet)
	if loc == nil {
		return "", fmt.Errorf("writer: cell %s not found", ref)
	}
	cell := formulaCell(ref, styleOf(sheet[loc[0]:loc[1]]), formula)
	return sheet[:loc[0]] + cell + sheet[loc[1]:], nil
}

// setInlineText writes ref as an inline text cell, preserving the
// existing cell's style token. The cell, and its row, are created in
// document order when absent.
func setInlineText(sheet, ref, value string) (string, error) {
	col, rowNum := parser.SplitRef(ref)
	if col == "" || rowNum <= 0 {
		return "", fmt.Errorf("writer: bad cell reference %q", ref)
	}

	if loc := cellPattern(ref).FindStringIndex(sheet); loc != nil {
		cell := inlineCell(ref, styleOf(sheet[loc[0]:loc[1]]), value)
		return sheet[:loc[0]] + cell + sheet[loc[1]:], nil
	}

	cell := inlineCell(ref, "", value)
	open := sheetDataOpen.FindStringIndex(sheet)
	closeIdx := strings.Index(sheet, "</sheetData>")
	if i := strings.Index(sheet, "<sheetData/>"); i >= 0 {
		row := `<row r="` + strconv.Itoa(rowNum) + `">` + cell + `</row>`
		return sheet[:i] + "<sheetData>" + row + "</sheetData>" + sheet[i+len("<sheetData/>"):], nil
	}
	if open == nil || closeIdx < 0 {
		return "", ErrNoSheetData
	}

	spans := scanRows(sheet)
	for _, sp := range spans {
		if sp.start < open[1] || sp.end > closeIdx || sp.num != rowNum {
			continue
		}
		frag := insertCellInRow(sheet[sp.start:sp.end], col, cell)
		return sheet[:sp.start] + frag + sheet[sp.end:], nil
	}

	// Row absent entirely: create it in ascending row order.
	row := `<row r="` + strconv.Itoa(rowNum) + `">` + cell + `</row>`
	insertAt := closeIdx
	for _, sp := range spans {
		if sp.start < open[1] || sp.end > closeIdx {
			continue
		}
		if sp.num > rowNum {
			insertAt = sp.start
			break
		}
	}
	return sheet[:insertAt] + row + sheet[insertAt:], nil
}

// insertCellInRow places a rendered cell into an existing row fragment,
// keeping the cells in column order.
func insertCellInRow(frag, col, cell string) string {
	if strings.HasSuffix(frag, "/>") {
		return frag[:len(frag)-2] + ">" + cell + "</row>"
	}
	insertAt := strings.LastIndex(frag, "</row>")
	if insertAt < 0 {
		return frag
	}
	target := parser.ColumnIndex(col)
	for _, m := range cellStartPattern.FindAllStringSubmatchIndex(frag, -1) {
		existing := frag[m[2]:m[3]]
		if parser.ColumnIndex(existing) > target {
			insertAt = m[0]
			break
		}
	}
	return frag[:insertAt] + cell + frag[insertAt:]
}

// updateMerges drops every merged range confined to the band, appends
// the refs for the generated rows and fixes the count attribute. Merges
// outside the band keep their original order; the element is created
// after </sheetData> when the template has none.
func updateMerges(sheet string, bandStart, bandEnd int, newRefs []string) string {
	loc := mergeCellsPattern.FindStringIndex(sheet)
	var refs []string
	if loc != nil {
		for _, m := range mergeRefPattern.FindAllStringSubmatch(sheet[loc[0]:loc[1]], -1) {
			if !mergeInBand(m[1], bandStart, bandEnd) {
				refs = append(refs, m[1])
			}
		}
	}
	refs = append(refs, newRefs...)
	if len(refs) == 0 {
		if loc != nil {
			return sheet[:loc[0]] + sheet[loc[1]:]
		}
		return sheet
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<mergeCells count="%d">`, len(refs))
	for _, r := range refs {
		b.WriteString(`<mergeCell ref="` + r + `"/>`)
	}
	b.WriteString(`</mergeCells>`)

	if loc != nil {
		return sheet[:loc[0]] + b.String() + sheet[loc[1]:]
	}
	i := strings.Index(sheet, "</sheetData>")
	if i < 0 {
		return sheet
	}
	i += len("</sheetData>")
	return sheet[:i] + b.String() + sheet[i:]
}

func mergeInBand(ref string, bandStart, bandEnd int) bool {
	first, rest, _ := strings.Cut(ref, ":")
	_, r1 := parser.SplitRef(first)
	r2 := r1
	if rest != "" {
		_, r2 = parser.SplitRef(rest)
	}
	return r1 >= bandStart && r2 <= bandEnd
}

// harvestRowAttrs pulls the height attributes off one row's start tag
// so generated rows keep the template's row sizing.
func harvestRowAttrs(sheet string, rowNum int) string {
	for _, sp := range scanRows(sheet) {
		if sp.num != rowNum {
			continue
		}
		frag := sheet[sp.start:sp.end]
		end := strings.Index(frag, ">")
		if end < 0 {
			return ""
		}
		attrs := ""
		for _, m := range heightAttrPattern.FindAllString(frag[:end+1], -1) {
			attrs += " " + m
		}
		return attrs
	}
	return ""
}
