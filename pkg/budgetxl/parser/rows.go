package parser

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Row maps column letters to the cells physically present on one row.
// Absent columns are implicitly empty.
type Row map[string]Cell

// ExtractRows scans a worksheet stream and returns, per row number, the
// raw cell fragments found there. Rows carrying no cells are dropped,
// including the self-closing separator rows the writer emits. This is
// purely structural; no semantic interpretation happens here.
func ExtractRows(data []byte) map[int]Row {
	rows := make(map[int]Row)

	var (
		cur      Cell
		inCell   bool
		inValue  bool
		inFormula bool
		inInline bool
		inRun    bool
		run      strings.Builder
	)
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "c":
				cur = Cell{}
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "r":
						cur.Ref = a.Value
					case "s":
						cur.Style = a.Value
					case "t":
						cur.Type = a.Value
					}
				}
				inCell = cur.Ref != ""
			case "v":
				inValue = inCell
			case "f":
				inFormula = inCell
			case "is":
				inInline = inCell
			case "t":
				if inInline {
					run.Reset()
					inRun = true
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "c":
				if inCell {
					col, rowNum := SplitRef(cur.Ref)
					if col != "" && rowNum > 0 {
						if rows[rowNum] == nil {
							rows[rowNum] = make(Row)
						}
						rows[rowNum][col] = cur
					}
				}
				inCell = false
			case "v":
				inValue = false
			case "f":
				inFormula = false
			case "is":
				inInline = false
			case "t":
				if inRun {
					cur.InlineRuns = append(cur.InlineRuns, run.String())
					inRun = false
				}
			}
		case xml.CharData:
			switch {
			case inRun:
				run.Write(t)
			case inValue:
				cur.Value += string(t)
			case inFormula:
				cur.Formula += string(t)
			}
		}
	}
	return rows
}
