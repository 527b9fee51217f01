package parser

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// ParseSharedStrings decodes the document's deduplicated string pool
// into its 0-indexed order. Rich-text runs inside one entry are
// concatenated in document order with no separator; phonetic runs are
// ignored. Nil or empty input yields an empty table, not an error: a
// freshly filled template may define no shared strings at all.
func ParseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	var (
		table    []string
		sb       strings.Builder
		inEntry  bool
		inText   bool
		phonetic int
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
			case "si":
				inEntry = true
				sb.Reset()
			case "rPh":
				if inEntry {
					phonetic++
				}
			case "t":
				if inEntry && phonetic == 0 {
					inText = true
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "si":
				if inEntry {
					table = append(table, sb.String())
				}
				inEntry = false
			case "rPh":
				if phonetic > 0 {
					phonetic--
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return table
}
