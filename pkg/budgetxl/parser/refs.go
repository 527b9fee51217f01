// Package parser implements the read path over raw worksheet XML:
// shared-string resolution, cell fragments, row extraction, the header
// coordinate mapping and the line-item heuristics.
package parser

import "strconv"

// SplitRef splits a cell reference like "C17" into its column letters
// and row number.
func SplitRef(ref string) (col string, row int) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	col = ref[:i]
	row, _ = strconv.Atoi(ref[i:])
	return col, row
}

// ColumnIndex converts column letters to a 0-based index (A=0, AA=26).
func ColumnIndex(col string) int {
	n := 0
	for i := 0; i < len(col); i++ {
		n = n*26 + int(col[i]-'A') + 1
	}
	return n - 1
}
