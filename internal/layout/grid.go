// Package layout locates header rows and materializes data records from raw
// cell grids, tolerating preamble rows of unknown length.
package layout

import "strings"

// Grid is the raw cell matrix of a loaded spreadsheet or delimited file.
type Grid [][]string

// Record is one data row keyed by trimmed header name.
type Record map[string]string

// Get returns the trimmed value of a column, or "" when absent.
func (r Record) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// HeaderRow scans top-to-bottom for the first row containing a cell equal to
// marker (case-insensitive, trimmed) and returns its index, or -1. Payers
// with variable-length preambles are detected this way instead of being told
// the offset in advance.
func (g Grid) HeaderRow(marker string) int {
	want := strings.ToLower(strings.TrimSpace(marker))
	for i, row := range g {
		for _, cell := range row {
			if strings.ToLower(strings.TrimSpace(cell)) == want {
				return i
			}
		}
	}
	return -1
}

// FirstDataRow returns the index of the first row with any non-blank cell,
// the fallback when no header marker matches.
func (g Grid) FirstDataRow() int {
	for i, row := range g {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return i
			}
		}
	}
	return 0
}

// Find returns the position of the first cell equal to value (trimmed).
func (g Grid) Find(value string) (row, col int, ok bool) {
	for i, r := range g {
		for j, cell := range r {
			if strings.TrimSpace(cell) == value {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Cell returns the trimmed cell at (row, col), or "" when out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Headers returns the trimmed header names at row idx.
func (g Grid) Headers(idx int) []string {
	if idx < 0 || idx >= len(g) {
		return nil
	}
	headers := make([]string, len(g[idx]))
	for i, cell := range g[idx] {
		headers[i] = strings.TrimSpace(cell)
	}
	return headers
}

// Records materializes the rows below headerRow keyed by trimmed header
// names. Blank header cells are dropped, and rows with no non-blank values
// are skipped.
func (g Grid) Records(headerRow int) []Record {
	headers := g.Headers(headerRow)
	var recs []Record
	for _, row := range g[min(headerRow+1, len(g)):] {
		rec := make(Record, len(headers))
		empty := true
		for i, h := range headers {
			if h == "" || i >= len(row) {
				continue
			}
			rec[h] = row[i]
			if strings.TrimSpace(row[i]) != "" {
				empty = false
			}
		}
		if !empty {
			recs = append(recs, rec)
		}
	}
	return recs
}

// Missing returns the required column names absent from headers.
func Missing(headers, required []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
