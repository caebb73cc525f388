// Package impexp implements CSV import and export for portfolio data.
//
// The dialect is deliberately minimal: double quotes toggle quoted mode and
// are dropped from output, fields are trimmed, and escaped quotes are not
// supported. Malformed quoting produces wrong field boundaries rather than
// an error. This matches the files the tracker has always exchanged.
package impexp

import (
	"errors"
	"strings"
)

// ErrEmptyFile is returned when the CSV content has no header line.
var ErrEmptyFile = errors.New("failed to parse CSV file: no header row")

// Table is a parsed CSV document: a header row plus raw data rows.
// Rows shorter than the header are kept here; mappers drop them.
type Table struct {
	Headers []string
	Rows    [][]string
}

// SplitLine splits one CSV line on commas outside double quotes.
func SplitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))

	return fields
}

// Parse splits CSV content into a header row and data rows.
// Blank lines are skipped; the first non-blank line is the header.
func Parse(content string) (*Table, error) {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	table := &Table{Headers: SplitLine(lines[0])}
	for _, line := range lines[1:] {
		table.Rows = append(table.Rows, SplitLine(line))
	}

	return table, nil
}

// rowMap builds a header-keyed view of a data row. Returns false when the
// row is shorter than the header; such rows are dropped whole.
func (t *Table) rowMap(row []string) (map[string]string, bool) {
	if len(row) < len(t.Headers) {
		return nil, false
	}
	m := make(map[string]string, len(t.Headers))
	for i, h := range t.Headers {
		m[h] = row[i]
	}
	return m, true
}
