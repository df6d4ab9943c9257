// Package csv splits a catalog dump into rows of string fields.
//
// The catalog dump is not strict RFC 4180: fields are optionally quoted, a
// quote only toggles "inside quotes" state and is never emitted, and a
// trailing unmatched quote leaves the toggle set for the rest of the row.
// The stdlib encoding/csv rejects exactly those rows, so the splitting is
// done by hand.
package csv

import "strings"

// Parse splits the full text of a catalog file. The first row (header) and
// blank rows are discarded. No type conversion happens here.
func Parse(content string) [][]string {
	lines := strings.Split(content, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		rows = append(rows, parseRow(line))
	}
	return rows
}

func parseRow(row string) []string {
	var columns []string
	var current strings.Builder
	insideQuotes := false

	for _, char := range row {
		switch {
		case char == '"':
			insideQuotes = !insideQuotes
		case char == ',' && !insideQuotes:
			columns = append(columns, current.String())
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}
	columns = append(columns, current.String())
	return columns
}
