// Package csvkit implements the CSV dialect used for bulk import and
// export: fields are quoted only when they contain a comma, quote or
// newline (internal quotes doubled), rows join with \n, and import is
// lenient — rows missing mandatory fields are dropped, not fatal.
// encoding/csv is deliberately not used: it always quotes per RFC 4180
// and aborts on stray quotes, both of which break the existing files.
package csvkit

import (
	"fmt"
	"strings"
)

// EscapeField quotes a field only when it needs quoting.
func EscapeField(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

// WriteRow renders one row.
func WriteRow(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeField(f)
	}
	return strings.Join(escaped, ",")
}

// Marshal renders a header plus rows, joined by \n.
func Marshal(header []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, WriteRow(header))
	for _, r := range rows {
		lines = append(lines, WriteRow(r))
	}
	return strings.Join(lines, "\n")
}

// SplitLine tokenizes one CSV line, honoring quoted fields. A doubled
// quote inside a quoted field is an escaped quote. Malformed quoting
// degrades to best effort rather than erroring.
func SplitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// Parsed is the result of parsing an import file.
type Parsed struct {
	Header []string            // lower-cased, trimmed
	Rows   []map[string]string // column name → value, per data line
}

// Parse splits an import file into a lower-cased header and row maps.
// Blank lines are skipped. Returns an error only when the required
// header columns are missing; bad data rows are the caller's concern.
func Parse(content string, requiredCols []string) (*Parsed, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf("csv file is empty")
	}

	rawHeader := SplitLine(lines[0])
	header := make([]string, len(rawHeader))
	for i, h := range rawHeader {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var missing []string
	for _, req := range requiredCols {
		found := false
		for _, h := range header {
			if h == req {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv header is missing required columns: %s", strings.Join(missing, ", "))
	}

	parsed := &Parsed{Header: header}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := SplitLine(line)
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(values) {
				row[col] = strings.TrimSpace(values[i])
			} else {
				row[col] = ""
			}
		}
		parsed.Rows = append(parsed.Rows, row)
	}

	return parsed, nil
}
