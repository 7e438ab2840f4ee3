package importer

import "strings"

// SplitLine splits one CSV line into trimmed fields. A double quote toggles
// quoted mode and is dropped; commas inside quotes are kept. Doubled quotes
// ("") are not treated as an escaped quote.
func SplitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(cur.String()))
}
