package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatEntryID returns a ledger entry ID like "dbs-2024-01-0001".
func FormatEntryID(prefix string, year, month, seq int) string {
	return fmt.Sprintf("%s-%04d-%02d-%04d", strings.ToLower(prefix), year, month, seq)
}

// ParseEntryID splits "dbs-2024-01-0001" into its prefix, year, month and seq.
func ParseEntryID(id string) (prefix string, year, month, seq int, err error) {
	parts := strings.Split(id, "-")
	if len(parts) != 4 || parts[0] == "" {
		return "", 0, 0, 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid year in entry ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[2])
	if err != nil || month < 1 || month > 12 {
		return "", 0, 0, 0, fmt.Errorf("invalid month in entry ID %q", id)
	}

	seq, err = strconv.Atoi(parts[3])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid sequence in entry ID %q: %w", id, err)
	}

	return parts[0], year, month, seq, nil
}
