package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const isoDate = "2006-01-02"

var (
	// D/M/YYYY or D-M-YYYY, day first.
	dayFirstPattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	isoPattern      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	// D MMM YYYY, e.g. 09 Jan 2024
	monthNamePattern = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3})\s+(\d{4})$`)
)

var monthAbbrev = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// NormalizeDate converts a statement date to YYYY-MM-DD.
// It reports false when no supported pattern matches or the date does not exist.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)

	if m := dayFirstPattern.FindStringSubmatch(s); m != nil {
		return civilDate(atoi(m[3]), time.Month(atoi(m[2])), atoi(m[1]))
	}
	if m := isoPattern.FindStringSubmatch(s); m != nil {
		return civilDate(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]))
	}
	if m := monthNamePattern.FindStringSubmatch(s); m != nil {
		month, ok := monthAbbrev[strings.ToLower(m[2])]
		if !ok {
			return "", false
		}
		return civilDate(atoi(m[3]), month, atoi(m[1]))
	}
	return "", false
}

func civilDate(year int, month time.Month, day int) (string, bool) {
	if month < time.January || month > time.December || day < 1 {
		return "", false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return "", false
	}
	return t.Format(isoDate), true
}

// atoi is only called on regexp-matched digit runs.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

var (
	amountNoise     = regexp.MustCompile(`[\s"',]`)
	currencyCode    = regexp.MustCompile(`(?i)^(sgd|usd|myr|eur|gbp|aud|hkd)`)
	currencySymbols = strings.NewReplacer("S$", "", "$", "", "£", "", "€", "", "¥", "", "₹", "")
	parenthesized   = regexp.MustCompile(`^\((.*)\)$`)
)

// NormalizeAmount converts a statement amount to a signed decimal.
// Rules apply in order and only one matches: (x) is negative, a CR marker is a
// credit (positive), a DR marker is a debit (negative), anything else is parsed
// as a plain decimal. Unparsable input yields zero.
func NormalizeAmount(raw string) decimal.Decimal {
	s := amountNoise.ReplaceAllString(raw, "")
	s = currencySymbols.Replace(s)
	s = currencyCode.ReplaceAllString(s, "")

	if m := parenthesized.FindStringSubmatch(s); m != nil {
		return parseDecimal(m[1]).Abs().Neg()
	}
	upper := strings.ToUpper(s)
	if strings.Contains(upper, "CR") {
		return parseDecimal(strings.Replace(upper, "CR", "", 1)).Abs()
	}
	if strings.Contains(upper, "DR") {
		return parseDecimal(strings.Replace(upper, "DR", "", 1)).Abs().Neg()
	}
	return parseDecimal(s)
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// optionalAmount returns nil for a blank field.
func optionalAmount(raw string) *decimal.Decimal {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	d := NormalizeAmount(raw)
	return &d
}
