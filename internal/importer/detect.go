package importer

import (
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

// DetectFormat picks the bank format from the header line alone.
// Rule order matters: the banks share vocabulary, so an explicit bank name or
// DBS's debit/credit/balance trio wins over OCBC's withdrawals/deposits.
func DetectFormat(header string) model.BankFormat {
	h := strings.ToLower(header)
	switch {
	case strings.Contains(h, "dbs") || containsAll(h, "debit", "credit", "balance"):
		return model.FormatDBS
	case strings.Contains(h, "ocbc") || containsAll(h, "withdrawals", "deposits"):
		return model.FormatOCBC
	case strings.Contains(h, "uob") || strings.Contains(h, "transaction date"):
		return model.FormatUOB
	default:
		return model.FormatGeneric
	}
}

func containsAll(s string, words ...string) bool {
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}
