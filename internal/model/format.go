package model

// BankFormat identifies the column layout of a statement export.
type BankFormat string

const (
	FormatDBS     BankFormat = "DBS"
	FormatOCBC    BankFormat = "OCBC"
	FormatUOB     BankFormat = "UOB"
	FormatGeneric BankFormat = "Generic"
)

// Formats lists every supported format in detection order.
func Formats() []BankFormat {
	return []BankFormat{FormatDBS, FormatOCBC, FormatUOB, FormatGeneric}
}
