package model

import "strings"

// Category is the spending bucket assigned to a transaction.
type Category string

const (
	CategoryFood         Category = "Food"
	CategoryTransport    Category = "Transport"
	CategoryUtilities    Category = "Utilities"
	CategorySubscription Category = "Subscription"
	CategoryShopping     Category = "Shopping"
	CategoryIncome       Category = "Income"
	CategoryTransfer     Category = "Transfer"
	CategoryOther        Category = "Other"
)

// Categories returns the closed category set in matching priority order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryUtilities,
		CategorySubscription,
		CategoryShopping,
		CategoryIncome,
		CategoryTransfer,
		CategoryOther,
	}
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(name string) (Category, bool) {
	for _, c := range Categories() {
		if strings.EqualFold(string(c), strings.TrimSpace(name)) {
			return c, true
		}
	}
	return "", false
}
