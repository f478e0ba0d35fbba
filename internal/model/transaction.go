package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a parsed row of a Monarch Money CSV export.
type Transaction struct {
	Date      time.Time
	Merchant  string
	Category  string
	Account   string
	Statement string // original bank statement text
	Notes     string
	Amount    decimal.Decimal // negative = expense, positive = income
	// Tags is the raw comma-packed tag field from the export. Tag exclusion
	// matches the whole field, so a transaction carrying multiple tags only
	// matches an exclusion listing the exact combination.
	Tags string
}

// Exclusions filters transactions out of aggregation by exact field match.
type Exclusions struct {
	Categories []string
	Accounts   []string
	Tags       []string
}

// Matches reports whether the transaction is excluded.
func (e Exclusions) Matches(t Transaction) bool {
	return contains(e.Categories, t.Category) ||
		contains(e.Accounts, t.Account) ||
		contains(e.Tags, t.Tags)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
