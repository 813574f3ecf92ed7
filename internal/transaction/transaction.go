package transaction

import (
	"time"
)

// Transaction represents one financial event record.
type Transaction struct {
	ID       int64
	Date     time.Time
	Type     string // free-text label, e.g. "Income", "Tax", "Hotel Refund"
	Amount   int64  // signed cents; positive = income, negative = expense
	Category Category
}

// Year returns the calendar year the transaction falls in.
func (t *Transaction) Year() int {
	return t.Date.Year()
}

// IsExpense reports whether the transaction counts as an expense.
// Classification is by amount sign only, never by category label.
func (t *Transaction) IsExpense() bool {
	return t.Amount < 0
}
