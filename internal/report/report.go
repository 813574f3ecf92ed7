// Package report aggregates transactions into the series the dashboard
// charts and metric cards are built from. All aggregation is pure: a slice
// of transactions in, totals out, no state of its own.
package report

import (
	"math"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// fullYearWeeks is the divisor for the weekly average of any year other
// than the current one.
const fullYearWeeks = 52

// MonthlyTotal holds the income/expense/net totals for one month.
// Expenses is a positive magnitude; Net = Income - Expenses.
type MonthlyTotal struct {
	Month    time.Month
	Income   int64
	Expenses int64
	Net      int64
}

// AnnualSummary holds the headline metrics for one year. All values are
// cents; TotalExpenses and WeeklyAverage are positive magnitudes.
type AnnualSummary struct {
	TotalIncome   int64
	TotalExpenses int64
	NetFlow       int64
	WeeklyAverage int64
}

// MonthlyTotals aggregates txs for the given year into exactly 12 entries,
// January first, zero-filled for months without data. Income and expense
// are classified by amount sign alone.
func MonthlyTotals(txs []*transaction.Transaction, year int) []MonthlyTotal {
	totals := make([]MonthlyTotal, 12)
	for i := range totals {
		totals[i].Month = time.Month(i + 1)
	}

	for _, tx := range txs {
		if tx.Date.Year() != year {
			continue
		}

		entry := &totals[int(tx.Date.Month())-1]
		if tx.Amount < 0 {
			entry.Expenses += -tx.Amount
		} else {
			entry.Income += tx.Amount
		}
	}

	for i := range totals {
		totals[i].Net = totals[i].Income - totals[i].Expenses
	}

	return totals
}

// CategoryBreakdown sums expense magnitudes per category for the given year,
// optionally narrowed to a single month. Categories without expenses are
// omitted, not zero-filled. A category whose amounts happen to be positive
// contributes nothing here; the sign decides, not the label.
func CategoryBreakdown(txs []*transaction.Transaction, year int, month *time.Month) map[transaction.Category]int64 {
	breakdown := make(map[transaction.Category]int64)

	for _, tx := range txs {
		if tx.Date.Year() != year || tx.Amount >= 0 {
			continue
		}

		if month != nil && tx.Date.Month() != *month {
			continue
		}

		breakdown[tx.Category] += -tx.Amount
	}

	return breakdown
}

// Summarize computes the annual headline metrics. The weekly average divides
// the expense magnitude by elapsed weeks: day-of-year/7 (at least one week)
// when year is the current year at now, a flat 52 weeks otherwise.
func Summarize(txs []*transaction.Transaction, year int, now time.Time) AnnualSummary {
	var summary AnnualSummary

	for _, tx := range txs {
		if tx.Date.Year() != year {
			continue
		}

		if tx.Amount < 0 {
			summary.TotalExpenses += -tx.Amount
		} else {
			summary.TotalIncome += tx.Amount
		}
	}

	summary.NetFlow = summary.TotalIncome - summary.TotalExpenses

	weeks := float64(fullYearWeeks)
	if year == now.Year() {
		weeks = float64(now.YearDay()) / 7
		if weeks < 1 {
			weeks = 1
		}
	}

	summary.WeeklyAverage = int64(math.Round(float64(summary.TotalExpenses) / weeks))

	return summary
}

// AvailableYears returns the distinct transaction years plus the current
// year, newest first.
func AvailableYears(txs []*transaction.Transaction, now time.Time) []int {
	seen := map[int]struct{}{now.Year(): {}}

	for _, tx := range txs {
		seen[tx.Date.Year()] = struct{}{}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}

	slices.Sort(years)
	slices.Reverse(years)

	return years
}
