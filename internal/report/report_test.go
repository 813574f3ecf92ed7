package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func tx(y int, m time.Month, d int, amount int64, cat transaction.Category) *transaction.Transaction {
	return &transaction.Transaction{
		Date:     time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Type:     "test",
		Amount:   amount,
		Category: cat,
	}
}

func TestMonthlyTotals(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(2025, time.January, 27, 509500, transaction.CategorySalary),
		tx(2025, time.January, 3, -855, transaction.CategoryTax),
		tx(2025, time.March, 10, -2000, transaction.CategoryGrocery),
		tx(2025, time.March, 12, 900, transaction.CategoryRefund),
		tx(2024, time.March, 12, -5000, transaction.CategoryGrocery), // other year
	}

	totals := report.MonthlyTotals(txs, 2025)
	require.Len(t, totals, 12)

	assert.Equal(t, time.January, totals[0].Month)
	assert.Equal(t, time.December, totals[11].Month)

	jan := totals[0]
	assert.Equal(t, int64(509500), jan.Income)
	assert.Equal(t, int64(855), jan.Expenses)
	assert.Equal(t, int64(508645), jan.Net)

	mar := totals[2]
	assert.Equal(t, int64(900), mar.Income)
	assert.Equal(t, int64(2000), mar.Expenses)
	assert.Equal(t, int64(-1100), mar.Net)

	// Months without data are zero-filled.
	feb := totals[1]
	assert.Zero(t, feb.Income)
	assert.Zero(t, feb.Expenses)
	assert.Zero(t, feb.Net)
}

func TestMonthlyTotalsMatchAnnualSummary(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(2025, time.January, 27, 509500, transaction.CategorySalary),
		tx(2025, time.February, 1, -855, transaction.CategoryTax),
		tx(2025, time.June, 15, -31000, transaction.CategoryTravel),
		tx(2025, time.November, 2, 1200, transaction.CategoryBenefit),
	}

	totals := report.MonthlyTotals(txs, 2025)
	summary := report.Summarize(txs, 2025, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	var income, expenses int64
	for _, m := range totals {
		income += m.Income
		expenses += m.Expenses
	}

	assert.Equal(t, summary.TotalIncome, income)
	assert.Equal(t, summary.TotalExpenses, expenses)
	assert.Equal(t, summary.NetFlow, income-expenses)
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(2025, time.January, 3, -855, transaction.CategoryTax),
		tx(2025, time.February, 3, -1145, transaction.CategoryTax),
		tx(2025, time.February, 10, -2000, transaction.CategoryGrocery),
		tx(2025, time.February, 11, 900, transaction.CategoryRefund), // positive: not an expense
		tx(2024, time.February, 10, -7777, transaction.CategoryGrocery),
	}

	breakdown := report.CategoryBreakdown(txs, 2025, nil)
	assert.Equal(t, map[transaction.Category]int64{
		transaction.CategoryTax:     2000,
		transaction.CategoryGrocery: 2000,
	}, breakdown)

	// Narrowed to February.
	feb := time.February
	breakdown = report.CategoryBreakdown(txs, 2025, &feb)
	assert.Equal(t, map[transaction.Category]int64{
		transaction.CategoryTax:     1145,
		transaction.CategoryGrocery: 2000,
	}, breakdown)
}

func TestCategoryBreakdownMatchesBruteForce(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(2025, time.January, 1, -100, transaction.CategoryTax),
		tx(2025, time.January, 2, -250, transaction.CategoryPetrol),
		tx(2025, time.March, 2, -250, transaction.CategoryPetrol),
		tx(2025, time.April, 9, -4000, transaction.CategoryRestaurant),
		tx(2025, time.April, 10, 4000, transaction.CategoryRefund),
		tx(2025, time.May, 20, -60, transaction.CategoryMembership),
	}

	breakdown := report.CategoryBreakdown(txs, 2025, nil)

	for _, cat := range transaction.Categories {
		var want int64

		for _, tr := range txs {
			if tr.Date.Year() == 2025 && tr.Category == cat && tr.Amount < 0 {
				want += -tr.Amount
			}
		}

		if want == 0 {
			_, present := breakdown[cat]
			assert.False(t, present, "category %s should be omitted", cat)

			continue
		}

		assert.Equal(t, want, breakdown[cat], "category %s", cat)
	}
}

// Worked example: two transactions, year 2025.
func TestSummarizeExample(t *testing.T) {
	txs := []*transaction.Transaction{
		{ID: 1, Date: time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC), Type: "Income", Amount: 509500, Category: transaction.CategorySalary},
		{ID: 2, Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Type: "Tax", Amount: -855, Category: transaction.CategoryTax},
	}

	summary := report.Summarize(txs, 2025, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, int64(509500), summary.TotalIncome)
	assert.Equal(t, int64(855), summary.TotalExpenses)
	assert.Equal(t, int64(508645), summary.NetFlow)
}

func TestSummarizeWeeklyAverage(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(2025, time.January, 2, -52000, transaction.CategoryGeneral),
	}

	t.Run("PastYearUsesFullYearWeeks", func(t *testing.T) {
		now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		summary := report.Summarize(txs, 2025, now)
		// 52000 / 52 weeks
		assert.Equal(t, int64(1000), summary.WeeklyAverage)
	})

	t.Run("CurrentYearUsesElapsedWeeks", func(t *testing.T) {
		// Feb 10 2025 is day 41; 41/7 elapsed weeks.
		now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
		summary := report.Summarize(txs, 2025, now)
		assert.Equal(t, int64(8878), summary.WeeklyAverage) // round(52000*7/41)
	})

	t.Run("FirstWeekOfYearClampsToOneWeek", func(t *testing.T) {
		now := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
		summary := report.Summarize(txs, 2025, now)
		assert.Equal(t, int64(52000), summary.WeeklyAverage)
	})
}

func TestAvailableYears(t *testing.T) {
	now := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	years := report.AvailableYears(nil, now)
	assert.Equal(t, []int{2026}, years)

	txs := []*transaction.Transaction{
		tx(2023, time.May, 1, -100, transaction.CategoryTax),
		tx(2025, time.May, 1, -100, transaction.CategoryTax),
		tx(2025, time.June, 1, -100, transaction.CategoryTax),
	}

	years = report.AvailableYears(txs, now)
	assert.Equal(t, []int{2026, 2025, 2023}, years)
}
