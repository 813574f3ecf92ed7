package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
	"github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

func newStore(t *testing.T) (*store.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "finance_data.csv")

	return store.New(path), path
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_CreateAndList(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	txs, err := s.ListTransactions(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)

	tx := &transaction.Transaction{
		Date:     date(2025, time.January, 27),
		Type:     "Income",
		Amount:   509500,
		Category: transaction.CategorySalary,
	}
	require.NoError(t, s.CreateTransaction(ctx, tx))
	assert.Equal(t, int64(1), tx.ID)

	tx2 := &transaction.Transaction{
		Date:     date(2025, time.January, 3),
		Type:     "Tax",
		Amount:   -855,
		Category: transaction.CategoryTax,
	}
	require.NoError(t, s.CreateTransaction(ctx, tx2))
	assert.Equal(t, int64(2), tx2.ID)

	txs, err = s.ListTransactions(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(1), txs[0].ID)
	assert.Equal(t, "Income", txs[0].Type)
	assert.Equal(t, int64(509500), txs[0].Amount)
	assert.Equal(t, transaction.CategorySalary, txs[0].Category)
	assert.Equal(t, date(2025, time.January, 27), txs[0].Date)
}

func TestStore_IDsAfterDelete(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tx := &transaction.Transaction{
			Date:     date(2025, time.March, i+1),
			Type:     "Tax",
			Amount:   -100,
			Category: transaction.CategoryTax,
		}
		require.NoError(t, s.CreateTransaction(ctx, tx))
	}

	// Deleting the highest id frees it for reuse: next id is max+1.
	require.NoError(t, s.DeleteTransaction(ctx, 3))

	tx := &transaction.Transaction{
		Date:     date(2025, time.March, 9),
		Type:     "Tax",
		Amount:   -100,
		Category: transaction.CategoryTax,
	}
	require.NoError(t, s.CreateTransaction(ctx, tx))
	assert.Equal(t, int64(3), tx.ID)
}

func TestStore_RoundTrip(t *testing.T) {
	s, path := newStore(t)
	ctx := context.Background()

	want := []*transaction.Transaction{
		{Date: date(2025, time.January, 27), Type: "Income", Amount: 509500, Category: transaction.CategorySalary},
		{Date: date(2025, time.January, 3), Type: "Tax", Amount: -855, Category: transaction.CategoryTax},
		{Date: date(2024, time.December, 24), Type: "Gift, for family", Amount: -12000, Category: transaction.CategoryRegalo},
	}
	require.NoError(t, s.CreateTransactions(ctx, want))

	// Re-open through a fresh store to force a parse from disk.
	got, err := store.New(path).ListTransactions(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Date, got[i].Date)
		assert.Equal(t, want[i].Type, got[i].Type)
		assert.Equal(t, want[i].Amount, got[i].Amount)
		assert.Equal(t, want[i].Category, got[i].Category)
	}
}

func TestStore_UpdateTransaction(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	tx := &transaction.Transaction{
		Date:     date(2025, time.May, 5),
		Type:     "Dinner",
		Amount:   -4200,
		Category: transaction.CategoryRestaurant,
	}
	require.NoError(t, s.CreateTransaction(ctx, tx))

	tx.Amount = -4500
	tx.Type = "Dinner out"
	require.NoError(t, s.UpdateTransaction(ctx, tx))

	got, err := s.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-4500), got.Amount)
	assert.Equal(t, "Dinner out", got.Type)

	missing := &transaction.Transaction{
		ID:       99,
		Date:     date(2025, time.May, 5),
		Type:     "x",
		Amount:   -1,
		Category: transaction.CategoryGeneral,
	}
	assert.ErrorIs(t, s.UpdateTransaction(ctx, missing), transaction.ErrNotFound)
}

func TestStore_DeleteTwice(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	tx := &transaction.Transaction{
		Date:     date(2025, time.May, 5),
		Type:     "Petrol",
		Amount:   -6000,
		Category: transaction.CategoryPetrol,
	}
	require.NoError(t, s.CreateTransaction(ctx, tx))

	require.NoError(t, s.DeleteTransaction(ctx, tx.ID))

	txs, err := s.ListTransactions(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)

	assert.ErrorIs(t, s.DeleteTransaction(ctx, tx.ID), transaction.ErrNotFound)
}

func TestStore_Filters(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTransactions(ctx, []*transaction.Transaction{
		{Date: date(2025, time.January, 3), Type: "Tax", Amount: -855, Category: transaction.CategoryTax},
		{Date: date(2025, time.February, 1), Type: "Food", Amount: -2000, Category: transaction.CategoryGrocery},
		{Date: date(2024, time.February, 1), Type: "Food", Amount: -1500, Category: transaction.CategoryGrocery},
	}))

	year := 2025
	txs, err := s.ListTransactions(ctx, transaction.ListFilter{Year: &year})
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	month := time.February
	txs, err = s.ListTransactions(ctx, transaction.ListFilter{Year: &year, Month: &month})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(-2000), txs[0].Amount)

	cat := transaction.CategoryGrocery
	txs, err = s.ListTransactions(ctx, transaction.ListFilter{Category: &cat})
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestStore_MalformedRowAborts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finance_data.csv")

	content := "id,date,type,amount,category\n" +
		"1,2025-01-03,Tax,-8.55,Tax\n" +
		"2,2025-01-04,Tax,not-a-number,Tax\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := store.New(path)

	_, err := s.ListTransactions(context.Background(), transaction.ListFilter{})

	var merr *transaction.MalformedRowError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 3, merr.Row)
}

func TestStore_UnknownCategoryAborts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finance_data.csv")

	content := "id,date,type,amount,category\n" +
		"1,2025-01-03,Tax,-8.55,Lottery\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := store.New(path).ListTransactions(context.Background(), transaction.ListFilter{})

	var merr *transaction.MalformedRowError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 2, merr.Row)
}

func TestStore_BadHeaderAborts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finance_data.csv")

	require.NoError(t, os.WriteFile(path, []byte("ident,when,label,value,group\n"), 0o644))

	_, err := store.New(path).ListTransactions(context.Background(), transaction.ListFilter{})

	var merr *transaction.MalformedRowError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 1, merr.Row)
}

func TestStore_QuotedFieldsSurviveRewrite(t *testing.T) {
	s, path := newStore(t)
	ctx := context.Background()

	tx := &transaction.Transaction{
		Date:     date(2025, time.July, 14),
		Type:     `Hotel "Roma", refund`,
		Amount:   12050,
		Category: transaction.CategoryRefund,
	}
	require.NoError(t, s.CreateTransaction(ctx, tx))

	got, err := store.New(path).GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, `Hotel "Roma", refund`, got.Type)
}
