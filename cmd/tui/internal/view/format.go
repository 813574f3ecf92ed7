package view

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/money"
)

const storeTimeout = 5 * time.Second

// FormatAmount formats an amount stored as cents into a human-readable string.
func FormatAmount(cents int64) string {
	return money.Format(cents)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// StoreCtx returns a context with a standard timeout for store operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
