package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// transactionResponse mirrors the persisted CSV columns: dates as
// YYYY-MM-DD, amounts as signed decimal strings.
type transactionResponse struct {
	ID       int64                `json:"id"`
	Date     string               `json:"date"`
	Type     string               `json:"type"`
	Amount   string               `json:"amount"`
	Category transaction.Category `json:"category"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:       tx.ID,
		Date:     tx.Date.Format(time.DateOnly),
		Type:     tx.Type,
		Amount:   money.Format(tx.Amount),
		Category: tx.Category,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
