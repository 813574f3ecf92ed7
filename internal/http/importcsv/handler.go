package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type transactionResponse struct {
	ID       int64                `json:"id"`
	Date     string               `json:"date"`
	Type     string               `json:"type"`
	Amount   string               `json:"amount"`
	Category transaction.Category `json:"category"`
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(txs []*transaction.Transaction) importSuccessResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, transactionResponse{
			ID:       tx.ID,
			Date:     tx.Date.Format(time.DateOnly),
			Type:     tx.Type,
			Amount:   money.Format(tx.Amount),
			Category: tx.Category,
		})
	}

	return importSuccessResponse{
		Imported:     len(responses),
		Transactions: responses,
	}
}
