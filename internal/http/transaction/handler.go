package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Type     string `json:"type"`
	Amount   string `json:"amount"` // positive decimal string, e.g. "12.34"
	Date     string `json:"date"`   // YYYY-MM-DD
	Category string `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date: expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Type:     req.Type,
		Amount:   amount,
		Date:     date,
		Category: transaction.Category(req.Category),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTransactionRequest struct {
	Type     *string `json:"type,omitempty"`
	Amount   *string `json:"amount,omitempty"` // signed decimal string
	Date     *string `json:"date,omitempty"`
	Category *string `json:"category,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if req.Type != nil {
		tx.Type = *req.Type
	}

	if req.Amount != nil {
		amount, err := money.Parse(*req.Amount)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		tx.Amount = amount
	}

	if req.Date != nil {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			http.Error(w, "invalid date: expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		tx.Date = date
	}

	if req.Category != nil {
		tx.Category = transaction.Category(*req.Category)
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func parseFilter(r *http.Request) (transaction.ListFilter, error) {
	var filter transaction.ListFilter

	if s := r.URL.Query().Get("year"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			return filter, errors.New("invalid year")
		}

		filter.Year = &year
	}

	if s := r.URL.Query().Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			return filter, errors.New("invalid month")
		}

		month := time.Month(m)
		filter.Month = &month
	}

	if s := r.URL.Query().Get("category"); s != "" {
		category, err := transaction.ParseCategory(s)
		if err != nil {
			return filter, err
		}

		filter.Category = &category
	}

	return filter, nil
}

// writeServiceError maps the transaction error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		verr *transaction.ValidationError
		merr *transaction.MalformedRowError
	)

	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.As(err, &merr):
		// Data-integrity problem in the backing file; surfaced verbatim so
		// the user can fix the row.
		http.Error(w, merr.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
