package export

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/xlsx", h.xlsx)
}

func (h *Handler) xlsx(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()

	if s := r.URL.Query().Get("year"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}

		year = parsed
	}

	data, err := h.svc.YearWorkbook(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"tally_%d.xlsx\"", year))

	if _, err := w.Write(data); err != nil {
		// Client went away mid-download; nothing to recover.
		return
	}
}
