package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/monthly", h.monthly)
	r.Get("/categories", h.categories)
}

type summaryResponse struct {
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	NetFlow       string `json:"net_flow"`
	WeeklyAverage string `json:"weekly_average"`
}

type monthlyTotalResponse struct {
	Month    int    `json:"month"`
	Name     string `json:"name"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

type dashboardResponse struct {
	Year      int                    `json:"year"`
	Summary   summaryResponse        `json:"summary"`
	Monthly   []monthlyTotalResponse `json:"monthly"`
	Breakdown map[string]string      `json:"categories"`
	Years     []int                  `json:"available_years"`
}

// summary returns the full dashboard payload: annual metrics, the monthly
// series, the expense breakdown and the selectable years.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	year, ok := h.parseYear(w, r)
	if !ok {
		return
	}

	dashboard, err := h.svc.Dashboard(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := dashboardResponse{
		Year: dashboard.Year,
		Summary: summaryResponse{
			TotalIncome:   money.Format(dashboard.Summary.TotalIncome),
			TotalExpenses: money.Format(dashboard.Summary.TotalExpenses),
			NetFlow:       money.Format(dashboard.Summary.NetFlow),
			WeeklyAverage: money.Format(dashboard.Summary.WeeklyAverage),
		},
		Monthly:   toMonthlyResponse(dashboard.Monthly),
		Breakdown: toBreakdownResponse(dashboard.Breakdown),
		Years:     dashboard.Years,
	}

	writeJSON(w, resp)
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	year, ok := h.parseYear(w, r)
	if !ok {
		return
	}

	totals, err := h.svc.MonthlyTotals(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toMonthlyResponse(totals))
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	year, ok := h.parseYear(w, r)
	if !ok {
		return
	}

	var month *time.Month

	if s := r.URL.Query().Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}

		parsed := time.Month(m)
		month = &parsed
	}

	breakdown, err := h.svc.CategoryBreakdown(r.Context(), year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toBreakdownResponse(breakdown))
}

// parseYear reads the year query parameter, defaulting to the current year.
func (h *Handler) parseYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	s := r.URL.Query().Get("year")
	if s == "" {
		return h.svc.CurrentYear(), true
	}

	year, err := strconv.Atoi(s)
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return 0, false
	}

	return year, true
}

func toMonthlyResponse(totals []report.MonthlyTotal) []monthlyTotalResponse {
	resp := make([]monthlyTotalResponse, len(totals))
	for i, m := range totals {
		resp[i] = monthlyTotalResponse{
			Month:    int(m.Month),
			Name:     m.Month.String()[:3],
			Income:   money.Format(m.Income),
			Expenses: money.Format(m.Expenses),
			Net:      money.Format(m.Net),
		}
	}

	return resp
}

func toBreakdownResponse(breakdown map[transaction.Category]int64) map[string]string {
	resp := make(map[string]string, len(breakdown))
	for category, cents := range breakdown {
		resp[string(category)] = money.Format(cents)
	}

	return resp
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
