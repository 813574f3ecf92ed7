package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/tally/internal/http/export"
	"github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	"github.com/MrJamesThe3rd/tally/internal/http/report"
	"github.com/MrJamesThe3rd/tally/internal/http/transaction"
)

func New(
	transactionsV1 *transaction.Handler,
	reportsV1 *report.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	corsOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/export", exportV1.Routes)
	})

	return router
}
