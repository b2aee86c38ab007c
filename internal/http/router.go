package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phillipyBr/Meu-Bolso/internal/http/advice"
	"github.com/phillipyBr/Meu-Bolso/internal/http/category"
	"github.com/phillipyBr/Meu-Bolso/internal/http/dashboard"
	"github.com/phillipyBr/Meu-Bolso/internal/http/export"
	"github.com/phillipyBr/Meu-Bolso/internal/http/importcsv"
	"github.com/phillipyBr/Meu-Bolso/internal/http/transaction"
)

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

func New(
	opts Options,
	transactionsV1 *transaction.Handler,
	categoriesV1 *category.Handler,
	dashboardV1 *dashboard.Handler,
	exportV1 *export.Handler,
	importV1 *importcsv.Handler,
	adviceV1 *advice.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			categoriesV1.Routes(r)
		})

		r.Route("/dashboard", dashboardV1.Routes)
		r.Route("/export", exportV1.Routes)
		r.Route("/import", importV1.Routes)
		r.Route("/advice", adviceV1.Routes)
	})

	return router
}
