package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phillipyBr/Meu-Bolso/internal/app"
	"github.com/phillipyBr/Meu-Bolso/internal/report"
)

type Handler struct {
	app *app.App
	now func() time.Time
}

func NewHandler(a *app.App) *Handler {
	return &Handler{app: a, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type totalsResponse struct {
	Income  json.Number `json:"income"`
	Expense json.Number `json:"expense"`
	Balance json.Number `json:"balance"`
}

type categoryResponse struct {
	Category string      `json:"category"`
	Total    json.Number `json:"total"`
}

type monthResponse struct {
	Month   string      `json:"month"`
	Label   string      `json:"label"`
	Income  json.Number `json:"income"`
	Expense json.Number `json:"expense"`
}

type dashboardResponse struct {
	Totals     totalsResponse     `json:"totals"`
	Categories []categoryResponse `json:"categories"`
	Months     []monthResponse    `json:"months"`
}

func toResponse(d report.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		Totals: totalsResponse{
			Income:  json.Number(d.Totals.Income.StringFixed(2)),
			Expense: json.Number(d.Totals.Expense.StringFixed(2)),
			Balance: json.Number(d.Totals.Balance.StringFixed(2)),
		},
		Categories: make([]categoryResponse, len(d.Categories)),
		Months:     make([]monthResponse, len(d.Months)),
	}

	for i, c := range d.Categories {
		resp.Categories[i] = categoryResponse{Category: c.Category, Total: json.Number(c.Total.StringFixed(2))}
	}

	for i, m := range d.Months {
		resp.Months[i] = monthResponse{
			Month:   time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			Label:   m.Label,
			Income:  json.Number(m.Income.StringFixed(2)),
			Expense: json.Number(m.Expense.StringFixed(2)),
		}
	}

	return resp
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ref := h.now()

	if s := r.URL.Query().Get("ref"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid ref date", http.StatusBadRequest)
			return
		}

		ref = t
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(h.app.Dashboard(ref))); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
