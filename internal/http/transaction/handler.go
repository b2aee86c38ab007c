package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
	now func() time.Time
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Type        transaction.Type `json:"type"`
	Amount      json.Number      `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
}

var errMissingField = errors.New("missing required field")

func (req createTransactionRequest) params(today time.Time) (transaction.CreateParams, error) {
	if !req.Type.Valid() {
		return transaction.CreateParams{}, fmt.Errorf("invalid type %q", req.Type)
	}

	for _, f := range []struct{ name, value string }{
		{"amount", req.Amount.String()},
		{"category", req.Category},
		{"description", req.Description},
	} {
		if strings.TrimSpace(f.value) == "" {
			return transaction.CreateParams{}, fmt.Errorf("%w: %s", errMissingField, f.name)
		}
	}

	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("invalid amount: %w", err)
	}

	if amount.IsNegative() {
		return transaction.CreateParams{}, errors.New("amount must not be negative")
	}

	date := today
	if req.Date != "" {
		if date, err = time.Parse(time.DateOnly, req.Date); err != nil {
			return transaction.CreateParams{}, fmt.Errorf("invalid date: %w", err)
		}
	}

	return transaction.CreateParams{
		Type:        req.Type,
		Amount:      amount,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Date:        date,
	}, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.params(h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), params)
	if err != nil {
		slog.Error("failed to create transaction", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(NewResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := transaction.ParseFilter(r.URL.Query().Get("type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(NewResponseList(h.svc.List(filter))); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("failed to delete transaction", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
