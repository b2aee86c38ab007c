package advice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phillipyBr/Meu-Bolso/internal/advisor"
	"github.com/phillipyBr/Meu-Bolso/internal/app"
)

type Handler struct {
	app *app.App
}

func NewHandler(a *app.App) *Handler {
	return &Handler{app: a}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.request)
	r.Get("/", h.status)
}

type adviceResponse struct {
	State string `json:"state"`
	Text  string `json:"text,omitempty"`
}

func (h *Handler) request(w http.ResponseWriter, _ *http.Request) {
	err := h.app.RequestAdvice()

	switch {
	case errors.Is(err, advisor.ErrPending):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, advisor.ErrNoTransactions):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		slog.Error("failed to request advice", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.write(w, http.StatusAccepted)
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request) {
	h.write(w, http.StatusOK)
}

func (h *Handler) write(w http.ResponseWriter, status int) {
	res := h.app.Advice.Result()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(adviceResponse{State: res.State.String(), Text: res.Text}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
