package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phillipyBr/Meu-Bolso/internal/app"
	"github.com/phillipyBr/Meu-Bolso/internal/export"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

type Handler struct {
	app *app.App
}

func NewHandler(a *app.App) *Handler {
	return &Handler{app: a}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := transaction.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name, body, err := h.app.Export(filter)
	if errors.Is(err, export.ErrNothingToExport) {
		http.Error(w, "nenhuma transação para exportar", http.StatusNotFound)
		return
	}

	if err != nil {
		slog.Error("failed to export transactions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if _, err := io.WriteString(w, body); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
