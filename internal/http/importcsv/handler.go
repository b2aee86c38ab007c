package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phillipyBr/Meu-Bolso/internal/app"
	txHandler "github.com/phillipyBr/Meu-Bolso/internal/http/transaction"
	"github.com/phillipyBr/Meu-Bolso/internal/importer"
)

type Handler struct {
	app *app.App
}

func NewHandler(a *app.App) *Handler {
	return &Handler{app: a}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importSuccessResponse struct {
	Imported     int                  `json:"imported"`
	Transactions []txHandler.Response `json:"transactions"`
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

	txs, err := h.app.Import(r.Context(), importer.Format(r.FormValue("format")), file)
	if errors.Is(err, app.ErrInvalidImport) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err != nil {
		slog.Error("failed to import transactions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := importSuccessResponse{
		Imported:     len(txs),
		Transactions: txHandler.NewResponseList(txs),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
