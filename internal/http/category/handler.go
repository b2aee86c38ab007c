package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phillipyBr/Meu-Bolso/internal/category"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.all)
	r.Get("/{kind}", h.list)
	r.Post("/{kind}", h.add)
	r.Delete("/{kind}/{name}", h.remove)
}

type categoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

type addCategoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) all(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, categoriesResponse{
		Income:  h.svc.List(transaction.TypeIncome),
		Expense: h.svc.List(transaction.TypeExpense),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, h.svc.List(kind))
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	var req addCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Add(r.Context(), kind, name); err != nil {
		h.serviceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, h.svc.List(kind))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	// chi routes on RawPath when the request carried escapes such as %2F;
	// only then is the parameter still encoded.
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			http.Error(w, "invalid category name", http.StatusBadRequest)
			return
		}
		name = unescaped
	}

	if err := h.svc.Remove(r.Context(), kind, name); err != nil {
		h.serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func kindParam(w http.ResponseWriter, r *http.Request) (transaction.Type, bool) {
	kind := transaction.Type(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		http.Error(w, "kind must be income or expense", http.StatusNotFound)
		return "", false
	}

	return kind, true
}

func (h *Handler) serviceError(w http.ResponseWriter, err error) {
	if errors.Is(err, category.ErrUnknownKind) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slog.Error("failed to update categories", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
