package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// Notifier is told after every successful catalog write so connected menu
// boards can refresh.
type Notifier interface {
	MenuChanged()
}

type noopNotifier struct{}

func (noopNotifier) MenuChanged() {}

type Handler struct {
	service  *Service
	notifier Notifier
}

func NewHandler(service *Service, notifier Notifier) *Handler {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Handler{service: service, notifier: notifier}
}

type createCategoryRequest struct {
	Names map[string]string `json:"names"`
	Order int               `json:"order"`
}

type createSubcategoryRequest struct {
	CategoryID string            `json:"categoryId"`
	Names      map[string]string `json:"names"`
	Order      int               `json:"order"`
}

type createNamedRequest struct {
	Names      map[string]string `json:"names"`
	PriceCents int               `json:"priceCents"`
}

// --- Categories ---

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if categories == nil {
		categories = []Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Names) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "names is required"})
		return
	}
	c, err := h.service.CreateCategory(r.Context(), req.Names, req.Order)
	if err != nil {
		slog.Error("create category failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	h.notifier.MenuChanged()
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCategories takes the bulk shape the admin screens send: an object
// keyed by category id, each value a partial update.
func (h *Handler) UpdateCategories(w http.ResponseWriter, r *http.Request) {
	var patches map[string]CategoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patches); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(patches) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no updates given"})
		return
	}
	if err := h.service.UpdateCategories(r.Context(), patches); err != nil {
		handleServiceError(w, err)
		return
	}
	h.notifier.MenuChanged()
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteCategories takes a bare JSON array of category ids.
func (h *Handler) DeleteCategories(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.service.DeleteCategories(r.Context(), ids); err != nil {
		handleServiceError(w, err)
		return
	}
	h.notifier.MenuChanged()
	w.WriteHeader(http.StatusNoContent)
}

// --- Subcategories ---

func (h *Handler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListSubcategories(r.Context(), r.URL.Query().Get("categoryId"))
	if err != nil {
		slog.Error("list subcategories failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if subs == nil {
		subs = []Subcategory{}
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *Handler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var req createSubcategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.CategoryID == "" || len(req.Names) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "categoryId and names are required"})
		return
	}
	sc, err := h.service.CreateSubcategory(r.Context(), req.CategoryID, req.Names, req.Order)
	if err != nil {
		slog.Error("create subcategory failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	h.notifier.MenuChanged()
	writeJSON(w, http.StatusCreated, sc)
}

func (h *Handler) UpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	var sc Subcategory
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sc.ID = mux.Vars(r)["subcategoryId"]
	if err := h.service.UpdateSubcategory(r.Context(), sc); err != nil {
		handleServiceError(w, err)
		return
	}
	h.notifier.MenuChanged()
	writeJSON(w, http.StatusOK, sc)
}

func (h *Handler) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSubcategory(r.Context(), mux.Vars(r)["subcategoryId"]); err != nil {
		handleServiceError(w, err)
		return
	}
	h.notifier.MenuChanged()
	w.WriteHeader(http.StatusNoContent)
}

// --- Menu items ---

func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMenuItems(r.Context(), r.URL.Query().Get("subcategoryId"))
	if err != nil {
		slog.Error("list menu items failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if items == nil {
		items = []MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if item.SubcategoryID == "" || len(item.Names) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "subcategoryId and names are required"})
		return
	}
	created, err := h.service.CreateMenuItem(r.Context(), item)
	if err != nil {
		slog.Error("create menu item failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	h.notifier.MenuChanged()
	writeJSON(w, http.StatusCreated, created)
}

// UpdateMenuItems mirrors UpdateCategories: an id-keyed object of partial
// updates, applied atomically.
func (h *Handler) UpdateMenuItems(w http.ResponseWriter, r *http.Request) {
	var patches map[string]MenuItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patches); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(patches) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no updates given"})
		return
	}
	if err := h.service.UpdateMenuItems(r.Context(), patches); err != nil {
		handleServiceError(w, err)
		return
	}
	h.notifier.MenuChanged()
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) DeleteMenuItems(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.service.DeleteMenuItems(r.Context(), ids); err != nil {
		handleServiceError(w, err)
		return
	}
	h.notifier.MenuChanged()
	w.WriteHeader(http.StatusNoContent)
}

// --- Allergens / supplements / side dishes ---

func (h *Handler) ListAllergens(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListAllergens(r.Context())
	if err != nil {
		slog.Error("list allergens failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if out == nil {
		out = []Allergen{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateAllergen(w http.ResponseWriter, r *http.Request) {
	var req createNamedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Names) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "names is required"})
		return
	}
	a, err := h.service.CreateAllergen(r.Context(), req.Names)
	if err != nil {
		slog.Error("create allergen failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) DeleteAllergen(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAllergen(r.Context(), mux.Vars(r)["allergenId"]); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListSupplements(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListSupplements(r.Context())
	if err != nil {
		slog.Error("list supplements failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if out == nil {
		out = []Supplement{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateSupplement(w http.ResponseWriter, r *http.Request) {
	var req createNamedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Names) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "names is required"})
		return
	}
	sup, err := h.service.CreateSupplement(r.Context(), req.Names, req.PriceCents)
	if err != nil {
		slog.Error("create supplement failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusCreated, sup)
}

func (h *Handler) DeleteSupplement(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSupplement(r.Context(), mux.Vars(r)["supplementId"]); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListSideDishes(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListSideDishes(r.Context())
	if err != nil {
		slog.Error("list side dishes failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if out == nil {
		out = []SideDish{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateSideDish(w http.ResponseWriter, r *http.Request) {
	var req createNamedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Names) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "names is required"})
		return
	}
	sd, err := h.service.CreateSideDish(r.Context(), req.Names, req.PriceCents)
	if err != nil {
		slog.Error("create side dish failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusCreated, sd)
}

func (h *Handler) DeleteSideDish(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSideDish(r.Context(), mux.Vars(r)["sideDishId"]); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Public board ---

// BoardMenu serves the guest-facing menu tree without authentication.
func (h *Handler) BoardMenu(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.BoardMenu(r.Context())
	if err != nil {
		slog.Error("board menu failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		slog.Error("catalog service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
