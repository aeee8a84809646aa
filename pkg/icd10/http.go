package icd10

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/httpx"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/icd10/categories", h.handleListCategories).Methods(http.MethodGet)
	r.HandleFunc("/icd10/categories/{id}/subcategories", h.handleListSubcategories).Methods(http.MethodGet)
	r.HandleFunc("/icd10/categories/{id}/codes", h.handleListCodes).Methods(http.MethodGet)
	r.HandleFunc("/icd10/codes/search", h.handleSearchCodes).Methods(http.MethodGet)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list icd10 categories")
		http.Error(w, "failed to list categories", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": categories})
}

func (h *Handler) handleListSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}
	subcategories, err := h.service.ListSubcategories(r.Context(), categoryID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list icd10 subcategories")
		http.Error(w, "failed to list subcategories", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": subcategories})
}

func (h *Handler) handleListCodes(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}
	var subcategoryID *uuid.UUID
	if raw := r.URL.Query().Get("subcategory_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid subcategory id", http.StatusBadRequest)
			return
		}
		subcategoryID = &parsed
	}
	codes, err := h.service.ListCodes(r.Context(), categoryID, subcategoryID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list icd10 codes")
		http.Error(w, "failed to list codes", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": codes})
}

func (h *Handler) handleSearchCodes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	codes, err := h.service.SearchCodes(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to search icd10 codes")
		http.Error(w, "failed to search codes", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": codes})
}
