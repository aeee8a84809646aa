package geography

import (
	"errors"
	"net/http"

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
	r.HandleFunc("/geography/regions", h.handleListRegions).Methods(http.MethodGet)
	r.HandleFunc("/geography/regions/{id}/units", h.handleListRegionalUnits).Methods(http.MethodGet)
	r.HandleFunc("/geography/units/{id}/municipalities", h.handleListMunicipalities).Methods(http.MethodGet)
	r.HandleFunc("/geography/municipalities/{id}", h.handleGetMunicipality).Methods(http.MethodGet)
}

func (h *Handler) handleListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.ListRegions(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list regions")
		http.Error(w, "failed to list regions", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": regions})
}

func (h *Handler) handleListRegionalUnits(w http.ResponseWriter, r *http.Request) {
	regionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid region id", http.StatusBadRequest)
		return
	}
	units, err := h.service.ListRegionalUnits(r.Context(), regionID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list regional units")
		http.Error(w, "failed to list regional units", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": units})
}

func (h *Handler) handleListMunicipalities(w http.ResponseWriter, r *http.Request) {
	unitID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid regional unit id", http.StatusBadRequest)
		return
	}
	municipalities, err := h.service.ListMunicipalities(r.Context(), unitID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list municipalities")
		http.Error(w, "failed to list municipalities", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": municipalities})
}

func (h *Handler) handleGetMunicipality(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid municipality id", http.StatusBadRequest)
		return
	}
	municipality, err := h.service.GetMunicipality(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "municipality not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to get municipality")
		http.Error(w, "failed to get municipality", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"municipality": municipality})
}
