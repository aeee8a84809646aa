package audit

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/httpx"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
)

type Handler struct {
	trail *Trail
}

func NewHandler(trail *Trail) *Handler {
	return &Handler{trail: trail}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/audit/{entity}/{id}", h.handleListEntries).Methods(http.MethodGet)
}

func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entity := vars["entity"]
	if !ValidEntity(entity) {
		http.Error(w, "unknown audit entity", http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	entries, err := h.trail.ListByEntity(r.Context(), entity, vars["id"], limit)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list audit entries")
		http.Error(w, "failed to list audit entries", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": entries})
}
