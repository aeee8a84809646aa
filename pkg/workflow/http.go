package workflow

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/httpx"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/identity"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/persons/{id}/requests", h.handleCreateRequest).Methods(http.MethodPost)
	r.HandleFunc("/persons/{id}/requests", h.handleListPersonRequests).Methods(http.MethodGet)
	r.HandleFunc("/requests", h.handleListRequests).Methods(http.MethodGet)
	r.HandleFunc("/requests/{id}", h.handleGetRequest).Methods(http.MethodGet)
	r.HandleFunc("/requests/{id}", h.handleUpdateRequest).Methods(http.MethodPut)
	r.HandleFunc("/requests/{id}", h.handleDeleteRequest).Methods(http.MethodDelete)

	r.HandleFunc("/requests/{id}/actions", h.handleCreateAction).Methods(http.MethodPost)
	r.HandleFunc("/requests/{id}/actions", h.handleListActions).Methods(http.MethodGet)
	r.HandleFunc("/actions/{id}", h.handleUpdateAction).Methods(http.MethodPut)
	r.HandleFunc("/actions/{id}", h.handleDeleteAction).Methods(http.MethodDelete)

	r.HandleFunc("/stats/workload", h.handleWorkloadStats).Methods(http.MethodGet)
}

// requestPayload is the write shape: tag IDs come in flat, the stored
// request carries resolved tags.
type requestPayload struct {
	models.Request
	TagIDs []uuid.UUID `json:"tag_ids"`
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	payload.Request.ID = uuid.Nil
	payload.Request.PersonID = personID
	if actorID := identity.ActorID(r.Context()); actorID != nil {
		payload.Request.CreatedBy = actorID
	}
	view, err := h.service.CreateRequest(r.Context(), payload.Request, payload.TagIDs, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to create request")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"request": view})
}

func (h *Handler) handleListPersonRequests(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	filter := filterFromQuery(r)
	filter.PersonID = &personID
	views, err := h.service.ListRequests(r.Context(), filter)
	if err != nil {
		h.writeError(w, err, "failed to list requests")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": views})
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListRequests(r.Context(), filterFromQuery(r))
	if err != nil {
		h.writeError(w, err, "failed to list requests")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": views})
}

func filterFromQuery(r *http.Request) RequestFilter {
	var filter RequestFilter
	if raw := r.URL.Query().Get("status_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.StatusID = &id
		}
	}
	if raw := r.URL.Query().Get("assigned_to"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.AssignedTo = &id
		}
	}
	filter.Category = r.URL.Query().Get("category")
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}
	return filter
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	view, err := h.service.GetRequest(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "failed to get request")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"request": view})
}

func (h *Handler) handleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	payload.Request.ID = id
	view, err := h.service.UpdateRequest(r.Context(), payload.Request, payload.TagIDs, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to update request")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"request": view})
}

func (h *Handler) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteRequest(r.Context(), id, identity.ActorFrom(r.Context())); err != nil {
		h.writeError(w, err, "failed to delete request")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateAction(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	var action models.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	action.ID = uuid.Nil
	action.RequestID = requestID
	if actorID := identity.ActorID(r.Context()); actorID != nil {
		action.PerformedBy = actorID
	}
	created, err := h.service.CreateAction(r.Context(), action, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to create action")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"action": created})
}

func (h *Handler) handleListActions(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	actions, err := h.service.ListActions(r.Context(), requestID)
	if err != nil {
		h.writeError(w, err, "failed to list actions")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": actions})
}

func (h *Handler) handleUpdateAction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid action id", http.StatusBadRequest)
		return
	}
	var action models.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	action.ID = id
	updated, err := h.service.UpdateAction(r.Context(), action, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to update action")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"action": updated})
}

func (h *Handler) handleDeleteAction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid action id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteAction(r.Context(), id, identity.ActorFrom(r.Context())); err != nil {
		h.writeError(w, err, "failed to delete action")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleWorkloadStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.WorkloadStats(r.Context())
	if err != nil {
		h.writeError(w, err, "failed to compute workload stats")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}

func (h *Handler) writeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		http.Error(w, "request not found", http.StatusNotFound)
	case errors.Is(err, ErrActionNotFound):
		http.Error(w, "action not found", http.StatusNotFound)
	case httpx.WriteValidationError(w, err):
	default:
		logger.Log.WithError(err).Error(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
