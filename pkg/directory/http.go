package directory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/httpx"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/centers", h.handleSaveCenter).Methods(http.MethodPost)
	r.HandleFunc("/centers", h.handleListCenters).Methods(http.MethodGet)
	r.HandleFunc("/centers/{id}", h.handleUpdateCenter).Methods(http.MethodPut)
	r.HandleFunc("/centers/{id}", h.handleDeleteCenter).Methods(http.MethodDelete)

	r.HandleFunc("/organizations", h.handleSaveOrganization).Methods(http.MethodPost)
	r.HandleFunc("/organizations", h.handleListOrganizations).Methods(http.MethodGet)
	r.HandleFunc("/organizations/{id}", h.handleGetOrganization).Methods(http.MethodGet)
	r.HandleFunc("/organizations/{id}", h.handleUpdateOrganization).Methods(http.MethodPut)
	r.HandleFunc("/organizations/{id}", h.handleDeleteOrganization).Methods(http.MethodDelete)

	r.HandleFunc("/organizations/{id}/contacts", h.handleCreateContact).Methods(http.MethodPost)
	r.HandleFunc("/organizations/{id}/contacts", h.handleListContacts).Methods(http.MethodGet)
	r.HandleFunc("/org-contacts/{id}", h.handleUpdateContact).Methods(http.MethodPut)
	r.HandleFunc("/org-contacts/{id}", h.handleDeleteContact).Methods(http.MethodDelete)
}

func (h *Handler) handleSaveCenter(w http.ResponseWriter, r *http.Request) {
	var center models.Center
	if err := json.NewDecoder(r.Body).Decode(&center); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	center.ID = uuid.Nil
	saved, err := h.service.SaveCenter(r.Context(), center)
	if err != nil {
		h.writeError(w, err, "failed to create center")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"center": saved})
}

func (h *Handler) handleListCenters(w http.ResponseWriter, r *http.Request) {
	centers, err := h.service.ListCenters(r.Context(), r.URL.Query().Get("include_inactive") == "true")
	if err != nil {
		h.writeError(w, err, "failed to list centers")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": centers})
}

func (h *Handler) handleUpdateCenter(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid center id", http.StatusBadRequest)
		return
	}
	var center models.Center
	if err := json.NewDecoder(r.Body).Decode(&center); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	center.ID = id
	saved, err := h.service.SaveCenter(r.Context(), center)
	if err != nil {
		h.writeError(w, err, "failed to update center")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"center": saved})
}

func (h *Handler) handleDeleteCenter(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid center id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteCenter(r.Context(), id); err != nil {
		h.writeError(w, err, "failed to delete center")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSaveOrganization(w http.ResponseWriter, r *http.Request) {
	var org models.ExternalOrganization
	if err := json.NewDecoder(r.Body).Decode(&org); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	org.ID = uuid.Nil
	saved, err := h.service.SaveOrganization(r.Context(), org)
	if err != nil {
		h.writeError(w, err, "failed to create organization")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"organization": saved})
}

func (h *Handler) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.service.ListOrganizations(r.Context(),
		r.URL.Query().Get("type"),
		r.URL.Query().Get("include_inactive") == "true")
	if err != nil {
		h.writeError(w, err, "failed to list organizations")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": orgs})
}

func (h *Handler) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}
	org, err := h.service.GetOrganization(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "failed to get organization")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"organization": org})
}

func (h *Handler) handleUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}
	var org models.ExternalOrganization
	if err := json.NewDecoder(r.Body).Decode(&org); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	org.ID = id
	saved, err := h.service.SaveOrganization(r.Context(), org)
	if err != nil {
		h.writeError(w, err, "failed to update organization")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"organization": saved})
}

func (h *Handler) handleDeleteOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteOrganization(r.Context(), id); err != nil {
		h.writeError(w, err, "failed to delete organization")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}
	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	contact.ID = uuid.Nil
	contact.OrganizationID = orgID
	saved, err := h.service.SaveContact(r.Context(), contact)
	if err != nil {
		h.writeError(w, err, "failed to create contact")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"contact": saved})
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}
	contacts, err := h.service.ListContacts(r.Context(), orgID)
	if err != nil {
		h.writeError(w, err, "failed to list contacts")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": contacts})
}

func (h *Handler) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}
	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	contact.ID = id
	saved, err := h.service.SaveContact(r.Context(), contact)
	if err != nil {
		h.writeError(w, err, "failed to update contact")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"contact": saved})
}

func (h *Handler) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteContact(r.Context(), id); err != nil {
		h.writeError(w, err, "failed to delete contact")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrCenterNotFound):
		http.Error(w, "center not found", http.StatusNotFound)
	case errors.Is(err, ErrOrganizationNotFound):
		http.Error(w, "organization not found", http.StatusNotFound)
	case errors.Is(err, ErrContactNotFound):
		http.Error(w, "contact not found", http.StatusNotFound)
	case httpx.WriteValidationError(w, err):
	default:
		logger.Log.WithError(err).Error(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
