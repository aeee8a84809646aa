package person

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
	r.HandleFunc("/persons", h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/persons", h.handleList).Methods(http.MethodGet)
	r.HandleFunc("/persons/{id}", h.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/persons/{id}", h.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/persons/{id}", h.handleDelete).Methods(http.MethodDelete)
	r.HandleFunc("/persons/{id}/contacts", h.handleCreateContact).Methods(http.MethodPost)
	r.HandleFunc("/persons/{id}/contacts", h.handleListContacts).Methods(http.MethodGet)
	r.HandleFunc("/contacts/{id}", h.handleUpdateContact).Methods(http.MethodPut)
	r.HandleFunc("/contacts/{id}", h.handleDeleteContact).Methods(http.MethodDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var p models.Person
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), p, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to create person")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"person": h.service.Project(created)})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	people, err := h.service.List(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list persons")
		http.Error(w, "failed to list persons", http.StatusInternalServerError)
		return
	}
	views := make([]View, 0, len(people))
	for _, p := range people {
		views = append(views, h.service.Project(p))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": views})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "failed to get person")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"person": h.service.Project(p)})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	var p models.Person
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	p.ID = id
	updated, err := h.service.Update(r.Context(), p, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to update person")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"person": h.service.Project(updated)})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), id, identity.ActorFrom(r.Context())); err != nil {
		h.writeError(w, err, "failed to delete person")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	var c models.ContactPerson
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	c.ID = uuid.Nil
	c.PersonID = personID
	saved, err := h.service.SaveContact(r.Context(), c, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to save contact")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"contact": saved})
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	contacts, err := h.service.ListContacts(r.Context(), personID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list contacts")
		http.Error(w, "failed to list contacts", http.StatusInternalServerError)
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
	existing, err := h.service.GetContact(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "failed to get contact")
		return
	}
	var c models.ContactPerson
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	c.ID = id
	c.PersonID = existing.PersonID
	saved, err := h.service.SaveContact(r.Context(), c, identity.ActorFrom(r.Context()))
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
	case errors.Is(err, ErrNotFound):
		http.Error(w, "person not found", http.StatusNotFound)
	case errors.Is(err, ErrContactNotFound):
		http.Error(w, "contact not found", http.StatusNotFound)
	case httpx.WriteValidationError(w, err):
	default:
		logger.Log.WithError(err).Error(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
