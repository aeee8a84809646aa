package medical

import (
	"encoding/json"
	"errors"
	"net/http"

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
	r.HandleFunc("/persons/{id}/medical-history", h.handleSaveHistory).Methods(http.MethodPut)
	r.HandleFunc("/persons/{id}/medical-history", h.handleGetHistory).Methods(http.MethodGet)

	r.HandleFunc("/persons/{id}/neoplasms", h.handleCreateNeoplasm).Methods(http.MethodPost)
	r.HandleFunc("/persons/{id}/neoplasms", h.handleListNeoplasms).Methods(http.MethodGet)
	r.HandleFunc("/neoplasms/{id}", h.handleUpdateNeoplasm).Methods(http.MethodPut)
	r.HandleFunc("/neoplasms/{id}", h.handleDeleteNeoplasm).Methods(http.MethodDelete)

	r.HandleFunc("/neoplasms/{id}/therapies", h.handleCreateTherapy).Methods(http.MethodPost)
	r.HandleFunc("/neoplasms/{id}/therapies", h.handleListTherapies).Methods(http.MethodGet)
	r.HandleFunc("/therapies/{id}", h.handleUpdateTherapy).Methods(http.MethodPut)
	r.HandleFunc("/therapies/{id}", h.handleDeleteTherapy).Methods(http.MethodDelete)

	r.HandleFunc("/persons/{id}/comorbidity", h.handleSaveComorbidity).Methods(http.MethodPut)
	r.HandleFunc("/persons/{id}/comorbidity", h.handleGetComorbidity).Methods(http.MethodGet)

	r.HandleFunc("/reports/kepa", h.handleKepaReport).Methods(http.MethodGet)
	r.HandleFunc("/reports/kepa/export", h.handleKepaExport).Methods(http.MethodGet)
}

func (h *Handler) handleSaveHistory(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	var history models.MedicalHistory
	if err := json.NewDecoder(r.Body).Decode(&history); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	history.PersonID = personID
	view, err := h.service.SaveHistory(r.Context(), history, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to save medical history")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"medical_history": view})
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	view, err := h.service.GetHistory(r.Context(), personID)
	if err != nil {
		h.writeError(w, err, "failed to get medical history")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"medical_history": view})
}

func (h *Handler) handleCreateNeoplasm(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	var neoplasm models.Neoplasm
	if err := json.NewDecoder(r.Body).Decode(&neoplasm); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	neoplasm.ID = uuid.Nil
	neoplasm.PersonID = personID
	created, err := h.service.CreateNeoplasm(r.Context(), neoplasm, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to create neoplasm")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"neoplasm": created})
}

func (h *Handler) handleListNeoplasms(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	neoplasms, err := h.service.ListNeoplasms(r.Context(), personID)
	if err != nil {
		h.writeError(w, err, "failed to list neoplasms")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": neoplasms})
}

func (h *Handler) handleUpdateNeoplasm(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid neoplasm id", http.StatusBadRequest)
		return
	}
	var neoplasm models.Neoplasm
	if err := json.NewDecoder(r.Body).Decode(&neoplasm); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	neoplasm.ID = id
	updated, err := h.service.UpdateNeoplasm(r.Context(), neoplasm, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to update neoplasm")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"neoplasm": updated})
}

func (h *Handler) handleDeleteNeoplasm(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid neoplasm id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteNeoplasm(r.Context(), id, identity.ActorFrom(r.Context())); err != nil {
		h.writeError(w, err, "failed to delete neoplasm")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateTherapy(w http.ResponseWriter, r *http.Request) {
	neoplasmID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid neoplasm id", http.StatusBadRequest)
		return
	}
	var therapy models.Therapy
	if err := json.NewDecoder(r.Body).Decode(&therapy); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	therapy.ID = uuid.Nil
	therapy.NeoplasmID = neoplasmID
	created, err := h.service.CreateTherapy(r.Context(), therapy, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to create therapy")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"therapy": created})
}

func (h *Handler) handleListTherapies(w http.ResponseWriter, r *http.Request) {
	neoplasmID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid neoplasm id", http.StatusBadRequest)
		return
	}
	therapies, err := h.service.ListTherapies(r.Context(), neoplasmID)
	if err != nil {
		h.writeError(w, err, "failed to list therapies")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": therapies})
}

func (h *Handler) handleUpdateTherapy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid therapy id", http.StatusBadRequest)
		return
	}
	var therapy models.Therapy
	if err := json.NewDecoder(r.Body).Decode(&therapy); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	therapy.ID = id
	updated, err := h.service.UpdateTherapy(r.Context(), therapy, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to update therapy")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"therapy": updated})
}

func (h *Handler) handleDeleteTherapy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid therapy id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteTherapy(r.Context(), id, identity.ActorFrom(r.Context())); err != nil {
		h.writeError(w, err, "failed to delete therapy")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSaveComorbidity(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	var comorbidity models.Comorbidity
	if err := json.NewDecoder(r.Body).Decode(&comorbidity); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	comorbidity.PersonID = personID
	saved, err := h.service.SaveComorbidity(r.Context(), comorbidity, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to save comorbidity")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"comorbidity": saved})
}

func (h *Handler) handleGetComorbidity(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	comorbidity, err := h.service.GetComorbidity(r.Context(), personID)
	if err != nil {
		h.writeError(w, err, "failed to get comorbidity")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"comorbidity": comorbidity})
}

func (h *Handler) handleKepaReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.KepaReport(r.Context())
	if err != nil {
		h.writeError(w, err, "failed to build kepa report")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": report})
}

func (h *Handler) handleKepaExport(w http.ResponseWriter, r *http.Request) {
	buf, err := h.service.ExportKepaReport(r.Context())
	if err != nil {
		h.writeError(w, err, "failed to export kepa report")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="kepa-expiry.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrHistoryNotFound):
		http.Error(w, "medical history not found", http.StatusNotFound)
	case errors.Is(err, ErrNeoplasmNotFound):
		http.Error(w, "neoplasm not found", http.StatusNotFound)
	case errors.Is(err, ErrTherapyNotFound):
		http.Error(w, "therapy not found", http.StatusNotFound)
	case errors.Is(err, ErrComorbidityNotFound):
		http.Error(w, "comorbidity not found", http.StatusNotFound)
	case httpx.WriteValidationError(w, err):
	default:
		logger.Log.WithError(err).Error(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
