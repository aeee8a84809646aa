package documents

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
	r.HandleFunc("/document-types", h.handleSaveDocumentType).Methods(http.MethodPost)
	r.HandleFunc("/document-types", h.handleListDocumentTypes).Methods(http.MethodGet)
	r.HandleFunc("/document-types/{id}", h.handleDeleteDocumentType).Methods(http.MethodDelete)

	r.HandleFunc("/documents", h.handleCreateDocument).Methods(http.MethodPost)
	r.HandleFunc("/documents/{id}", h.handleGetDocument).Methods(http.MethodGet)
	r.HandleFunc("/documents/{id}", h.handleUpdateDocument).Methods(http.MethodPut)
	r.HandleFunc("/documents/{id}", h.handleDeleteDocument).Methods(http.MethodDelete)
	r.HandleFunc("/documents/{id}/verify", h.handleVerifyDocument).Methods(http.MethodPost)
	r.HandleFunc("/persons/{id}/documents", h.handleListPersonDocuments).Methods(http.MethodGet)
	r.HandleFunc("/requests/{id}/documents", h.handleListRequestDocuments).Methods(http.MethodGet)

	r.HandleFunc("/requests/{id}/attachments", h.handleAddRequestAttachment).Methods(http.MethodPost)
	r.HandleFunc("/requests/{id}/attachments", h.handleListRequestAttachments).Methods(http.MethodGet)
	r.HandleFunc("/request-attachments/{id}", h.handleDeleteRequestAttachment).Methods(http.MethodDelete)

	r.HandleFunc("/actions/{id}/attachments", h.handleAddActionAttachment).Methods(http.MethodPost)
	r.HandleFunc("/actions/{id}/attachments", h.handleListActionAttachments).Methods(http.MethodGet)
	r.HandleFunc("/action-attachments/{id}", h.handleDeleteActionAttachment).Methods(http.MethodDelete)
}

func (h *Handler) handleSaveDocumentType(w http.ResponseWriter, r *http.Request) {
	var dt models.DocumentType
	if err := json.NewDecoder(r.Body).Decode(&dt); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	saved, err := h.service.SaveDocumentType(r.Context(), dt)
	if err != nil {
		h.writeError(w, err, "failed to save document type")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"document_type": saved})
}

func (h *Handler) handleListDocumentTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListDocumentTypes(r.Context())
	if err != nil {
		h.writeError(w, err, "failed to list document types")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": types})
}

func (h *Handler) handleDeleteDocumentType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid document type id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteDocumentType(r.Context(), id); err != nil {
		h.writeError(w, err, "failed to delete document type")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// documentPayload carries the document metadata together with what the
// file-storage layer reported for the uploaded binary.
type documentPayload struct {
	models.Document
	StoredFile *models.StoredFile `json:"stored_file,omitempty"`
}

func (h *Handler) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var payload documentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	payload.Document.ID = uuid.Nil
	if actorID := identity.ActorID(r.Context()); actorID != nil {
		payload.Document.UploadedBy = actorID
	}
	created, err := h.service.CreateDocument(r.Context(), payload.Document, payload.StoredFile, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to create document")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"document": created})
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}
	doc, err := h.service.GetDocument(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "failed to get document")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"document": doc})
}

func (h *Handler) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}
	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	doc.ID = id
	updated, err := h.service.UpdateDocument(r.Context(), doc, identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to update document")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"document": updated})
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteDocument(r.Context(), id, identity.ActorFrom(r.Context())); err != nil {
		h.writeError(w, err, "failed to delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleVerifyDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}
	verified, err := h.service.VerifyDocument(r.Context(), id, identity.ActorID(r.Context()), identity.ActorFrom(r.Context()))
	if err != nil {
		h.writeError(w, err, "failed to verify document")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"document": verified})
}

func (h *Handler) handleListPersonDocuments(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}
	docs, err := h.service.ListDocumentsByPerson(r.Context(), personID)
	if err != nil {
		h.writeError(w, err, "failed to list documents")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": docs})
}

func (h *Handler) handleListRequestDocuments(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	docs, err := h.service.ListDocumentsByRequest(r.Context(), requestID)
	if err != nil {
		h.writeError(w, err, "failed to list documents")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": docs})
}

type requestAttachmentPayload struct {
	models.RequestAttachment
	StoredFile *models.StoredFile `json:"stored_file,omitempty"`
}

func (h *Handler) handleAddRequestAttachment(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	var payload requestAttachmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	payload.RequestAttachment.ID = uuid.Nil
	payload.RequestAttachment.RequestID = requestID
	if actorID := identity.ActorID(r.Context()); actorID != nil {
		payload.RequestAttachment.UploadedBy = actorID
	}
	created, err := h.service.AddRequestAttachment(r.Context(), payload.RequestAttachment, payload.StoredFile)
	if err != nil {
		h.writeError(w, err, "failed to add attachment")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"attachment": created})
}

func (h *Handler) handleListRequestAttachments(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	attachments, err := h.service.ListRequestAttachments(r.Context(), requestID)
	if err != nil {
		h.writeError(w, err, "failed to list attachments")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": attachments})
}

func (h *Handler) handleDeleteRequestAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid attachment id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteRequestAttachment(r.Context(), id); err != nil {
		h.writeError(w, err, "failed to delete attachment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type actionAttachmentPayload struct {
	models.ActionAttachment
	StoredFile *models.StoredFile `json:"stored_file,omitempty"`
}

func (h *Handler) handleAddActionAttachment(w http.ResponseWriter, r *http.Request) {
	actionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid action id", http.StatusBadRequest)
		return
	}
	var payload actionAttachmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	payload.ActionAttachment.ID = uuid.Nil
	payload.ActionAttachment.ActionID = actionID
	created, err := h.service.AddActionAttachment(r.Context(), payload.ActionAttachment, payload.StoredFile)
	if err != nil {
		h.writeError(w, err, "failed to add attachment")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"attachment": created})
}

func (h *Handler) handleListActionAttachments(w http.ResponseWriter, r *http.Request) {
	actionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid action id", http.StatusBadRequest)
		return
	}
	attachments, err := h.service.ListActionAttachments(r.Context(), actionID)
	if err != nil {
		h.writeError(w, err, "failed to list attachments")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": attachments})
}

func (h *Handler) handleDeleteActionAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid attachment id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteActionAttachment(r.Context(), id); err != nil {
		h.writeError(w, err, "failed to delete attachment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrDocumentNotFound):
		http.Error(w, "document not found", http.StatusNotFound)
	case errors.Is(err, ErrDocumentTypeNotFound):
		http.Error(w, "document type not found", http.StatusNotFound)
	case errors.Is(err, ErrAttachmentNotFound):
		http.Error(w, "attachment not found", http.StatusNotFound)
	case httpx.WriteValidationError(w, err):
	default:
		logger.Log.WithError(err).Error(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
