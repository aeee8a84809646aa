package lookups

import (
	"context"
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

// Register mounts one list/save/delete triple per lookup table. The
// concrete decode types differ, so each resource gets its own closure
// trio instead of a shared generic route.
func (h *Handler) Register(r *mux.Router) {
	h.mount(r, "request-statuses",
		func(w http.ResponseWriter, r *http.Request) (interface{}, error) {
			return h.service.ListRequestStatuses(r.Context(), includeInactive(r))
		},
		func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (interface{}, error) {
			var v models.RequestStatus
			if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
				return nil, errBadBody
			}
			v.ID = id
			return h.service.SaveRequestStatus(r.Context(), v)
		},
		h.service.DeleteRequestStatus,
	)

	h.mount(r, "request-categories",
		func(w http.ResponseWriter, r *http.Request) (interface{}, error) {
			return h.service.ListRequestCategories(r.Context(), includeInactive(r))
		},
		func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (interface{}, error) {
			var v models.RequestCategory
			if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
				return nil, errBadBody
			}
			v.ID = id
			return h.service.SaveRequestCategory(r.Context(), v)
		},
		h.service.DeleteRequestCategory,
	)

	h.mount(r, "request-types",
		func(w http.ResponseWriter, r *http.Request) (interface{}, error) {
			return h.service.ListRequestTypes(r.Context(), includeInactive(r))
		},
		func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (interface{}, error) {
			var v models.RequestType
			if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
				return nil, errBadBody
			}
			v.ID = id
			return h.service.SaveRequestType(r.Context(), v)
		},
		h.service.DeleteRequestType,
	)

	h.mount(r, "request-tags",
		func(w http.ResponseWriter, r *http.Request) (interface{}, error) {
			return h.service.ListRequestTags(r.Context(), includeInactive(r))
		},
		func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (interface{}, error) {
			var v models.RequestTag
			if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
				return nil, errBadBody
			}
			v.ID = id
			return h.service.SaveRequestTag(r.Context(), v)
		},
		h.service.DeleteRequestTag,
	)

	h.mount(r, "insurance-providers",
		func(w http.ResponseWriter, r *http.Request) (interface{}, error) {
			return h.service.ListInsuranceProviders(r.Context(), includeInactive(r))
		},
		func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (interface{}, error) {
			var v models.InsuranceProvider
			if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
				return nil, errBadBody
			}
			v.ID = id
			return h.service.SaveInsuranceProvider(r.Context(), v)
		},
		h.service.DeleteInsuranceProvider,
	)

	h.mount(r, "employment-statuses",
		func(w http.ResponseWriter, r *http.Request) (interface{}, error) {
			return h.service.ListEmploymentStatuses(r.Context(), includeInactive(r))
		},
		func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (interface{}, error) {
			var v models.EmploymentStatus
			if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
				return nil, errBadBody
			}
			v.ID = id
			return h.service.SaveEmploymentStatus(r.Context(), v)
		},
		h.service.DeleteEmploymentStatus,
	)

	h.mount(r, "therapy-types",
		func(w http.ResponseWriter, r *http.Request) (interface{}, error) {
			return h.service.ListTherapyTypes(r.Context(), includeInactive(r))
		},
		func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (interface{}, error) {
			var v models.TherapyTypeLookup
			if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
				return nil, errBadBody
			}
			v.ID = id
			return h.service.SaveTherapyType(r.Context(), v)
		},
		h.service.DeleteTherapyType,
	)

	h.mount(r, "hospitals",
		func(w http.ResponseWriter, r *http.Request) (interface{}, error) {
			return h.service.ListHospitals(r.Context(), includeInactive(r))
		},
		func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (interface{}, error) {
			var v models.Hospital
			if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
				return nil, errBadBody
			}
			v.ID = id
			return h.service.SaveHospital(r.Context(), v)
		},
		h.service.DeleteHospital,
	)

	r.HandleFunc("/lookups/tag-categories", h.handleTagCategories).Methods(http.MethodGet)
}

var errBadBody = errors.New("invalid request body")

type listFunc func(http.ResponseWriter, *http.Request) (interface{}, error)
type saveFunc func(http.ResponseWriter, *http.Request, uuid.UUID) (interface{}, error)

func (h *Handler) mount(r *mux.Router, resource string, list listFunc, save saveFunc, del func(ctx context.Context, id uuid.UUID) error) {
	base := "/lookups/" + resource

	r.HandleFunc(base, func(w http.ResponseWriter, req *http.Request) {
		items, err := list(w, req)
		if err != nil {
			h.writeError(w, err, "failed to list "+resource)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
	}).Methods(http.MethodGet)

	r.HandleFunc(base, func(w http.ResponseWriter, req *http.Request) {
		saved, err := save(w, req, uuid.Nil)
		if err != nil {
			h.writeError(w, err, "failed to create "+resource)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"item": saved})
	}).Methods(http.MethodPost)

	r.HandleFunc(base+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := uuid.Parse(mux.Vars(req)["id"])
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		saved, err := save(w, req, id)
		if err != nil {
			h.writeError(w, err, "failed to update "+resource)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"item": saved})
	}).Methods(http.MethodPut)

	r.HandleFunc(base+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := uuid.Parse(mux.Vars(req)["id"])
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		if err := del(req.Context(), id); err != nil {
			h.writeError(w, err, "failed to delete "+resource)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)
}

func (h *Handler) handleTagCategories(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": models.TagCategories})
}

func (h *Handler) writeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, errBadBody):
		http.Error(w, "invalid request", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case httpx.WriteValidationError(w, err):
	default:
		logger.Log.WithError(err).Error(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func includeInactive(r *http.Request) bool {
	return r.URL.Query().Get("include_inactive") == "true"
}
