package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
)

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteValidationError renders the validation error taxonomy: accumulated
// field violations come back as a field->messages map with 422, conflicts
// as 409. Returns false when err is not a validation error so the caller
// can fall through to its own handling.
func WriteValidationError(w http.ResponseWriter, err error) bool {
	var violations *validation.Violations
	if errors.As(err, &violations) {
		WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"errors": violations.Fields(),
		})
		return true
	}

	var fieldErr validation.FieldError
	if errors.As(err, &fieldErr) {
		status := http.StatusUnprocessableEntity
		if fieldErr.Kind == validation.KindConflict {
			status = http.StatusConflict
		}
		WriteJSON(w, status, map[string]interface{}{
			"errors": map[string][]string{fieldErr.Field: {fieldErr.Message}},
		})
		return true
	}

	return false
}
