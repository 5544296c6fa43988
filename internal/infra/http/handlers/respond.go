package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ironlady/crm-backend/internal/contract"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeMessage is the {message} error shape used for 404s and generic 500s.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeValidationError is the 400 {message, field} shape from the contract.
func writeValidationError(w http.ResponseWriter, verr *contract.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"message": verr.Message,
		"field":   verr.Field,
	})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}
