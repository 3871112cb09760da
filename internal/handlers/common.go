package handlers

import (
	"encoding/json"
	"net/http"

	"brewnet-backend/internal/apperror"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Response is the success envelope every endpoint uses
type Response struct {
	Success bool        `json:"exito"`
	Message string      `json:"mensaje,omitempty"`
	Data    interface{} `json:"datos,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"exito"`
	Message string `json:"mensaje"`
}

// respondJSON sends any payload with a status code
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Success: false, Message: message})
}

// respondAppError maps a service error to its HTTP status. Unexpected
// errors are logged and surfaced as a generic internal error so store
// details never leak to clients.
func respondAppError(w http.ResponseWriter, err error) {
	if appErr := apperror.As(err); appErr != nil {
		if appErr.Kind == apperror.Internal || appErr.Kind == apperror.Unknown {
			log.Error().Err(err).Msg("Internal error")
			respondError(w, "error interno del servidor", http.StatusInternalServerError)
			return
		}
		respondError(w, appErr.Message, appErr.StatusCode())
		return
	}
	log.Error().Err(err).Msg("Unhandled error")
	respondError(w, "error interno del servidor", http.StatusInternalServerError)
}

// pathID parses an ObjectID out of a chi URL parameter
func pathID(r *http.Request, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	if err != nil {
		return primitive.NilObjectID, apperror.New(apperror.Validation, "id inválido")
	}
	return id, nil
}
