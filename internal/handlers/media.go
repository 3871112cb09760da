package handlers

import (
	"encoding/json"
	"net/http"

	"brewnet-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// MediaHandler handles media upload HTTP requests
type MediaHandler struct {
	mediaService *services.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadURL handles POST /api/v1/media/upload-url
func (h *MediaHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	var req services.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	resp, err := h.mediaService.GetUploadURL(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("folder", req.Folder).Msg("Failed to presign upload URL")
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: resp})
}
