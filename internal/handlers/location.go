package handlers

import (
	"encoding/json"
	"net/http"

	"brewnet-backend/internal/middleware"
	"brewnet-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// LocationHandler handles location-related HTTP requests
type LocationHandler struct {
	locationService *services.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// Create handles POST /api/v1/locations
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	var req services.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	loc, err := h.locationService.Create(r.Context(), ident.UserID, req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	log.Info().Str("location_id", loc.ID.Hex()).Str("user_id", ident.UserID.Hex()).Msg("Location created")
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "lugar creado", Data: loc})
}

// List handles GET /api/v1/locations
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locs, err := h.locationService.List(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: locs})
}

// Get handles GET /api/v1/locations/{id}
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	loc, err := h.locationService.GetByID(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: loc})
}

// TopRated handles GET /api/v1/locations/top-rated
func (h *LocationHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	locs, err := h.locationService.TopRated(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: locs})
}

// Search handles GET /api/v1/locations/search
func (h *LocationHandler) Search(w http.ResponseWriter, r *http.Request) {
	locs, err := h.locationService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: locs})
}

// Update handles PUT /api/v1/locations/{id}
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var upd services.LocationUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	loc, err := h.locationService.Update(r.Context(), id, ident.UserID, upd)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "lugar actualizado", Data: loc})
}

// Delete handles DELETE /api/v1/locations/{id}
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	if err := h.locationService.Delete(r.Context(), id, ident.UserID); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "lugar eliminado correctamente"})
}

// AddComment handles POST /api/v1/locations/{id}/comments
func (h *LocationHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var req struct {
		Comment string `json:"comentario"`
		Score   int    `json:"puntuacion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	loc, err := h.locationService.AddComment(r.Context(), id, ident.UserID, req.Comment, req.Score)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "comentario agregado", Data: loc})
}

// EditComment handles PUT /api/v1/locations/{id}/comments/{commentId}
func (h *LocationHandler) EditComment(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var req struct {
		Comment string `json:"comentario"`
		Score   int    `json:"puntuacion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	loc, err := h.locationService.EditComment(r.Context(), id, commentID, ident.UserID, req.Comment, req.Score)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "comentario actualizado", Data: loc})
}

// DeleteComment handles DELETE /api/v1/locations/{id}/comments/{commentId}
func (h *LocationHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		respondAppError(w, err)
		return
	}

	loc, err := h.locationService.DeleteComment(r.Context(), id, commentID, ident.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "comentario eliminado correctamente", Data: loc})
}

type favoriteResponse struct {
	Success   bool   `json:"exito"`
	Message   string `json:"mensaje"`
	Favorites int    `json:"favoritos"`
}

// ToggleFavorite handles POST /api/v1/locations/{id}/favorite
func (h *LocationHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	count, added, err := h.locationService.ToggleFavorite(r.Context(), id, ident.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	msg := "lugar eliminado de favoritos"
	if added {
		msg = "lugar agregado a favoritos"
	}
	respondJSON(w, http.StatusOK, favoriteResponse{Success: true, Message: msg, Favorites: count})
}
