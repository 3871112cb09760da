package handlers

import (
	"encoding/json"
	"net/http"

	"brewnet-backend/internal/middleware"
	"brewnet-backend/internal/models"
	"brewnet-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles profile and follow-graph HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: userViews(users)})
}

// Get handles GET /api/v1/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: NewUserView(user)})
}

// UpdateProfile handles PUT /api/v1/users/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	var upd services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), ident.UserID, upd)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "perfil actualizado con éxito", Data: NewUserView(user)})
}

// Delete handles DELETE /api/v1/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	if err := h.userService.Delete(r.Context(), ident, id); err != nil {
		respondAppError(w, err)
		return
	}
	log.Info().Str("user_id", id.Hex()).Str("deleted_by", ident.UserID.Hex()).Msg("User deleted")
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "usuario eliminado"})
}

// Follow handles POST /api/v1/users/{id}/follow
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	targetID, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	if err := h.userService.Follow(r.Context(), ident.UserID, targetID); err != nil {
		respondAppError(w, err)
		return
	}
	log.Info().Str("actor", ident.UserID.Hex()).Str("target", targetID.Hex()).Msg("Follow added")
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "ahora sigues a este usuario"})
}

// Unfollow handles DELETE /api/v1/users/{id}/follow
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	targetID, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	if err := h.userService.Unfollow(r.Context(), ident.UserID, targetID); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "has dejado de seguir al usuario"})
}

// Followers handles GET /api/v1/users/{id}/followers
func (h *UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	users, err := h.userService.Followers(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: userViews(users)})
}

// Following handles GET /api/v1/users/{id}/following
func (h *UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	users, err := h.userService.Following(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: userViews(users)})
}

func userViews(users []*models.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return views
}
