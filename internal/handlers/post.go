package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"brewnet-backend/internal/middleware"
	"brewnet-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PostHandler handles forum post HTTP requests
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create handles POST /api/v1/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	var req services.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	post, err := h.postService.Create(r.Context(), ident.UserID, req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	log.Info().Str("post_id", post.ID.Hex()).Str("user_id", ident.UserID.Hex()).Msg("Post created")
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "publicación creada", Data: post})
}

// List handles GET /api/v1/posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := int64(1)
	if v, err := strconv.ParseInt(q.Get("page"), 10, 64); err == nil {
		page = v
	}
	limit := int64(10)
	if v, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil {
		limit = v
	}

	sortField := q.Get("sortBy")
	desc := q.Get("order") != "asc"

	result, err := h.postService.List(r.Context(), page, limit, sortField, desc)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// Get handles GET /api/v1/posts/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	post, err := h.postService.GetByID(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: post})
}

// Update handles PUT /api/v1/posts/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var req struct {
		Title   string `json:"titulo"`
		Content string `json:"contenido"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	post, err := h.postService.Update(r.Context(), id, ident.UserID, req.Title, req.Content)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "publicación actualizada", Data: post})
}

// Delete handles DELETE /api/v1/posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	if err := h.postService.Delete(r.Context(), id, ident.UserID); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "publicación eliminada correctamente"})
}

// React handles POST /api/v1/posts/{id}/reactions
func (h *PostHandler) React(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var req struct {
		Kind string `json:"tipo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "tipo de reacción requerido", http.StatusBadRequest)
		return
	}

	post, err := h.postService.React(r.Context(), id, ident.UserID, req.Kind)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "reacción agregada", Data: post.Reactions})
}

// Unreact handles DELETE /api/v1/posts/{id}/reactions
func (h *PostHandler) Unreact(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var req struct {
		Kind string `json:"tipo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "tipo de reacción requerido", http.StatusBadRequest)
		return
	}

	post, err := h.postService.Unreact(r.Context(), id, ident.UserID, req.Kind)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "reacción eliminada", Data: post.Reactions})
}

// Visit handles POST /api/v1/posts/{id}/visit
func (h *PostHandler) Visit(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	post, err := h.postService.RegisterVisit(r.Context(), id, ident.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"exito":   true,
		"visitas": post.Visits,
	})
}

// AddComment handles POST /api/v1/posts/{id}/comments
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var req struct {
		Text string `json:"contenido"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	comment, err := h.postService.AddComment(r.Context(), id, ident.UserID, req.Text)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "comentario agregado", Data: comment})
}

// Comments handles GET /api/v1/posts/{id}/comments
func (h *PostHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	comments, err := h.postService.Comments(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: comments})
}
