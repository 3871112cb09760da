package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"brewnet-backend/internal/middleware"
	"brewnet-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// BeerHandler handles beer-related HTTP requests
type BeerHandler struct {
	beerService *services.BeerService
}

// NewBeerHandler creates a new beer handler
func NewBeerHandler(beerService *services.BeerService) *BeerHandler {
	return &BeerHandler{beerService: beerService}
}

// Create handles POST /api/v1/beers
func (h *BeerHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	var req services.CreateBeerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	beer, err := h.beerService.Create(r.Context(), ident.UserID, req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	log.Info().Str("beer_id", beer.ID.Hex()).Str("user_id", ident.UserID.Hex()).Msg("Beer created")
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "cerveza creada", Data: beer})
}

// List handles GET /api/v1/beers
func (h *BeerHandler) List(w http.ResponseWriter, r *http.Request) {
	beers, err := h.beerService.List(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: beers})
}

// Get handles GET /api/v1/beers/{id}
func (h *BeerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	beer, err := h.beerService.GetByID(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: beer})
}

// Search handles GET /api/v1/beers/search
func (h *BeerHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := services.BeerSearch{
		Name:    r.URL.Query().Get("nombre"),
		Style:   r.URL.Query().Get("tipo"),
		Brewery: r.URL.Query().Get("cerveceria"),
	}
	if v := r.URL.Query().Get("minABV"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinABV = &f
		}
	}
	if v := r.URL.Query().Get("maxABV"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxABV = &f
		}
	}

	beers, err := h.beerService.Search(r.Context(), q)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: beers})
}

// TopRated handles GET /api/v1/beers/top-rated
func (h *BeerHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	beers, err := h.beerService.TopRated(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: beers})
}

// Newest handles GET /api/v1/beers/new
func (h *BeerHandler) Newest(w http.ResponseWriter, r *http.Request) {
	beers, err := h.beerService.Newest(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: beers})
}

// BeerOfDay handles POST /api/v1/beers/beer-of-day
func (h *BeerHandler) BeerOfDay(w http.ResponseWriter, r *http.Request) {
	beer, err := h.beerService.SelectBeerOfDay(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	log.Info().Str("beer_id", beer.ID.Hex()).Msg("Beer of the day selected")
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "nueva cerveza del día", Data: beer})
}

// Update handles PUT /api/v1/beers/{id}
func (h *BeerHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var upd services.BeerUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	beer, err := h.beerService.Update(r.Context(), id, ident.UserID, upd)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "cerveza actualizada", Data: beer})
}

// Delete handles DELETE /api/v1/beers/{id}
func (h *BeerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	if err := h.beerService.Delete(r.Context(), id, ident.UserID); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "cerveza eliminada correctamente"})
}

type likeResponse struct {
	Success bool   `json:"exito"`
	Message string `json:"mensaje"`
	Likes   int    `json:"likes"`
}

// Like handles POST /api/v1/beers/{id}/like
func (h *BeerHandler) Like(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	count, added, err := h.beerService.Like(r.Context(), id, ident.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	msg := "like eliminado"
	if added {
		msg = "like agregado"
	}
	respondJSON(w, http.StatusOK, likeResponse{Success: true, Message: msg, Likes: count})
}

// Unlike handles DELETE /api/v1/beers/{id}/like
func (h *BeerHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	count, err := h.beerService.Unlike(r.Context(), id, ident.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, likeResponse{Success: true, Message: "like eliminado", Likes: count})
}

// Rate handles POST /api/v1/beers/{id}/rate
func (h *BeerHandler) Rate(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var req struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "calificación requerida", http.StatusBadRequest)
		return
	}

	beer, err := h.beerService.Rate(r.Context(), id, ident.UserID, req.Rating)
	if err != nil {
		respondAppError(w, err)
		return
	}

	log.Info().
		Str("beer_id", id.Hex()).
		Str("user_id", ident.UserID.Hex()).
		Int("rating", req.Rating).
		Msg("Beer rated")
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "calificación añadida exitosamente", Data: beer})
}

// AddReview handles POST /api/v1/beers/{id}/reviews
func (h *BeerHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var req struct {
		Comment string `json:"comentario"`
		Score   int    `json:"calificacion"`
		Video   string `json:"video"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	beer, err := h.beerService.AddReview(r.Context(), id, ident.UserID, req.Comment, req.Score, req.Video)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"exito":   true,
		"mensaje": "reseña agregada",
		"reviews": beer.Reviews,
	})
}

// EditReview handles PUT /api/v1/beers/{id}/reviews/{reviewId}
func (h *BeerHandler) EditReview(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	reviewID, err := pathID(r, "reviewId")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var req struct {
		Comment string `json:"comentario"`
		Score   int    `json:"calificacion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	beer, err := h.beerService.EditReview(r.Context(), id, reviewID, ident.UserID, req.Comment, req.Score)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"exito":   true,
		"mensaje": "comentario actualizado",
		"reviews": beer.Reviews,
	})
}

// DeleteReview handles DELETE /api/v1/beers/{id}/reviews/{reviewId}
func (h *BeerHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	reviewID, err := pathID(r, "reviewId")
	if err != nil {
		respondAppError(w, err)
		return
	}

	if _, err := h.beerService.DeleteReview(r.Context(), id, reviewID, ident.UserID); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "comentario eliminado correctamente"})
}

// LikeReview handles POST /api/v1/beers/{id}/reviews/{reviewId}/like
func (h *BeerHandler) LikeReview(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	reviewID, err := pathID(r, "reviewId")
	if err != nil {
		respondAppError(w, err)
		return
	}

	count, added, err := h.beerService.LikeReview(r.Context(), id, reviewID, ident.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	msg := "like eliminado en comentario"
	if added {
		msg = "like agregado en comentario"
	}
	respondJSON(w, http.StatusOK, likeResponse{Success: true, Message: msg, Likes: count})
}

// AddReply handles POST /api/v1/beers/{id}/reviews/{reviewId}/replies
func (h *BeerHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	reviewID, err := pathID(r, "reviewId")
	if err != nil {
		respondAppError(w, err)
		return
	}

	var req struct {
		Comment string `json:"comentario"`
		Video   string `json:"video"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	replies, err := h.beerService.AddReply(r.Context(), id, reviewID, ident.UserID, req.Comment, req.Video)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"exito":      true,
		"mensaje":    "respuesta agregada",
		"respuestas": replies,
	})
}

// LikeReply handles POST /api/v1/beers/{id}/reviews/{reviewId}/replies/{replyId}/like
func (h *BeerHandler) LikeReply(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondAppError(w, err)
		return
	}
	reviewID, err := pathID(r, "reviewId")
	if err != nil {
		respondAppError(w, err)
		return
	}
	replyID, err := pathID(r, "replyId")
	if err != nil {
		respondAppError(w, err)
		return
	}

	count, added, err := h.beerService.LikeReply(r.Context(), id, reviewID, replyID, ident.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	msg := "like eliminado en respuesta"
	if added {
		msg = "like agregado en respuesta"
	}
	respondJSON(w, http.StatusOK, likeResponse{Success: true, Message: msg, Likes: count})
}
