package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"brewnet-backend/internal/apperror"
	"brewnet-backend/internal/models"
	"brewnet-backend/internal/reactions"
	"brewnet-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// saveAttempts bounds the read-modify-write retry loop when a
// compare-and-swap save loses against a concurrent writer.
const saveAttempts = 3

const topListLimit = 10

// BeerService handles beer business logic: CRUD, likes, reviews,
// replies, ratings and the beer-of-day selection.
type BeerService struct {
	beerRepo *repository.BeerRepository
}

// NewBeerService creates a new beer service
func NewBeerService(beerRepo *repository.BeerRepository) *BeerService {
	return &BeerService{beerRepo: beerRepo}
}

// CreateBeerRequest carries the fields of a new beer
type CreateBeerRequest struct {
	Name        string  `json:"nombre"`
	Brewery     string  `json:"cerveceria"`
	Style       string  `json:"tipo"`
	ABV         float64 `json:"abv"`
	Description string  `json:"descripcion"`
	Image       string  `json:"imagen"`
	Video       string  `json:"video"`
}

// BeerUpdate enumerates the beer fields an owner may change
type BeerUpdate struct {
	Name        *string  `json:"nombre"`
	Brewery     *string  `json:"cerveceria"`
	Style       *string  `json:"tipo"`
	ABV         *float64 `json:"abv"`
	Description *string  `json:"descripcion"`
	Image       *string  `json:"imagen"`
	Video       *string  `json:"video"`
}

// BeerSearch holds the search filters
type BeerSearch struct {
	Name    string
	Style   string
	Brewery string
	MinABV  *float64
	MaxABV  *float64
}

// Create validates and stores a new beer owned by the caller
func (s *BeerService) Create(ctx context.Context, userID primitive.ObjectID, req CreateBeerRequest) (*models.Beer, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Brewery) == "" ||
		strings.TrimSpace(req.Style) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, apperror.New(apperror.Validation, "faltan campos obligatorios")
	}
	if req.ABV < 0 || req.ABV > 20 {
		return nil, apperror.New(apperror.Validation, "abv debe estar entre 0 y 20")
	}

	now := time.Now()
	beer := &models.Beer{
		Name:        strings.TrimSpace(req.Name),
		Brewery:     strings.TrimSpace(req.Brewery),
		Style:       strings.TrimSpace(req.Style),
		ABV:         req.ABV,
		Description: strings.TrimSpace(req.Description),
		Image:       req.Image,
		Video:       req.Video,
		UserID:      userID,
		Likes:       []primitive.ObjectID{},
		Reviews:     []models.Review{},
		Ratings:     []models.Rating{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.beerRepo.Create(ctx, beer); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al crear cerveza", err)
	}
	return beer, nil
}

// GetByID retrieves a beer
func (s *BeerService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Beer, error) {
	beer, err := s.beerRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.New(apperror.NotFound, "cerveza no encontrada")
		}
		return nil, apperror.Wrap(apperror.Internal, "error al obtener cerveza", err)
	}
	return beer, nil
}

// List retrieves all beers
func (s *BeerService) List(ctx context.Context) ([]*models.Beer, error) {
	beers, err := s.beerRepo.Find(ctx, bson.M{}, nil, 0)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al obtener cervezas", err)
	}
	return beers, nil
}

// Search retrieves beers matching regex name/style/brewery filters and
// an optional ABV range
func (s *BeerService) Search(ctx context.Context, q BeerSearch) ([]*models.Beer, error) {
	filter := bson.M{}
	if q.Name != "" {
		filter["nombre"] = bson.M{"$regex": q.Name, "$options": "i"}
	}
	if q.Style != "" {
		filter["tipo"] = bson.M{"$regex": q.Style, "$options": "i"}
	}
	if q.Brewery != "" {
		filter["cerveceria"] = bson.M{"$regex": q.Brewery, "$options": "i"}
	}
	abv := bson.M{}
	if q.MinABV != nil {
		abv["$gte"] = *q.MinABV
	}
	if q.MaxABV != nil {
		abv["$lte"] = *q.MaxABV
	}
	if len(abv) > 0 {
		filter["abv"] = abv
	}

	beers, err := s.beerRepo.Find(ctx, filter, nil, 0)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error en la búsqueda", err)
	}
	return beers, nil
}

// TopRated retrieves the ten best rated beers
func (s *BeerService) TopRated(ctx context.Context) ([]*models.Beer, error) {
	sort := bson.D{{Key: "calificacionPromedio", Value: -1}}
	beers, err := s.beerRepo.Find(ctx, bson.M{}, sort, topListLimit)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al obtener mejor calificadas", err)
	}
	return beers, nil
}

// Newest retrieves the ten newest beers
func (s *BeerService) Newest(ctx context.Context) ([]*models.Beer, error) {
	sort := bson.D{{Key: "createdAt", Value: -1}}
	beers, err := s.beerRepo.Find(ctx, bson.M{}, sort, topListLimit)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al obtener nuevas", err)
	}
	return beers, nil
}

// Update applies owner-only field changes
func (s *BeerService) Update(ctx context.Context, beerID, userID primitive.ObjectID, upd BeerUpdate) (*models.Beer, error) {
	return s.mutate(ctx, beerID, func(beer *models.Beer) error {
		if beer.UserID != userID {
			return apperror.New(apperror.Forbidden, "sin permisos")
		}
		if upd.Name != nil {
			beer.Name = *upd.Name
		}
		if upd.Brewery != nil {
			beer.Brewery = *upd.Brewery
		}
		if upd.Style != nil {
			beer.Style = *upd.Style
		}
		if upd.ABV != nil {
			if *upd.ABV < 0 || *upd.ABV > 20 {
				return apperror.New(apperror.Validation, "abv debe estar entre 0 y 20")
			}
			beer.ABV = *upd.ABV
		}
		if upd.Description != nil {
			beer.Description = *upd.Description
		}
		if upd.Image != nil {
			beer.Image = *upd.Image
		}
		if upd.Video != nil {
			beer.Video = *upd.Video
		}
		return nil
	})
}

// Delete removes a beer. Owner only.
func (s *BeerService) Delete(ctx context.Context, beerID, userID primitive.ObjectID) error {
	beer, err := s.GetByID(ctx, beerID)
	if err != nil {
		return err
	}
	if beer.UserID != userID {
		return apperror.New(apperror.Forbidden, "no autorizado")
	}
	if err := s.beerRepo.Delete(ctx, beerID); err != nil {
		return apperror.Wrap(apperror.Internal, "error al eliminar cerveza", err)
	}
	return nil
}

// Like flips the caller's membership in the beer's likes set and
// returns the new count and whether the like was added.
func (s *BeerService) Like(ctx context.Context, beerID, userID primitive.ObjectID) (int, bool, error) {
	var added bool
	beer, err := s.mutate(ctx, beerID, func(beer *models.Beer) error {
		beer.Likes, added = reactions.Toggle(beer.Likes, userID)
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return len(beer.Likes), added, nil
}

// Unlike is the strict remove: it fails when the caller had not liked
// the beer.
func (s *BeerService) Unlike(ctx context.Context, beerID, userID primitive.ObjectID) (int, error) {
	beer, err := s.mutate(ctx, beerID, func(beer *models.Beer) error {
		likes, err := reactions.Remove(beer.Likes, userID)
		if err != nil {
			return err
		}
		beer.Likes = likes
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(beer.Likes), nil
}

// Rate records a one-per-user star rating and recomputes the average
func (s *BeerService) Rate(ctx context.Context, beerID, userID primitive.ObjectID, value int) (*models.Beer, error) {
	if value < 1 || value > 5 {
		return nil, apperror.New(apperror.Validation, "la calificación debe estar entre 1 y 5")
	}
	return s.mutate(ctx, beerID, func(beer *models.Beer) error {
		return applyRating(beer, userID, value)
	})
}

// applyRating enforces the one-rating-per-user ledger and refreshes
// calificacionPromedio from the full ledger.
func applyRating(beer *models.Beer, userID primitive.ObjectID, value int) error {
	for _, r := range beer.Ratings {
		if r.UserID == userID {
			return apperror.New(apperror.AlreadyDone, "ya calificaste esta cerveza")
		}
	}
	beer.Ratings = append(beer.Ratings, models.Rating{UserID: userID, Value: value})
	beer.AverageRating = reactions.Average(beer.Ratings)
	return nil
}

// AddReview appends a free-text review with a score
func (s *BeerService) AddReview(ctx context.Context, beerID, userID primitive.ObjectID, comment string, score int, video string) (*models.Beer, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, apperror.New(apperror.Validation, "comentario y calificación requeridos")
	}
	if score < 1 || score > 5 {
		return nil, apperror.New(apperror.Validation, "la calificación debe estar entre 1 y 5")
	}
	return s.mutate(ctx, beerID, func(beer *models.Beer) error {
		beer.Reviews = append(beer.Reviews, models.Review{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Comment:   comment,
			Score:     score,
			CreatedAt: time.Now(),
			Likes:     []primitive.ObjectID{},
			Video:     video,
			Replies:   []models.Reply{},
		})
		return nil
	})
}

// EditReview changes a review's text and score. Author only.
func (s *BeerService) EditReview(ctx context.Context, beerID, reviewID, userID primitive.ObjectID, comment string, score int) (*models.Beer, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, apperror.New(apperror.Validation, "comentario requerido")
	}
	if score < 1 || score > 5 {
		return nil, apperror.New(apperror.Validation, "la calificación debe estar entre 1 y 5")
	}
	return s.mutate(ctx, beerID, func(beer *models.Beer) error {
		return applyReviewEdit(beer, reviewID, userID, comment, score)
	})
}

// applyReviewEdit changes a review's text and score. Author only; a
// failed check leaves the review list untouched.
func applyReviewEdit(beer *models.Beer, reviewID, userID primitive.ObjectID, comment string, score int) error {
	review := findReview(beer, reviewID)
	if review == nil {
		return apperror.New(apperror.NotFound, "comentario no encontrado")
	}
	if review.UserID != userID {
		return apperror.New(apperror.Forbidden, "no autorizado para editar este comentario")
	}
	review.Comment = comment
	review.Score = score
	return nil
}

// DeleteReview removes a review and its replies as a unit. Author only.
// Deletion filters by identifier, so two concurrent deletes of
// different reviews converge regardless of order.
func (s *BeerService) DeleteReview(ctx context.Context, beerID, reviewID, userID primitive.ObjectID) (*models.Beer, error) {
	return s.mutate(ctx, beerID, func(beer *models.Beer) error {
		return applyReviewDelete(beer, reviewID, userID)
	})
}

// applyReviewDelete removes one review, and its embedded replies with
// it, by filtering on the identifier. Author only.
func applyReviewDelete(beer *models.Beer, reviewID, userID primitive.ObjectID) error {
	review := findReview(beer, reviewID)
	if review == nil {
		return apperror.New(apperror.NotFound, "comentario no encontrado")
	}
	if review.UserID != userID {
		return apperror.New(apperror.Forbidden, "no autorizado para eliminar este comentario")
	}
	kept := make([]models.Review, 0, len(beer.Reviews))
	for _, r := range beer.Reviews {
		if r.ID != reviewID {
			kept = append(kept, r)
		}
	}
	beer.Reviews = kept
	return nil
}

// LikeReview flips the caller's like on a review
func (s *BeerService) LikeReview(ctx context.Context, beerID, reviewID, userID primitive.ObjectID) (int, bool, error) {
	var count int
	var added bool
	_, err := s.mutate(ctx, beerID, func(beer *models.Beer) error {
		review := findReview(beer, reviewID)
		if review == nil {
			return apperror.New(apperror.NotFound, "comentario no encontrado")
		}
		review.Likes, added = reactions.Toggle(review.Likes, userID)
		count = len(review.Likes)
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return count, added, nil
}

// AddReply appends a reply under a review and returns the review's new
// reply list.
func (s *BeerService) AddReply(ctx context.Context, beerID, reviewID, userID primitive.ObjectID, comment, video string) ([]models.Reply, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, apperror.New(apperror.Validation, "comentario requerido")
	}
	var replies []models.Reply
	_, err := s.mutate(ctx, beerID, func(beer *models.Beer) error {
		review := findReview(beer, reviewID)
		if review == nil {
			return apperror.New(apperror.NotFound, "comentario no encontrado")
		}
		review.Replies = append(review.Replies, models.Reply{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Comment:   comment,
			CreatedAt: time.Now(),
			Likes:     []primitive.ObjectID{},
			Video:     video,
		})
		replies = review.Replies
		return nil
	})
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// LikeReply flips the caller's like on a reply
func (s *BeerService) LikeReply(ctx context.Context, beerID, reviewID, replyID, userID primitive.ObjectID) (int, bool, error) {
	var count int
	var added bool
	_, err := s.mutate(ctx, beerID, func(beer *models.Beer) error {
		review := findReview(beer, reviewID)
		if review == nil {
			return apperror.New(apperror.NotFound, "comentario no encontrado")
		}
		reply := findReply(review, replyID)
		if reply == nil {
			return apperror.New(apperror.NotFound, "respuesta no encontrada")
		}
		reply.Likes, added = reactions.Toggle(reply.Likes, userID)
		count = len(reply.Likes)
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return count, added, nil
}

// SelectBeerOfDay clears the previous flag everywhere and crowns the
// most liked beer of the last 24 hours, falling back to a random one.
// The daily cadence belongs to an external scheduler.
func (s *BeerService) SelectBeerOfDay(ctx context.Context) (*models.Beer, error) {
	if err := s.beerRepo.ClearBeerOfDay(ctx); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al seleccionar cerveza del día", err)
	}

	since := time.Now().Add(-24 * time.Hour)
	selected, err := s.beerRepo.MostLikedSince(ctx, since)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al seleccionar cerveza del día", err)
	}
	if selected == nil {
		selected, err = s.beerRepo.SampleOne(ctx)
		if err != nil {
			return nil, apperror.Wrap(apperror.Internal, "error al seleccionar cerveza del día", err)
		}
	}
	if selected == nil {
		return nil, apperror.New(apperror.NotFound, "no hay cervezas disponibles para seleccionar")
	}

	return s.mutate(ctx, selected.ID, func(beer *models.Beer) error {
		now := time.Now()
		beer.BeerOfDay = true
		beer.LastSelection = &now
		return nil
	})
}

// mutate runs a read-modify-write cycle against one beer document,
// retrying a bounded number of times when the compare-and-swap save
// reports a version conflict.
func (s *BeerService) mutate(ctx context.Context, beerID primitive.ObjectID, fn func(*models.Beer) error) (*models.Beer, error) {
	for attempt := 0; attempt < saveAttempts; attempt++ {
		beer, err := s.GetByID(ctx, beerID)
		if err != nil {
			return nil, err
		}
		if err := fn(beer); err != nil {
			return nil, err
		}
		err = s.beerRepo.Save(ctx, beer)
		if err == nil {
			return beer, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, apperror.Wrap(apperror.Internal, "error al guardar cerveza", err)
		}
	}
	return nil, apperror.New(apperror.Conflict, "conflicto de escritura concurrente, intenta de nuevo")
}

// findReview addresses a review by its stable identifier
func findReview(beer *models.Beer, reviewID primitive.ObjectID) *models.Review {
	for i := range beer.Reviews {
		if beer.Reviews[i].ID == reviewID {
			return &beer.Reviews[i]
		}
	}
	return nil
}

// findReply addresses a reply by its stable identifier
func findReply(review *models.Review, replyID primitive.ObjectID) *models.Reply {
	for i := range review.Replies {
		if review.Replies[i].ID == replyID {
			return &review.Replies[i]
		}
	}
	return nil
}
