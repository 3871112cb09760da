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

const topLocationsLimit = 5

// LocationService handles venue business logic: CRUD, scored comments
// and favorites.
type LocationService struct {
	locationRepo *repository.LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(locationRepo *repository.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// CreateLocationRequest carries the fields of a new location
type CreateLocationRequest struct {
	Name        string         `json:"nombre"`
	Description string         `json:"descripcion"`
	Address     models.Address `json:"direccion"`
	Phone       string         `json:"telefono"`
	Website     string         `json:"sitioWeb"`
	Image       string         `json:"imagen"`
	Services    []string       `json:"servicios"`
	PetFriendly bool           `json:"esPetFriendly"`
	LiveMusic   bool           `json:"tieneMusicaEnVivo"`
	Terrace     bool           `json:"cuentaConTerraza"`
	Parking     bool           `json:"tieneEstacionamiento"`
}

// Create validates and stores a new location owned by the caller
func (s *LocationService) Create(ctx context.Context, userID primitive.ObjectID, req CreateLocationRequest) (*models.Location, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, apperror.New(apperror.Validation, "todos los campos son obligatorios")
	}
	if req.Address.Street == "" || req.Address.City == "" || req.Address.State == "" || req.Address.Country == "" {
		return nil, apperror.New(apperror.Validation, "faltan campos dentro de la dirección")
	}

	loc := &models.Location{
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		Address:       req.Address,
		Phone:         req.Phone,
		Website:       req.Website,
		Image:         req.Image,
		Gallery:       []string{},
		BeerSelection: []primitive.ObjectID{},
		Comments:      []models.LocationReview{},
		Favorites:     []primitive.ObjectID{},
		Services:      req.Services,
		PetFriendly:   req.PetFriendly,
		LiveMusic:     req.LiveMusic,
		Terrace:       req.Terrace,
		Parking:       req.Parking,
		UserID:        userID,
		CreatedAt:     time.Now(),
	}
	if err := s.locationRepo.Create(ctx, loc); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al crear lugar", err)
	}
	return loc, nil
}

// GetByID retrieves a location
func (s *LocationService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	loc, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.New(apperror.NotFound, "local no encontrado")
		}
		return nil, apperror.Wrap(apperror.Internal, "error al obtener local", err)
	}
	return loc, nil
}

// List retrieves all locations, newest first
func (s *LocationService) List(ctx context.Context) ([]*models.Location, error) {
	sort := bson.D{{Key: "creadoEn", Value: -1}}
	locs, err := s.locationRepo.Find(ctx, bson.M{}, sort, 0)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al obtener lugares", err)
	}
	return locs, nil
}

// TopRated retrieves the five best rated locations
func (s *LocationService) TopRated(ctx context.Context) ([]*models.Location, error) {
	sort := bson.D{{Key: "calificacionPromedio", Value: -1}}
	locs, err := s.locationRepo.Find(ctx, bson.M{}, sort, topLocationsLimit)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al obtener locales mejor calificados", err)
	}
	return locs, nil
}

// Search retrieves locations whose name or city matches the query
func (s *LocationService) Search(ctx context.Context, query string) ([]*models.Location, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.New(apperror.Validation, "término de búsqueda requerido")
	}
	filter := bson.M{"$or": []bson.M{
		{"nombre": bson.M{"$regex": query, "$options": "i"}},
		{"direccion.ciudad": bson.M{"$regex": query, "$options": "i"}},
	}}
	locs, err := s.locationRepo.Find(ctx, filter, nil, 0)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error en la búsqueda", err)
	}
	return locs, nil
}

// LocationUpdate enumerates the location fields an owner may change
type LocationUpdate struct {
	Name        *string         `json:"nombre"`
	Description *string         `json:"descripcion"`
	Address     *models.Address `json:"direccion"`
	Phone       *string         `json:"telefono"`
	Website     *string         `json:"sitioWeb"`
	Image       *string         `json:"imagen"`
	Services    *[]string       `json:"servicios"`
}

// Update applies owner-only field changes
func (s *LocationService) Update(ctx context.Context, locationID, userID primitive.ObjectID, upd LocationUpdate) (*models.Location, error) {
	return s.mutate(ctx, locationID, func(loc *models.Location) error {
		if loc.UserID != userID {
			return apperror.New(apperror.Forbidden, "sin permisos")
		}
		if upd.Name != nil {
			loc.Name = *upd.Name
		}
		if upd.Description != nil {
			loc.Description = *upd.Description
		}
		if upd.Address != nil {
			loc.Address = *upd.Address
		}
		if upd.Phone != nil {
			loc.Phone = *upd.Phone
		}
		if upd.Website != nil {
			loc.Website = *upd.Website
		}
		if upd.Image != nil {
			loc.Image = *upd.Image
		}
		if upd.Services != nil {
			loc.Services = *upd.Services
		}
		return nil
	})
}

// Delete removes a location. Owner only.
func (s *LocationService) Delete(ctx context.Context, locationID, userID primitive.ObjectID) error {
	loc, err := s.GetByID(ctx, locationID)
	if err != nil {
		return err
	}
	if loc.UserID != userID {
		return apperror.New(apperror.Forbidden, "no autorizado")
	}
	if err := s.locationRepo.Delete(ctx, locationID); err != nil {
		return apperror.Wrap(apperror.Internal, "error al eliminar local", err)
	}
	return nil
}

// AddComment appends a scored comment and refreshes the location
// average from every comment's score.
func (s *LocationService) AddComment(ctx context.Context, locationID, userID primitive.ObjectID, comment string, score int) (*models.Location, error) {
	if strings.TrimSpace(comment) == "" || score < 1 || score > 5 {
		return nil, apperror.New(apperror.Validation, "comentario y puntuación válidos requeridos")
	}
	return s.mutate(ctx, locationID, func(loc *models.Location) error {
		loc.Comments = append(loc.Comments, models.LocationReview{
			ID:      primitive.NewObjectID(),
			UserID:  userID,
			Comment: comment,
			Score:   score,
			Date:    time.Now(),
		})
		loc.AverageRating = reactions.AverageScores(loc.Comments)
		return nil
	})
}

// EditComment changes a comment's text and score. Author only. The
// average is refreshed because the score may have changed.
func (s *LocationService) EditComment(ctx context.Context, locationID, commentID, userID primitive.ObjectID, comment string, score int) (*models.Location, error) {
	if strings.TrimSpace(comment) == "" || score < 1 || score > 5 {
		return nil, apperror.New(apperror.Validation, "comentario y puntuación válidos requeridos")
	}
	return s.mutate(ctx, locationID, func(loc *models.Location) error {
		return applyCommentEdit(loc, commentID, userID, comment, score)
	})
}

// applyCommentEdit changes a comment's text and score and refreshes the
// average. Author only; a failed check leaves the list untouched.
func applyCommentEdit(loc *models.Location, commentID, userID primitive.ObjectID, comment string, score int) error {
	review := findLocationComment(loc, commentID)
	if review == nil {
		return apperror.New(apperror.NotFound, "comentario no encontrado")
	}
	if review.UserID != userID {
		return apperror.New(apperror.Forbidden, "no tienes permiso para editar este comentario")
	}
	review.Comment = comment
	review.Score = score
	loc.AverageRating = reactions.AverageScores(loc.Comments)
	return nil
}

// DeleteComment removes a comment by identifier and refreshes the
// average. Author only.
func (s *LocationService) DeleteComment(ctx context.Context, locationID, commentID, userID primitive.ObjectID) (*models.Location, error) {
	return s.mutate(ctx, locationID, func(loc *models.Location) error {
		return applyCommentDelete(loc, commentID, userID)
	})
}

// applyCommentDelete removes a comment by identifier and refreshes the
// average. Author only.
func applyCommentDelete(loc *models.Location, commentID, userID primitive.ObjectID) error {
	review := findLocationComment(loc, commentID)
	if review == nil {
		return apperror.New(apperror.NotFound, "comentario no encontrado")
	}
	if review.UserID != userID {
		return apperror.New(apperror.Forbidden, "no tienes permisos para eliminar este comentario")
	}
	kept := make([]models.LocationReview, 0, len(loc.Comments))
	for _, c := range loc.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	loc.Comments = kept
	loc.AverageRating = reactions.AverageScores(loc.Comments)
	return nil
}

// ToggleFavorite flips the caller's membership in the favorites set
func (s *LocationService) ToggleFavorite(ctx context.Context, locationID, userID primitive.ObjectID) (int, bool, error) {
	var added bool
	loc, err := s.mutate(ctx, locationID, func(loc *models.Location) error {
		loc.Favorites, added = reactions.Toggle(loc.Favorites, userID)
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return len(loc.Favorites), added, nil
}

// mutate runs the bounded read-modify-write loop against one location
func (s *LocationService) mutate(ctx context.Context, locationID primitive.ObjectID, fn func(*models.Location) error) (*models.Location, error) {
	for attempt := 0; attempt < saveAttempts; attempt++ {
		loc, err := s.GetByID(ctx, locationID)
		if err != nil {
			return nil, err
		}
		if err := fn(loc); err != nil {
			return nil, err
		}
		err = s.locationRepo.Save(ctx, loc)
		if err == nil {
			return loc, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, apperror.Wrap(apperror.Internal, "error al guardar local", err)
		}
	}
	return nil, apperror.New(apperror.Conflict, "conflicto de escritura concurrente, intenta de nuevo")
}

// findLocationComment addresses a comment by its stable identifier
func findLocationComment(loc *models.Location, commentID primitive.ObjectID) *models.LocationReview {
	for i := range loc.Comments {
		if loc.Comments[i].ID == commentID {
			return &loc.Comments[i]
		}
	}
	return nil
}
