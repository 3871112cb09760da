package services

import (
	"context"

	"brewnet-backend/internal/apperror"
	"brewnet-backend/internal/models"
	"brewnet-backend/internal/reactions"
	"brewnet-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService handles profiles and the follow graph
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ProfileUpdate enumerates the profile fields a user may change.
// Anything not listed here is not writable through the profile endpoint.
type ProfileUpdate struct {
	Username      *string `json:"username"`
	Email         *string `json:"email"`
	Bio           *string `json:"bio"`
	City          *string `json:"ciudad"`
	Country       *string `json:"pais"`
	ProfilePhoto  *string `json:"fotoPerfil"`
	BannerPhoto   *string `json:"fotoBanner"`
	FavoriteStyle *string `json:"estiloFavorito"`
	PublicProfile *bool   `json:"perfilPublico"`
}

// GetByID retrieves a user
func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.New(apperror.NotFound, "usuario no encontrado")
		}
		return nil, apperror.Wrap(apperror.Internal, "error al obtener usuario", err)
	}
	return user, nil
}

// List retrieves all users
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al obtener usuarios", err)
	}
	return users, nil
}

// UpdateProfile applies the allowlisted profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	fields := bson.M{}
	if upd.Username != nil {
		fields["username"] = *upd.Username
	}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if upd.Bio != nil {
		fields["bio"] = *upd.Bio
	}
	if upd.City != nil {
		fields["ciudad"] = *upd.City
	}
	if upd.Country != nil {
		fields["pais"] = *upd.Country
	}
	if upd.ProfilePhoto != nil {
		fields["fotoPerfil"] = *upd.ProfilePhoto
	}
	if upd.BannerPhoto != nil {
		fields["fotoBanner"] = *upd.BannerPhoto
	}
	if upd.FavoriteStyle != nil {
		fields["estiloFavorito"] = *upd.FavoriteStyle
	}
	if upd.PublicProfile != nil {
		fields["perfilPublico"] = *upd.PublicProfile
	}
	if len(fields) == 0 {
		return nil, apperror.New(apperror.Validation, "no hay cambios para guardar")
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.New(apperror.NotFound, "usuario no encontrado")
		}
		return nil, apperror.Wrap(apperror.Internal, "error al actualizar perfil", err)
	}
	return s.GetByID(ctx, userID)
}

// Delete removes an account. Only the account owner or an admin may
// delete it.
func (s *UserService) Delete(ctx context.Context, actor *Identity, targetID primitive.ObjectID) error {
	if actor.UserID != targetID && actor.Role != "admin" {
		return apperror.New(apperror.Forbidden, "sin permisos para eliminar este usuario")
	}
	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		if repository.IsNotFound(err) {
			return apperror.New(apperror.NotFound, "usuario no encontrado")
		}
		return apperror.Wrap(apperror.Internal, "error al eliminar usuario", err)
	}
	return nil
}

// Follow adds a follow edge from actor to target. Following yourself or
// someone you already follow fails.
func (s *UserService) Follow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if actorID == targetID {
		return apperror.New(apperror.Validation, "no puedes seguirte a ti mismo")
	}

	actor, err := s.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, targetID); err != nil {
		return err
	}

	if reactions.Contains(actor.Following, targetID) {
		return apperror.New(apperror.AlreadyDone, "ya sigues a este usuario")
	}

	if err := s.userRepo.AddFollowEdge(ctx, actorID, targetID); err != nil {
		return apperror.Wrap(apperror.Internal, "error al seguir usuario", err)
	}
	return nil
}

// Unfollow removes the follow edge. It is strict: unfollowing someone
// you do not follow fails, matching the explicit-unlike policy.
func (s *UserService) Unfollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	actor, err := s.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, targetID); err != nil {
		return err
	}

	if !reactions.Contains(actor.Following, targetID) {
		return apperror.New(apperror.NotDone, "no sigues a este usuario")
	}

	if err := s.userRepo.RemoveFollowEdge(ctx, actorID, targetID); err != nil {
		return apperror.Wrap(apperror.Internal, "error al dejar de seguir", err)
	}
	return nil
}

// Followers lists the accounts following the given user
func (s *UserService) Followers(ctx context.Context, userID primitive.ObjectID) ([]*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListByIDs(ctx, user.Followers)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al obtener seguidores", err)
	}
	return users, nil
}

// Following lists the accounts the given user follows
func (s *UserService) Following(ctx context.Context, userID primitive.ObjectID) ([]*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListByIDs(ctx, user.Following)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al obtener seguidos", err)
	}
	return users, nil
}
