package services

import (
	"context"
	"strings"
	"time"

	"brewnet-backend/internal/apperror"
	"brewnet-backend/internal/models"
	"brewnet-backend/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost       = 10
	minPasswordLen   = 6
	resetTokenExpiry = time.Hour
)

// AuthService handles registration, login and credential recovery
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Credentials is an issued access/refresh token pair.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// Register creates a local account and logs it in. The refresh token is
// stored on the user, so any previous session is invalidated.
func (s *AuthService) Register(ctx context.Context, username, email, password, profilePhoto string) (*models.User, *Credentials, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" {
		return nil, nil, apperror.New(apperror.Validation, "username y email son obligatorios")
	}
	if len(password) < minPasswordLen {
		return nil, nil, apperror.New(apperror.Validation, "la contraseña debe tener al menos 6 caracteres")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperror.New(apperror.AlreadyDone, "el email ya está registrado")
	} else if !repository.IsNotFound(err) {
		return nil, nil, apperror.Wrap(apperror.Internal, "error al registrar usuario", err)
	}
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, nil, apperror.New(apperror.AlreadyDone, "el username ya está en uso")
	} else if !repository.IsNotFound(err) {
		return nil, nil, apperror.Wrap(apperror.Internal, "error al registrar usuario", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, apperror.Wrap(apperror.Internal, "error al registrar usuario", err)
	}

	if profilePhoto == "" {
		profilePhoto = "https://www.example.com/default-avatar.jpg"
	}

	user := &models.User{
		Username:      username,
		Email:         email,
		Password:      string(hash),
		Provider:      "local",
		ProfilePhoto:  profilePhoto,
		PublicProfile: true,
		Notifications: models.NotificationPrefs{Comments: true, Likes: true, NewFollowers: true},
		Followers:     []primitive.ObjectID{},
		Following:     []primitive.ObjectID{},
		Role:          "usuario",
		CreatedAt:     time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, apperror.Wrap(apperror.Internal, "error al registrar usuario", err)
	}

	creds, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, creds, nil
}

// Login verifies a local credential and issues a new session
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, apperror.New(apperror.Auth, "usuario no encontrado")
		}
		return nil, nil, apperror.Wrap(apperror.Internal, "error al iniciar sesión", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperror.New(apperror.Auth, "contraseña incorrecta")
	}

	creds, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, creds, nil
}

// issueSession generates a token pair and stores the refresh token on
// the user, overwriting any previous one.
func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*Credentials, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al generar token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al generar token", err)
	}

	user.RefreshToken = refresh
	if err := s.userRepo.UpdateFields(ctx, user.ID, bson.M{"refreshToken": refresh}); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al guardar sesión", err)
	}

	return &Credentials{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes the presented access token
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	return s.tokens.Revoke(ctx, accessToken)
}

// Refresh exchanges a valid refresh token for a new access token. The
// token must match the single one stored on the user.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	ident, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByID(ctx, ident.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", apperror.New(apperror.Auth, "refresh token inválido")
		}
		return "", apperror.Wrap(apperror.Internal, "error al refrescar token", err)
	}
	if user.RefreshToken != refreshToken {
		return "", apperror.New(apperror.Auth, "refresh token inválido")
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return "", apperror.Wrap(apperror.Internal, "error al generar token", err)
	}
	return access, nil
}

// ForgotPassword stores a reset token with a one hour expiry and
// returns it for delivery by an external channel.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperror.New(apperror.Validation, "debes ingresar un correo")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", apperror.New(apperror.NotFound, "usuario no encontrado")
		}
		return "", apperror.Wrap(apperror.Internal, "error al procesar recuperación", err)
	}

	resetToken := uuid.New().String()
	expires := time.Now().Add(resetTokenExpiry)
	fields := bson.M{
		"resetPasswordToken":   resetToken,
		"resetPasswordExpires": expires,
	}
	if err := s.userRepo.UpdateFields(ctx, user.ID, fields); err != nil {
		return "", apperror.Wrap(apperror.Internal, "error al procesar recuperación", err)
	}

	return resetToken, nil
}

// ResetPassword validates a reset token, stores the new password hash
// and clears the token pair.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return apperror.New(apperror.Validation, "la nueva contraseña debe tener al menos 6 caracteres")
	}

	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperror.New(apperror.Validation, "token inválido o expirado")
		}
		return apperror.Wrap(apperror.Internal, "error al restablecer contraseña", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperror.Wrap(apperror.Internal, "error al restablecer contraseña", err)
	}

	fields := bson.M{
		"password":             string(hash),
		"resetPasswordToken":   nil,
		"resetPasswordExpires": nil,
	}
	if err := s.userRepo.UpdateFields(ctx, user.ID, fields); err != nil {
		return apperror.Wrap(apperror.Internal, "error al restablecer contraseña", err)
	}
	return nil
}

// UpdateCredentials changes username and/or password after checking the
// current password.
func (s *AuthService) UpdateCredentials(ctx context.Context, userID primitive.ObjectID, username, currentPassword, newPassword string) error {
	if currentPassword == "" {
		return apperror.New(apperror.Validation, "debes ingresar tu contraseña actual")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperror.New(apperror.NotFound, "usuario no encontrado")
		}
		return apperror.Wrap(apperror.Internal, "error al actualizar credenciales", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperror.New(apperror.Auth, "contraseña actual incorrecta")
	}

	fields := bson.M{}
	if username != "" && username != user.Username {
		fields["username"] = username
	}
	if newPassword != "" {
		if len(newPassword) < minPasswordLen {
			return apperror.New(apperror.Validation, "la nueva contraseña debe tener al menos 6 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
		if err != nil {
			return apperror.Wrap(apperror.Internal, "error al actualizar credenciales", err)
		}
		fields["password"] = string(hash)
	}
	if len(fields) == 0 {
		return apperror.New(apperror.Validation, "no hay cambios para guardar")
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return apperror.Wrap(apperror.Internal, "error al actualizar credenciales", err)
	}
	return nil
}
