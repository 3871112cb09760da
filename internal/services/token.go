package services

import (
	"context"
	"fmt"
	"time"

	"brewnet-backend/internal/apperror"
	"brewnet-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the result of verifying an access token.
type Identity struct {
	UserID primitive.ObjectID
	Role   string
}

// TokenService issues and verifies access and refresh tokens and keeps
// the revocation list.
type TokenService struct {
	tokenRepo     *repository.TokenRepository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(tokenRepo *repository.TokenRepository, accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		tokenRepo:     tokenRepo,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// GenerateAccessToken issues a short-lived access token
func (s *TokenService) GenerateAccessToken(userID primitive.ObjectID, role string) (string, error) {
	return s.sign(userID, role, s.accessSecret, s.accessTTL)
}

// GenerateRefreshToken issues a longer-lived refresh token
func (s *TokenService) GenerateRefreshToken(userID primitive.ObjectID, role string) (string, error) {
	return s.sign(userID, role, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) sign(userID primitive.ObjectID, role, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.Hex(),
		"rol":     role,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyAccessToken validates an access token against the signing
// secret and the revocation list, returning the caller's identity.
func (s *TokenService) VerifyAccessToken(ctx context.Context, tokenString string) (*Identity, error) {
	revoked, err := s.tokenRepo.IsRevoked(ctx, tokenString)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al verificar token", err)
	}
	if revoked {
		return nil, apperror.New(apperror.Auth, "token revocado")
	}
	return s.parse(tokenString, s.accessSecret)
}

// VerifyRefreshToken validates a refresh token
func (s *TokenService) VerifyRefreshToken(tokenString string) (*Identity, error) {
	return s.parse(tokenString, s.refreshSecret)
}

func (s *TokenService) parse(tokenString, secret string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.Auth, "token inválido o expirado", err)
	}
	if !token.Valid {
		return nil, apperror.New(apperror.Auth, "token inválido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.New(apperror.Auth, "token inválido o expirado")
	}

	hex, ok := claims["user_id"].(string)
	if !ok {
		return nil, apperror.New(apperror.Auth, "token inválido o expirado")
	}
	userID, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, apperror.Wrap(apperror.Auth, "token inválido o expirado", err)
	}

	role, _ := claims["rol"].(string)
	if role == "" {
		role = "usuario"
	}

	return &Identity{UserID: userID, Role: role}, nil
}

// Revoke puts an access token on the revocation list until it expires
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	if err := s.tokenRepo.Revoke(ctx, tokenString, time.Now().Add(s.accessTTL)); err != nil {
		return apperror.Wrap(apperror.Internal, "error al cerrar sesión", err)
	}
	return nil
}
