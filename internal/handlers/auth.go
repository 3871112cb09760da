package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"brewnet-backend/internal/middleware"
	"brewnet-backend/internal/models"
	"brewnet-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, sessions and credential recovery
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// UserView is the public projection of an account. Password, refresh
// token and reset token never appear here.
type UserView struct {
	ID            string   `json:"_id"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	ProfilePhoto  string   `json:"fotoPerfil"`
	BannerPhoto   string   `json:"fotoBanner"`
	Bio           string   `json:"bio"`
	City          string   `json:"ciudad"`
	Country       string   `json:"pais"`
	FavoriteStyle string   `json:"estiloFavorito"`
	Followers     []string `json:"followers"`
	Following     []string `json:"following"`
	CreatedAt     string   `json:"fechaCreacion"`
}

// NewUserView projects a user into its public shape
func NewUserView(u *models.User) UserView {
	followers := make([]string, 0, len(u.Followers))
	for _, id := range u.Followers {
		followers = append(followers, id.Hex())
	}
	following := make([]string, 0, len(u.Following))
	for _, id := range u.Following {
		following = append(following, id.Hex())
	}
	return UserView{
		ID:            u.ID.Hex(),
		Username:      u.Username,
		Email:         u.Email,
		ProfilePhoto:  u.ProfilePhoto,
		BannerPhoto:   u.BannerPhoto,
		Bio:           u.Bio,
		City:          u.City,
		Country:       u.Country,
		FavoriteStyle: u.FavoriteStyle,
		Followers:     followers,
		Following:     following,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}

type sessionResponse struct {
	Success      bool     `json:"exito"`
	Message      string   `json:"mensaje"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         UserView `json:"usuario"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username     string `json:"username"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		ProfilePhoto string `json:"fotoPerfil"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	user, creds, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password, req.ProfilePhoto)
	if err != nil {
		respondAppError(w, err)
		return
	}

	log.Info().Str("user_id", user.ID.Hex()).Str("username", user.Username).Msg("User registered")
	respondJSON(w, http.StatusCreated, sessionResponse{
		Success:      true,
		Message:      "usuario registrado exitosamente",
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		User:         NewUserView(user),
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	user, creds, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAppError(w, err)
		return
	}

	log.Info().Str("user_id", user.ID.Hex()).Msg("User logged in")
	respondJSON(w, http.StatusOK, sessionResponse{
		Success:      true,
		Message:      "inicio de sesión exitoso",
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		User:         NewUserView(user),
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		respondError(w, "no se encontró token", http.StatusBadRequest)
		return
	}
	if err := h.authService.Logout(r.Context(), token); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "cierre de sesión exitoso"})
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respondError(w, "no se proporcionó refreshToken", http.StatusUnauthorized)
		return
	}

	access, err := h.authService.Refresh(r.Context(), req.Token)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"exito":       true,
		"accessToken": access,
	})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	resetToken, err := h.authService.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		respondAppError(w, err)
		return
	}

	// Delivery belongs to an external email channel; the token is
	// returned so that channel can build the link.
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "te hemos enviado un enlace para restablecer tu contraseña",
		Data:    map[string]string{"resetToken": resetToken},
	})
}

// ResetPassword handles POST /api/v1/auth/reset-password/{token}
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.NewPassword); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "contraseña actualizada correctamente"})
}

// UpdateCredentials handles PUT /api/v1/auth/credentials
func (h *AuthHandler) UpdateCredentials(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	var req struct {
		Username        string `json:"username"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "cuerpo de la petición inválido", http.StatusBadRequest)
		return
	}

	if err := h.authService.UpdateCredentials(r.Context(), ident.UserID, req.Username, req.CurrentPassword, req.NewPassword); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "cambios guardados correctamente"})
}
