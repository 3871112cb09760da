package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brewnet-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	mw := AuthMiddleware(nil)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"exito":false,"mensaje":"token no proporcionado"}`, rec.Body.String())
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	mw := AuthMiddleware(nil)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	for _, header := range []string{"Basic abc", "Bearer", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireAdmin(t *testing.T) {
	var reached bool
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	// No identity at all.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/beers/beer-of-day", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	// Regular user.
	ident := &services.Identity{UserID: primitive.NewObjectID(), Role: "usuario"}
	req = httptest.NewRequest(http.MethodPost, "/api/v1/beers/beer-of-day", nil)
	req = req.WithContext(context.WithValue(req.Context(), identityKey, ident))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	// Admin.
	admin := &services.Identity{UserID: primitive.NewObjectID(), Role: "admin"}
	req = httptest.NewRequest(http.MethodPost, "/api/v1/beers/beer-of-day", nil)
	req = req.WithContext(context.WithValue(req.Context(), identityKey, admin))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestGetIdentity(t *testing.T) {
	assert.Nil(t, GetIdentity(context.Background()))

	ident := &services.Identity{UserID: primitive.NewObjectID(), Role: "usuario"}
	ctx := context.WithValue(context.Background(), identityKey, ident)
	got := GetIdentity(ctx)
	require.NotNil(t, got)
	assert.Equal(t, ident.UserID, got.UserID)
}

func TestRespondErrorEscapesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, `token "raro" inválido`, http.StatusUnauthorized)

	var body struct {
		Success bool   `json:"exito"`
		Message string `json:"mensaje"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, `token "raro" inválido`, body.Message)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Empty(t, BearerToken(req))

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", BearerToken(req))
}
