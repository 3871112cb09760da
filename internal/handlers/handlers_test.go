package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// newRequest builds a request carrying chi URL params so pathID resolves.
func newRequest(method, target, body string, params map[string]string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestBeerGetInvalidID(t *testing.T) {
	h := NewBeerHandler(nil)

	req := newRequest(http.MethodGet, "/api/v1/beers/abc", "", map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"exito":false,"mensaje":"id inválido"}`, rec.Body.String())
}

func TestBeerCreateMalformedBody(t *testing.T) {
	h := NewBeerHandler(nil)

	req := newRequest(http.MethodPost, "/api/v1/beers", "{nombre:", nil)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBeerRateMissingBody(t *testing.T) {
	h := NewBeerHandler(nil)

	req := newRequest(http.MethodPost, "/api/v1/beers/507f1f77bcf86cd799439011/rate", "",
		map[string]string{"id": "507f1f77bcf86cd799439011"})
	rec := httptest.NewRecorder()
	h.Rate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostReactMissingBody(t *testing.T) {
	h := NewPostHandler(nil)

	req := newRequest(http.MethodPost, "/api/v1/posts/507f1f77bcf86cd799439011/reactions", "",
		map[string]string{"id": "507f1f77bcf86cd799439011"})
	rec := httptest.NewRecorder()
	h.React(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocationEditCommentInvalidCommentID(t *testing.T) {
	h := NewLocationHandler(nil)

	req := newRequest(http.MethodPut, "/api/v1/locations/507f1f77bcf86cd799439011/comments/zzz", "{}",
		map[string]string{"id": "507f1f77bcf86cd799439011", "commentId": "zzz"})
	rec := httptest.NewRecorder()
	h.EditComment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"exito":false,"mensaje":"id inválido"}`, rec.Body.String())
}

func TestMediaUploadURLMalformedBody(t *testing.T) {
	h := NewMediaHandler(nil)

	req := newRequest(http.MethodPost, "/api/v1/media/upload-url", "not json", nil)
	rec := httptest.NewRecorder()
	h.UploadURL(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
