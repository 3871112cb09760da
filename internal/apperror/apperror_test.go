package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{NotFound, http.StatusNotFound},
		{Forbidden, http.StatusForbidden},
		{AlreadyDone, http.StatusConflict},
		{NotDone, http.StatusBadRequest},
		{Validation, http.StatusBadRequest},
		{Auth, http.StatusUnauthorized},
		{Conflict, http.StatusConflict},
		{Internal, http.StatusInternalServerError},
		{Unknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, New(tc.kind, "x").StatusCode())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("dial timeout")
	err := Wrap(Internal, "error al obtener cerveza", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "error al obtener cerveza: dial timeout", err.Error())
}

func TestAsThroughWrapping(t *testing.T) {
	inner := New(NotFound, "cerveza no encontrada")
	outer := fmt.Errorf("handling request: %w", inner)

	appErr := As(outer)
	assert.NotNil(t, appErr)
	assert.Equal(t, NotFound, appErr.Kind)

	assert.True(t, IsKind(outer, NotFound))
	assert.False(t, IsKind(outer, Forbidden))
	assert.False(t, IsKind(errors.New("plain"), NotFound))
}
