package services

import (
	"context"
	"testing"

	"brewnet-backend/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUploadURLValidation(t *testing.T) {
	svc := &MediaService{s3Bucket: "brewnet-media"}

	_, err := svc.GetUploadURL(context.Background(), UploadRequest{Folder: "beers"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))

	_, err = svc.GetUploadURL(context.Background(), UploadRequest{Filename: "a.png", Folder: "../etc"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}
