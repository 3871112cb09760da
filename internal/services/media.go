package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"brewnet-backend/internal/apperror"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLExpiry = 5 * time.Minute

// MediaService hands out pre-signed upload URLs. The core only ever
// stores the resulting path string, never the bytes.
type MediaService struct {
	s3Client *s3.Client
	s3Bucket string
}

// NewMediaService creates a new media service
func NewMediaService(awsRegion, s3Bucket, accessKey, secretKey, endpoint string) (*MediaService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(awsRegion),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &MediaService{
		s3Client: s3Client,
		s3Bucket: s3Bucket,
	}, nil
}

// UploadRequest represents a request to get a pre-signed URL
type UploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Folder      string `json:"folder"`
}

// UploadResponse represents the response with pre-signed URL
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	Path      string `json:"ruta"`
	ExpiresIn int    `json:"expires_in"`
}

// mediaFolders are the upload prefixes accepted from clients
var mediaFolders = map[string]bool{
	"beers":     true,
	"locations": true,
	"posts":     true,
	"avatars":   true,
}

// GetUploadURL generates a pre-signed PUT URL for one media object and
// returns the path to store on the owning document.
func (s *MediaService) GetUploadURL(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	if req.Filename == "" {
		return nil, apperror.New(apperror.Validation, "filename es obligatorio")
	}
	if !mediaFolders[req.Folder] {
		return nil, apperror.New(apperror.Validation, "folder inválido")
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	ext := strings.ToLower(path.Ext(req.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("%s/%s%s", req.Folder, uuid.New().String(), ext)

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLExpiry
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al generar URL de subida", err)
	}

	return &UploadResponse{
		UploadURL: request.URL,
		Path:      "/uploads/" + key,
		ExpiresIn: int(uploadURLExpiry.Seconds()),
	}, nil
}
