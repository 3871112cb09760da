package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"brewnet-backend/internal/apperror"
	"brewnet-backend/internal/models"
	"brewnet-backend/internal/reactions"
	"brewnet-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	minTitleLen   = 3
	maxTitleLen   = 100
	minContentLen = 5
	maxContentLen = 2000
)

// PostService handles feed posts, typed reactions and external comments
type PostService struct {
	postRepo    *repository.PostRepository
	commentRepo *repository.CommentRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo *repository.PostRepository, commentRepo *repository.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePostRequest carries the fields of a new post
type CreatePostRequest struct {
	Title   string   `json:"titulo"`
	Content string   `json:"contenido"`
	Images  []string `json:"imagenes"`
}

// PostPage is one page of the feed listing
type PostPage struct {
	Page       int64          `json:"pagina"`
	TotalPages int64          `json:"totalPaginas"`
	TotalPosts int64          `json:"totalPosts"`
	Posts      []*models.Post `json:"posts"`
}

// validatePostContent trims both fields and checks their length limits.
// Limits count characters, not bytes, so accented text is measured the
// way users see it.
func validatePostContent(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(title); n < minTitleLen || n > maxTitleLen {
		return "", "", apperror.New(apperror.Validation, "el título debe tener entre 3 y 100 caracteres")
	}
	if n := utf8.RuneCountInString(content); n < minContentLen || n > maxContentLen {
		return "", "", apperror.New(apperror.Validation, "el contenido debe tener entre 5 y 2000 caracteres")
	}
	return title, content, nil
}

// Create validates and stores a new post owned by the caller
func (s *PostService) Create(ctx context.Context, userID primitive.ObjectID, req CreatePostRequest) (*models.Post, error) {
	title, content, err := validatePostContent(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	post := &models.Post{
		UserID:   userID,
		Title:    title,
		Content:  content,
		Images:   images,
		ViewedBy: []primitive.ObjectID{},
		Reactions: models.Reactions{
			Cheers:      models.ReactionBucket{Users: []primitive.ObjectID{}},
			Recommended: models.ReactionBucket{Users: []primitive.ObjectID{}},
			Like:        models.ReactionBucket{Users: []primitive.ObjectID{}},
		},
		Comments:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al crear post", err)
	}
	return post, nil
}

// GetByID retrieves a post
func (s *PostService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.New(apperror.NotFound, "post no encontrado")
		}
		return nil, apperror.Wrap(apperror.Internal, "error al obtener post", err)
	}
	return post, nil
}

// List retrieves a page of the feed
func (s *PostService) List(ctx context.Context, page, limit int64, sortField string, desc bool) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if sortField == "" {
		sortField = "createdAt"
	}

	posts, err := s.postRepo.List(ctx, sortField, desc, (page-1)*limit, limit)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al obtener posts", err)
	}
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al obtener posts", err)
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &PostPage{
		Page:       page,
		TotalPages: totalPages,
		TotalPosts: total,
		Posts:      posts,
	}, nil
}

// Update changes a post's title and content. Owner only.
func (s *PostService) Update(ctx context.Context, postID, userID primitive.ObjectID, title, content string) (*models.Post, error) {
	title, content, err := validatePostContent(title, content)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, postID, func(post *models.Post) error {
		if post.UserID != userID {
			return apperror.New(apperror.Forbidden, "sin permisos")
		}
		post.Title = title
		post.Content = content
		post.UpdatedAt = time.Now()
		return nil
	})
}

// Delete removes a post and its comments. Owner only.
func (s *PostService) Delete(ctx context.Context, postID, userID primitive.ObjectID) error {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperror.New(apperror.Forbidden, "no autorizado")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return apperror.Wrap(apperror.Internal, "error al eliminar post", err)
	}
	// Comments live in their own collection and would be orphaned
	// otherwise.
	if err := s.commentRepo.DeleteByPost(ctx, postID); err != nil {
		return apperror.Wrap(apperror.Internal, "error al eliminar comentarios del post", err)
	}
	return nil
}

// React adds a typed reaction. Strict: reacting twice with the same
// kind fails, unknown kinds fail.
func (s *PostService) React(ctx context.Context, postID, userID primitive.ObjectID, kind string) (*models.Post, error) {
	return s.mutate(ctx, postID, func(post *models.Post) error {
		return reactions.React(&post.Reactions, kind, userID)
	})
}

// Unreact removes a typed reaction. Strict: undoing an absent reaction
// fails.
func (s *PostService) Unreact(ctx context.Context, postID, userID primitive.ObjectID, kind string) (*models.Post, error) {
	return s.mutate(ctx, postID, func(post *models.Post) error {
		return reactions.Unreact(&post.Reactions, kind, userID)
	})
}

// RegisterVisit counts one unique view per user. A repeat view returns
// the post as-is without a save, so the version is not bumped.
func (s *PostService) RegisterVisit(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if reactions.Contains(post.ViewedBy, userID) {
		return post, nil
	}
	return s.mutate(ctx, postID, func(post *models.Post) error {
		applyVisit(post, userID)
		return nil
	})
}

// applyVisit records a first view, reporting whether anything changed
func applyVisit(post *models.Post, userID primitive.ObjectID) bool {
	if reactions.Contains(post.ViewedBy, userID) {
		return false
	}
	post.ViewedBy = append(post.ViewedBy, userID)
	post.Visits++
	return true
}

// AddComment stores a comment in its own collection and pushes its
// reference onto the post.
func (s *PostService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.New(apperror.Validation, "comentario requerido")
	}
	if _, err := s.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Comment: text,
		UserID:  userID,
		PostID:  postID,
		Date:    time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al guardar comentario", err)
	}
	if err := s.postRepo.PushComment(ctx, postID, comment.ID); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al guardar comentario", err)
	}
	return comment, nil
}

// Comments lists a post's comments, newest first
func (s *PostService) Comments(ctx context.Context, postID primitive.ObjectID) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "error al obtener comentarios", err)
	}
	return comments, nil
}

// mutate runs the bounded read-modify-write loop against one post
func (s *PostService) mutate(ctx context.Context, postID primitive.ObjectID, fn func(*models.Post) error) (*models.Post, error) {
	for attempt := 0; attempt < saveAttempts; attempt++ {
		post, err := s.GetByID(ctx, postID)
		if err != nil {
			return nil, err
		}
		if err := fn(post); err != nil {
			return nil, err
		}
		err = s.postRepo.Save(ctx, post)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, apperror.Wrap(apperror.Internal, "error al guardar post", err)
		}
	}
	return nil, apperror.New(apperror.Conflict, "conflicto de escritura concurrente, intenta de nuevo")
}
