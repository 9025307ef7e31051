package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/maksido/blog-api/internal/models"
	appErrors "github.com/maksido/blog-api/pkg/errors"
)

const postListCachePattern = "posts:list:*"

type postStore interface {
	List(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error)
	FindByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	UpdateOwned(ctx context.Context, id, userID, title, body string, updatedAt time.Time) (*models.Post, error)
	DeleteOwned(ctx context.Context, id, userID string) (*models.Post, error)
}

type postCommentStore interface {
	DeleteByPost(ctx context.Context, postID string) error
}

// CreatePostRequest captures fields for creating a post.
type CreatePostRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// UpdatePostRequest modifies a post owned by the caller.
type UpdatePostRequest struct {
	PostID string `json:"postId" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

// cachedPostList is the payload shape stored in the listing cache.
type cachedPostList struct {
	Posts      []models.Post     `json:"posts"`
	Pagination models.Pagination `json:"pagination"`
}

// PostService handles the blog post workflows.
type PostService struct {
	posts     postStore
	comments  postCommentStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPostService creates a new post service.
func NewPostService(posts postStore, comments postCommentStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *PostService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{posts: posts, comments: comments, cache: cache, validator: validate, logger: logger}
}

// List returns paginated posts, served from the listing cache when warm.
// The returned bool reports a cache hit.
func (s *PostService) List(ctx context.Context, filter models.PostFilter) ([]models.Post, *models.Pagination, bool, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 10
	}

	key := fmt.Sprintf("posts:list:page=%d:size=%d", page, size)
	var cached cachedPostList
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		pagination := cached.Pagination
		return cached.Posts, &pagination, true, nil
	}

	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list posts")
	}
	if posts == nil {
		posts = []models.Post{}
	}

	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	_ = s.cache.Set(ctx, key, cachedPostList{Posts: posts, Pagination: *pagination}, 0)

	return posts, pagination, false, nil
}

// Get returns a post by identifier.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post")
	}
	return post, nil
}

// Create adds a new post authored by the given user.
func (s *PostService) Create(ctx context.Context, author *models.User, req CreatePostRequest) (*models.Post, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post payload")
	}

	post := &models.Post{
		UserID: author.ID,
		Title:  req.Title,
		Body:   req.Body,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create post")
	}

	_ = s.cache.Invalidate(ctx, postListCachePattern)

	return post, nil
}

// Update modifies a post the caller owns.
func (s *PostService) Update(ctx context.Context, author *models.User, req UpdatePostRequest) (*models.Post, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post payload")
	}

	post, err := s.posts.UpdateOwned(ctx, req.PostID, author.ID, req.Title, req.Body, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "you don't have a post like this")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update post")
	}

	_ = s.cache.Invalidate(ctx, postListCachePattern)

	return post, nil
}

// Delete removes a post the caller owns together with its comments.
func (s *PostService) Delete(ctx context.Context, author *models.User, id string) (*models.Post, error) {
	post, err := s.posts.DeleteOwned(ctx, id, author.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "you don't have a post like this")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete post")
	}

	if err := s.comments.DeleteByPost(ctx, id); err != nil {
		s.logger.Warn("failed to delete comments for post", zap.String("post_id", id), zap.Error(err))
	}

	_ = s.cache.Invalidate(ctx, postListCachePattern)

	return post, nil
}
