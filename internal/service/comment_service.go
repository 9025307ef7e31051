package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/maksido/blog-api/internal/models"
	appErrors "github.com/maksido/blog-api/pkg/errors"
)

type commentStore interface {
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	DeleteOwned(ctx context.Context, id, userName string) (*models.Comment, error)
}

type commentPostStore interface {
	FindByID(ctx context.Context, id string) (*models.Post, error)
}

// WriteCommentRequest captures fields for commenting on a post.
type WriteCommentRequest struct {
	PostID  string `json:"postId" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// CommentService handles comment workflows.
type CommentService struct {
	comments  commentStore
	posts     commentPostStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(comments commentStore, posts commentPostStore, validate *validator.Validate, logger *zap.Logger) *CommentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{comments: comments, posts: posts, validator: validate, logger: logger}
}

// Write attaches a comment to an existing post, attributed by user name.
func (s *CommentService) Write(ctx context.Context, author *models.User, req WriteCommentRequest) (*models.Comment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid comment payload")
	}

	if _, err := s.posts.FindByID(ctx, req.PostID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "incorrect post id")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post")
	}

	comment := &models.Comment{
		PostID:   req.PostID,
		UserName: author.UserName,
		Message:  req.Message,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create comment")
	}

	return comment, nil
}

// ListByPost returns all comments for an existing post.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "incorrect post id")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post")
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list comments")
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// Delete removes a comment the caller authored.
func (s *CommentService) Delete(ctx context.Context, author *models.User, id string) (*models.Comment, error) {
	comment, err := s.comments.DeleteOwned(ctx, id, author.UserName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "you don't have a comment like this")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete comment")
	}
	return comment, nil
}
