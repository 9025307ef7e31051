package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/maksido/blog-api/internal/models"
)

// CommentRepository provides database access for post comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new instance of CommentRepository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListByPost returns all comments for a post, oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	const query = `SELECT id, post_id, user_name, message, created_at FROM comments WHERE post_id = $1 ORDER BY created_at ASC`
	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Create inserts a new comment.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO comments (id, post_id, user_name, message, created_at) VALUES (:id, :post_id, :user_name, :message, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// DeleteOwned removes a comment scoped to its author and returns the deleted
// row. sql.ErrNoRows signals an unowned or missing comment.
func (r *CommentRepository) DeleteOwned(ctx context.Context, id, userName string) (*models.Comment, error) {
	const query = `DELETE FROM comments WHERE id = $1 AND user_name = $2 RETURNING id, post_id, user_name, message, created_at`
	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, query, id, userName); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return &comment, nil
}

// DeleteByPost removes all comments attached to a post.
func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) error {
	const query = `DELETE FROM comments WHERE post_id = $1`
	if _, err := r.db.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("delete comments by post: %w", err)
	}
	return nil
}
