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

// PostRepository provides database access for blog posts.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new instance of PostRepository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// List returns a page of posts with the total count.
func (r *PostRepository) List(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`SELECT id, user_id, title, body, created_at, updated_at FROM posts ORDER BY created_at DESC LIMIT %d OFFSET %d`, pageSize, offset)

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	return posts, total, nil
}

// FindByID returns a post by identifier.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	const query = `SELECT id, user_id, title, body, created_at, updated_at FROM posts WHERE id = $1 LIMIT 1`
	var post models.Post
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return &post, nil
}

// Create inserts a new post.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	const query = `INSERT INTO posts (id, user_id, title, body, created_at, updated_at) VALUES (:id, :user_id, :title, :body, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// UpdateOwned updates a post scoped to its author and returns the updated
// row. sql.ErrNoRows signals that the post does not exist or belongs to
// someone else.
func (r *PostRepository) UpdateOwned(ctx context.Context, id, userID, title, body string, updatedAt time.Time) (*models.Post, error) {
	const query = `UPDATE posts SET title = $3, body = $4, updated_at = $5 WHERE id = $1 AND user_id = $2 RETURNING id, user_id, title, body, created_at, updated_at`
	var post models.Post
	if err := r.db.GetContext(ctx, &post, query, id, userID, title, body, updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &post, nil
}

// DeleteOwned removes a post scoped to its author and returns the deleted
// row. sql.ErrNoRows signals an unowned or missing post.
func (r *PostRepository) DeleteOwned(ctx context.Context, id, userID string) (*models.Post, error) {
	const query = `DELETE FROM posts WHERE id = $1 AND user_id = $2 RETURNING id, user_id, title, body, created_at, updated_at`
	var post models.Post
	if err := r.db.GetContext(ctx, &post, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("delete post: %w", err)
	}
	return &post, nil
}
