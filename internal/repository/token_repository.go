package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/maksido/blog-api/internal/models"
)

// TokenRepository provides database access for the per-user session records.
type TokenRepository struct {
	db *sqlx.DB
}

// NewTokenRepository creates a new instance of TokenRepository.
func NewTokenRepository(db *sqlx.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// FindByUser returns the session record for a user, if any.
func (r *TokenRepository) FindByUser(ctx context.Context, userID string) (*models.TokenRecord, error) {
	const query = `SELECT id, user_id, refresh_token FROM tokens WHERE user_id = $1 LIMIT 1`
	var record models.TokenRecord
	if err := r.db.GetContext(ctx, &record, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find token record by user: %w", err)
	}
	return &record, nil
}

// FindByRefreshToken returns the record whose stored refresh token matches
// the supplied value exactly. A superseding login breaks the match, which is
// how revocation is detected.
func (r *TokenRepository) FindByRefreshToken(ctx context.Context, refreshToken string) (*models.TokenRecord, error) {
	const query = `SELECT id, user_id, refresh_token FROM tokens WHERE refresh_token = $1 LIMIT 1`
	var record models.TokenRecord
	if err := r.db.GetContext(ctx, &record, query, refreshToken); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find token record by refresh token: %w", err)
	}
	return &record, nil
}

// Create inserts a session record for a user.
func (r *TokenRepository) Create(ctx context.Context, userID, refreshToken string) error {
	record := models.TokenRecord{
		ID:           uuid.NewString(),
		UserID:       userID,
		RefreshToken: refreshToken,
	}
	const query = `INSERT INTO tokens (id, user_id, refresh_token) VALUES (:id, :user_id, :refresh_token)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create token record: %w", err)
	}
	return nil
}

// Update overwrites the stored refresh token of an existing record.
func (r *TokenRepository) Update(ctx context.Context, id, refreshToken string) error {
	const query = `UPDATE tokens SET refresh_token = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, refreshToken); err != nil {
		return fmt.Errorf("update token record: %w", err)
	}
	return nil
}

// DeleteByRefreshToken removes the record holding the given refresh token.
// Deleting an absent token is not an error.
func (r *TokenRepository) DeleteByRefreshToken(ctx context.Context, refreshToken string) error {
	const query = `DELETE FROM tokens WHERE refresh_token = $1`
	if _, err := r.db.ExecContext(ctx, query, refreshToken); err != nil {
		return fmt.Errorf("delete token record: %w", err)
	}
	return nil
}
