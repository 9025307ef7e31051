package models

import "github.com/golang-jwt/jwt/v5"

// TokenRecord is the single persisted session row for a user. At most one
// record exists per user; login and refresh overwrite the refresh token in
// place, logout deletes the row.
type TokenRecord struct {
	ID           string `db:"id" json:"id"`
	UserID       string `db:"user_id" json:"user_id"`
	RefreshToken string `db:"refresh_token" json:"refresh_token"`
}

// TokenPair holds a freshly minted access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenClaims is the JWT payload shared by access and refresh tokens.
// The two token kinds differ only in signing secret and lifetime.
type TokenClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
