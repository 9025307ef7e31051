package models

import "time"

// Post represents a blog post authored by a user.
type Post struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// PostFilter captures pagination for listing posts.
type PostFilter struct {
	Page     int
	PageSize int
}
