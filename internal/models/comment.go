package models

import "time"

// Comment represents a comment left on a post. Comments are attributed by
// the author's user name rather than the user ID.
type Comment struct {
	ID        string    `db:"id" json:"id"`
	PostID    string    `db:"post_id" json:"postId"`
	UserName  string    `db:"user_name" json:"userName"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
