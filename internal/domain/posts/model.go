package posts

import "time"

type Post struct {
	ID       uint   `gorm:"primaryKey"`
	AuthorID uint   `gorm:"not null;index"`
	ImageURL string `gorm:"not null"`
	Title    string
	Caption  string
	Tags     []string `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostLike records one user liking one post. The unique index makes the
// like toggle idempotent; the like count is the row count for the post.
type PostLike struct {
	ID     uint `gorm:"primaryKey"`
	PostID uint `gorm:"not null;uniqueIndex:idx_post_likes_pair,priority:1"`
	UserID uint `gorm:"not null;uniqueIndex:idx_post_likes_pair,priority:2"`

	CreatedAt time.Time
}
