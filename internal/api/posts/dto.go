package posts

import (
	"time"

	usersapi "verrocchio-backend/internal/api/users"
	"verrocchio-backend/internal/domain/posts"
	"verrocchio-backend/internal/domain/users"
)

type PostDTO struct {
	ID       uint     `json:"id"`
	AuthorID uint     `json:"author_id"`
	ImageURL string   `json:"image_url"`
	Title    string   `json:"title,omitempty"`
	Caption  string   `json:"caption,omitempty"`
	Tags     []string `json:"tags"`

	LikesCount int  `json:"likes_count"`
	Liked      bool `json:"liked"`

	Author *usersapi.UserSummaryDTO `json:"author,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func buildPostDTO(p *posts.Post, author *users.User, likesCount int, liked bool) PostDTO {
	dto := PostDTO{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		ImageURL:   p.ImageURL,
		Title:      p.Title,
		Caption:    p.Caption,
		Tags:       p.Tags,
		LikesCount: likesCount,
		Liked:      liked,
		CreatedAt:  p.CreatedAt,
	}
	if dto.Tags == nil {
		dto.Tags = []string{}
	}
	if author != nil {
		summary := usersapi.BuildUserSummaryDTO(author)
		dto.Author = &summary
	}
	return dto
}
