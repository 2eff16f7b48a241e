package users

import (
	"time"

	"verrocchio-backend/internal/domain/users"
)

type UserDTO struct {
	ID          uint              `json:"id"`
	Email       string            `json:"email"`
	Username    string            `json:"username"`
	DisplayName string            `json:"display_name"`
	Role        string            `json:"role"`
	Bio         string            `json:"bio"`
	AvatarURL   *string           `json:"avatar_url"`
	BannerURL   *string           `json:"banner_url"`
	SocialLinks users.SocialLinks `json:"social_links"`
	ArtStyles   []string          `json:"art_styles,omitempty"`
	PriceMin    int               `json:"price_min,omitempty"`
	PriceMax    int               `json:"price_max,omitempty"`
	Slides      []users.Slide     `json:"slides,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// UserSummaryDTO is the short author/participant shape embedded in posts,
// requests and conversations.
type UserSummaryDTO struct {
	ID          uint    `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Role        string  `json:"role"`
}

func BuildUserDTO(u *users.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		BannerURL:   u.BannerURL,
		SocialLinks: u.SocialLinks,
		ArtStyles:   u.ArtStyles,
		PriceMin:    u.PriceMin,
		PriceMax:    u.PriceMax,
		Slides:      u.Slides,
		CreatedAt:   u.CreatedAt,
	}
}

func BuildUserSummaryDTO(u *users.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Role:        u.Role,
	}
}
