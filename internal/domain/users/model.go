package users

import "time"

const (
	RoleArtist = "artist"
	RoleBuyer  = "buyer"
)

func ValidRole(role string) bool {
	return role == RoleArtist || role == RoleBuyer
}

type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Discord   string `json:"discord,omitempty"`
	Other     string `json:"other,omitempty"`
}

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Username     string  `gorm:"not null;uniqueIndex:idx_users_username"`
	PasswordHash *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string  `gorm:"type:varchar(10);not null"`

	DisplayName string
	Bio         string `gorm:"default:''"`
	AvatarURL   *string
	BannerURL   *string

	SocialLinks SocialLinks `gorm:"embedded;embeddedPrefix:social_"`

	// Artist-only fields, zero-valued for buyers.
	ArtStyles []string `gorm:"serializer:json"`
	PriceMin  int
	PriceMax  int

	Slides []Slide `gorm:"constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slide is one entry of an artist's portfolio carousel, shown in
// swipe-discovery browsing. Ordering is by SortIndex within a user.
type Slide struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	UserID      uint     `gorm:"not null;index:idx_slides_user_sort,priority:1" json:"-"`
	SortIndex   int      `gorm:"not null;default:0;index:idx_slides_user_sort,priority:2" json:"sort_index"`
	ImageURL    string   `gorm:"not null" json:"image_url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `gorm:"serializer:json" json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
