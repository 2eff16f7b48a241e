package users

import (
	"net/http"
	"strings"

	"verrocchio-backend/database"
	"verrocchio-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const artistSearchLimit = 50

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func slideOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_index ASC")
}

// GET /users/me
func GetMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var user users.User
	if err := database.DB.Preload("Slides", slideOrder).First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": BuildUserDTO(&user)})
}

// PUT /users/me
//
// Allow-listed profile patch. Absent fields stay untouched, which is why
// everything binds through pointers.
func UpdateMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		DisplayName *string            `json:"display_name"`
		Bio         *string            `json:"bio"`
		AvatarURL   *string            `json:"avatar_url"`
		BannerURL   *string            `json:"banner_url"`
		ArtStyles   *[]string          `json:"art_styles"`
		PriceMin    *int               `json:"price_min"`
		PriceMax    *int               `json:"price_max"`
		SocialLinks *users.SocialLinks `json:"social_links"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}
	if input.BannerURL != nil {
		user.BannerURL = input.BannerURL
	}
	if input.ArtStyles != nil {
		user.ArtStyles = *input.ArtStyles
	}
	if input.PriceMin != nil {
		user.PriceMin = *input.PriceMin
	}
	if input.PriceMax != nil {
		user.PriceMax = *input.PriceMax
	}
	if input.SocialLinks != nil {
		user.SocialLinks = *input.SocialLinks
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": BuildUserDTO(&user)})
}

// GET /users/artists?q=&style=  (public)
func SearchArtists(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	style := strings.TrimSpace(c.Query("style"))

	query := database.DB.Model(&users.User{}).
		Preload("Slides", slideOrder).
		Where("role = ?", users.RoleArtist)

	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(display_name) LIKE ? OR LOWER(bio) LIKE ?",
			like, like, like,
		)
	}

	var artists []users.User
	if err := query.Order("created_at DESC").Find(&artists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search artists"})
		return
	}

	// Style tags are stored serialized, so tag membership is filtered here
	// rather than in SQL.
	out := make([]UserDTO, 0, len(artists))
	for i := range artists {
		if style != "" && !containsFold(artists[i].ArtStyles, style) {
			continue
		}
		out = append(out, BuildUserDTO(&artists[i]))
		if len(out) == artistSearchLimit {
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{"artists": out})
}

// GET /users/artists/:id  (public)
func GetArtist(c *gin.Context) {
	var artist users.User
	err := database.DB.Preload("Slides", slideOrder).
		First(&artist, "id = ? AND role = ?", c.Param("id"), users.RoleArtist).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artist": BuildUserDTO(&artist)})
}

// POST /users/me/slides
func AddSlide(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		ImageURL    string   `json:"image_url" binding:"required"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_url is required"})
		return
	}

	var maxSort int
	database.DB.Model(&users.Slide{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(sort_index), -1)").
		Scan(&maxSort)

	slide := users.Slide{
		UserID:      userID,
		SortIndex:   maxSort + 1,
		ImageURL:    input.ImageURL,
		Title:       input.Title,
		Description: input.Description,
		Tags:        input.Tags,
	}
	if err := database.DB.Create(&slide).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create slide"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"slide": slide})
}

// DELETE /users/me/slides/:id
func DeleteSlide(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var slide users.Slide
	if err := database.DB.First(&slide, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Slide not found"})
		return
	}

	if err := database.DB.Delete(&slide).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete slide"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
