package posts

import (
	"net/http"

	"verrocchio-backend/database"
	"verrocchio-backend/internal/domain/notifications"
	"verrocchio-backend/internal/domain/posts"
	"verrocchio-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const feedPageSize = 50

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func likeCount(db *gorm.DB, postID uint) int {
	var count int64
	db.Model(&posts.PostLike{}).Where("post_id = ?", postID).Count(&count)
	return int(count)
}

// GET /posts  (public feed)
func ListPosts(c *gin.Context) {
	// Viewer is optional on the public feed; the liked flag stays false
	// for anonymous readers.
	viewerID := c.GetUint("user_id")

	var rows []posts.Post
	err := database.DB.
		Order("created_at DESC, id DESC").
		Limit(feedPageSize).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	authors, err := loadAuthors(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	out := make([]PostDTO, 0, len(rows))
	for i := range rows {
		p := &rows[i]
		liked := false
		if viewerID != 0 {
			var count int64
			database.DB.Model(&posts.PostLike{}).
				Where("post_id = ? AND user_id = ?", p.ID, viewerID).
				Count(&count)
			liked = count > 0
		}
		out = append(out, buildPostDTO(p, authors[p.AuthorID], likeCount(database.DB, p.ID), liked))
	}

	c.JSON(http.StatusOK, gin.H{"posts": out})
}

// GET /posts/:id  (public)
func GetPost(c *gin.Context) {
	var post posts.Post
	if err := database.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var author users.User
	var authorPtr *users.User
	if err := database.DB.First(&author, post.AuthorID).Error; err == nil {
		authorPtr = &author
	}

	c.JSON(http.StatusOK, gin.H{"post": buildPostDTO(&post, authorPtr, likeCount(database.DB, post.ID), false)})
}

// POST /posts
func CreatePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		ImageURL string   `json:"image_url" binding:"required"`
		Title    string   `json:"title"`
		Caption  string   `json:"caption"`
		Tags     []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_url is required"})
		return
	}

	post := posts.Post{
		AuthorID: userID,
		ImageURL: input.ImageURL,
		Title:    input.Title,
		Caption:  input.Caption,
		Tags:     input.Tags,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": buildPostDTO(&post, nil, 0, false)})
}

// POST /posts/:id/like
//
// Idempotent: the unique (post_id, user_id) index swallows repeats, and the
// author is only notified when a like row is actually inserted.
func LikePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var post posts.Post
	if err := database.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		like := posts.PostLike{PostID: post.ID, UserID: userID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&like)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 && post.AuthorID != userID {
			return notifications.Notify(tx, post.AuthorID, notifications.TypeLike, map[string]any{
				"post_id":      post.ID,
				"from_user_id": userID,
			})
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes_count": likeCount(database.DB, post.ID)})
}

// DELETE /posts/:id/like
func UnlikePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var post posts.Post
	if err := database.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	err := database.DB.
		Where("post_id = ? AND user_id = ?", post.ID, userID).
		Delete(&posts.PostLike{}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes_count": likeCount(database.DB, post.ID)})
}

func loadAuthors(rows []posts.Post) (map[uint]*users.User, error) {
	ids := make([]uint, 0, len(rows))
	seen := map[uint]bool{}
	for i := range rows {
		if !seen[rows[i].AuthorID] {
			seen[rows[i].AuthorID] = true
			ids = append(ids, rows[i].AuthorID)
		}
	}

	out := map[uint]*users.User{}
	if len(ids) == 0 {
		return out, nil
	}
	var authors []users.User
	if err := database.DB.Find(&authors, ids).Error; err != nil {
		return nil, err
	}
	for i := range authors {
		out[authors[i].ID] = &authors[i]
	}
	return out, nil
}
