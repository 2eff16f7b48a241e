package notifications

import (
	"net/http"
	"strconv"

	"verrocchio-backend/database"
	"verrocchio-backend/internal/domain/notifications"
	"verrocchio-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 50

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// POST /notifications
//
// Direct notify operation. Most notifications are produced as side effects
// of messages, likes and request activity; this endpoint covers the rest
// (follow, deadline reminders) that clients trigger explicitly.
func CreateNotification(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	var input struct {
		UserID uint           `json:"user_id" binding:"required"`
		Type   string         `json:"type" binding:"required"`
		Data   map[string]any `json:"data"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and type required"})
		return
	}
	if !notifications.ValidType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification type"})
		return
	}

	var count int64
	database.DB.Model(&users.User{}).Where("id = ?", input.UserID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := notifications.Notify(database.DB, input.UserID, input.Type, input.Data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// GET /notifications?limit=
func ListNotifications(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	limit := defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	var rows []notifications.Notification
	err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": rows})
}

// POST /notifications/:id/read
//
// Idempotent: marking an already-read notification succeeds and leaves
// read=true.
func MarkRead(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var notif notifications.Notification
	if err := database.DB.First(&notif, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if notif.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
		return
	}

	if !notif.Read {
		if err := database.DB.Model(&notif).Update("read", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark read"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /notifications/read-all
func MarkAllRead(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res := database.DB.Model(&notifications.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark all read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": res.RowsAffected})
}
