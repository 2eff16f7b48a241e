package conversations

import (
	"net/http"
	"strconv"
	"time"

	"verrocchio-backend/database"
	"verrocchio-backend/internal/domain/chat"
	"verrocchio-backend/internal/domain/notifications"
	"verrocchio-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultMessagePageSize = 50
	maxMessagePageSize     = 200
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// loadParticipantConversation fetches the conversation from the :id param
// and enforces that the caller is one of its two participants.
func loadParticipantConversation(c *gin.Context, userID uint) (*chat.Conversation, bool) {
	var convo chat.Conversation
	if err := database.DB.First(&convo, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return nil, false
	}
	if !convo.HasParticipant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
		return nil, false
	}
	return &convo, true
}

// POST /conversations
func StartConversation(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}
	if input.UserID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot start a conversation with yourself"})
		return
	}

	var peer users.User
	if err := database.DB.First(&peer, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	convo, err := chat.GetOrCreate(database.DB, userID, peer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start conversation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"conversation": buildConversationDTO(convo, userID, &peer)})
}

// GET /conversations
func ListConversations(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var convos []chat.Conversation
	err := database.DB.
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&convos).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversations"})
		return
	}

	// One batched peer lookup instead of a query per row.
	peerIDs := make([]uint, 0, len(convos))
	for i := range convos {
		peerIDs = append(peerIDs, convos[i].Other(userID))
	}
	peers := map[uint]*users.User{}
	if len(peerIDs) > 0 {
		var rows []users.User
		if err := database.DB.Find(&rows, peerIDs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversations"})
			return
		}
		for i := range rows {
			peers[rows[i].ID] = &rows[i]
		}
	}

	out := make([]ConversationDTO, 0, len(convos))
	for i := range convos {
		out = append(out, buildConversationDTO(&convos[i], userID, peers[convos[i].Other(userID)]))
	}

	c.JSON(http.StatusOK, gin.H{"conversations": out})
}

// GET /conversations/:id/messages?before=&limit=
//
// Messages come back oldest-first. Without a cursor the newest `limit`
// messages are returned; `before` (a message id from a previous page) walks
// the history backwards.
func ListMessages(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	convo, ok := loadParticipantConversation(c, userID)
	if !ok {
		return
	}

	limit := defaultMessagePageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		if n > maxMessagePageSize {
			n = maxMessagePageSize
		}
		limit = n
	}

	query := database.DB.Where("conversation_id = ?", convo.ID)
	if raw := c.Query("before"); raw != "" {
		before, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor"})
			return
		}
		query = query.Where("id < ?", before)
	}

	// Fetch the page newest-first, then reverse into display order.
	var page []chat.Message
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&page).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	out := make([]MessageDTO, 0, len(page))
	for i := len(page) - 1; i >= 0; i-- {
		out = append(out, buildMessageDTO(&page[i]))
	}

	var nextBefore *uint
	if len(page) == limit {
		oldest := page[len(page)-1].ID
		nextBefore = &oldest
	}

	c.JSON(http.StatusOK, gin.H{"messages": out, "next_before": nextBefore})
}

// POST /conversations/:id/messages
//
// The message insert, the conversation's last-message cache update and the
// recipient's notification commit or roll back together.
func SendMessage(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	convo, ok := loadParticipantConversation(c, userID)
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}

	recipientID := convo.Other(userID)
	message := chat.Message{
		ConversationID: convo.ID,
		SenderID:       userID,
		RecipientID:    recipientID,
		Content:        input.Content,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		err := tx.Model(&chat.Conversation{}).
			Where("id = ?", convo.ID).
			Updates(map[string]any{
				"last_message":    message.Content,
				"last_message_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}

		return notifications.Notify(tx, recipientID, notifications.TypeNewMessage, map[string]any{
			"conversation_id": convo.ID,
			"from_user_id":    userID,
		})
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": buildMessageDTO(&message)})
}
