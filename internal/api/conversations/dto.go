package conversations

import (
	"time"

	usersapi "verrocchio-backend/internal/api/users"
	"verrocchio-backend/internal/domain/chat"
	"verrocchio-backend/internal/domain/users"
)

type ConversationDTO struct {
	ID            uint                    `json:"id"`
	Peer          usersapi.UserSummaryDTO `json:"peer"`
	LastMessage   string                  `json:"last_message"`
	LastMessageAt time.Time               `json:"last_message_at"`
	CreatedAt     time.Time               `json:"created_at"`
}

type MessageDTO struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"conversation_id"`
	SenderID       uint      `json:"sender_id"`
	RecipientID    uint      `json:"recipient_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func buildConversationDTO(convo *chat.Conversation, viewerID uint, peer *users.User) ConversationDTO {
	dto := ConversationDTO{
		ID:            convo.ID,
		LastMessage:   convo.LastMessage,
		LastMessageAt: convo.LastMessageAt,
		CreatedAt:     convo.CreatedAt,
	}
	if peer != nil {
		dto.Peer = usersapi.BuildUserSummaryDTO(peer)
	} else {
		dto.Peer = usersapi.UserSummaryDTO{ID: convo.Other(viewerID)}
	}
	return dto
}

func buildMessageDTO(m *chat.Message) MessageDTO {
	return MessageDTO{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		RecipientID:    m.RecipientID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}
