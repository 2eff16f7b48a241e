package chat

import "time"

// Message is immutable once created. Ordering is by CreatedAt with the
// auto-increment id breaking ties in insertion order.
type Message struct {
	ID             uint   `gorm:"primaryKey"`
	ConversationID uint   `gorm:"not null;index"`
	SenderID       uint   `gorm:"not null"`
	RecipientID    uint   `gorm:"not null"`
	Content        string `gorm:"not null"`

	CreatedAt time.Time
}
