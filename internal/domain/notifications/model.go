package notifications

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TypeLike          = "like"
	TypeNewMessage    = "new_message"
	TypeNewRequest    = "new_request"
	TypeRequestUpdate = "request_update"
	TypeFollow        = "follow"
	TypeDeadline      = "deadline"
)

func ValidType(t string) bool {
	switch t {
	case TypeLike, TypeNewMessage, TypeNewRequest, TypeRequestUpdate, TypeFollow, TypeDeadline:
		return true
	}
	return false
}

type Notification struct {
	ID     uint           `gorm:"primaryKey" json:"id"`
	UserID uint           `gorm:"not null;index" json:"user_id"`
	Type   string         `gorm:"type:varchar(20);not null" json:"type"`
	Data   datatypes.JSON `json:"data"`
	Read   bool           `gorm:"not null;default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

// Notify appends an unread notification for userID. data is an opaque
// payload referencing the triggering entity. Runs on whatever handle it is
// given, so callers can place it inside a transaction.
func Notify(db *gorm.DB, userID uint, typ string, data map[string]any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	n := Notification{UserID: userID, Type: typ, Data: datatypes.JSON(payload)}
	return db.Create(&n).Error
}
