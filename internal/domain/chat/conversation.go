package chat

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Conversation pairs exactly two users. The pair is stored in canonical
// order (UserAID < UserBID) under a unique index, so there is at most one
// row per pair no matter which side initiates first.
type Conversation struct {
	ID      uint `gorm:"primaryKey"`
	UserAID uint `gorm:"not null;uniqueIndex:idx_conversations_pair,priority:1"`
	UserBID uint `gorm:"not null;uniqueIndex:idx_conversations_pair,priority:2"`

	// Denormalized cache of the latest message so list views need not
	// scan the message log. LastMessageAt starts at creation time.
	LastMessage   string `gorm:"default:''"`
	LastMessageAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PairKey returns the canonical ordering of two user ids.
func PairKey(x, y uint) (uint, uint) {
	if x > y {
		return y, x
	}
	return x, y
}

// Other returns the participant that is not userID.
func (c *Conversation) Other(userID uint) uint {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

func (c *Conversation) HasParticipant(userID uint) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// GetOrCreate resolves the single conversation for a pair of users,
// inserting it when absent. The insert rides on the unique pair index with
// ON CONFLICT DO NOTHING, so two concurrent first-contact requests converge
// on the same row instead of racing a lookup-then-create.
func GetOrCreate(db *gorm.DB, x, y uint) (*Conversation, error) {
	a, b := PairKey(x, y)

	convo := Conversation{UserAID: a, UserBID: b, LastMessageAt: time.Now()}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
		DoNothing: true,
	}).Create(&convo).Error
	if err != nil {
		return nil, err
	}

	// On conflict the insert assigns no id; fetch the winner either way so
	// the caller always sees the stored row.
	var out Conversation
	if err := db.First(&out, "user_a_id = ? AND user_b_id = ?", a, b).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
