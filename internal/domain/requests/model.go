package requests

import "time"

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CommissionRequest is a buyer-authored posting describing desired artwork,
// open for artist interest. Budget min/max are not cross-validated.
type CommissionRequest struct {
	ID          uint   `gorm:"primaryKey"`
	BuyerID     uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	BudgetMin   int
	BudgetMax   int
	Timeframe   string
	Tags        []string `gorm:"serializer:json"`
	Images      []string `gorm:"serializer:json"`
	Status      string   `gorm:"type:varchar(15);not null;default:'open';index"`

	AssignedArtistID *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}
