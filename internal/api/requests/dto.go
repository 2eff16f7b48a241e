package requests

import (
	"time"

	usersapi "verrocchio-backend/internal/api/users"
	"verrocchio-backend/internal/domain/requests"
	"verrocchio-backend/internal/domain/users"
)

type RequestDTO struct {
	ID          uint     `json:"id"`
	BuyerID     uint     `json:"buyer_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	BudgetMin   int      `json:"budget_min"`
	BudgetMax   int      `json:"budget_max"`
	Timeframe   string   `json:"timeframe"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	Status      string   `json:"status"`

	AssignedArtistID *uint `json:"assigned_artist_id,omitempty"`

	Buyer *usersapi.UserSummaryDTO `json:"buyer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func buildRequestDTO(r *requests.CommissionRequest, buyer *users.User) RequestDTO {
	dto := RequestDTO{
		ID:               r.ID,
		BuyerID:          r.BuyerID,
		Title:            r.Title,
		Description:      r.Description,
		BudgetMin:        r.BudgetMin,
		BudgetMax:        r.BudgetMax,
		Timeframe:        r.Timeframe,
		Tags:             r.Tags,
		Images:           r.Images,
		Status:           r.Status,
		AssignedArtistID: r.AssignedArtistID,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if dto.Tags == nil {
		dto.Tags = []string{}
	}
	if dto.Images == nil {
		dto.Images = []string{}
	}
	if buyer != nil {
		summary := usersapi.BuildUserSummaryDTO(buyer)
		dto.Buyer = &summary
	}
	return dto
}
