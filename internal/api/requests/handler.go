package requests

import (
	"net/http"

	"verrocchio-backend/config"
	"verrocchio-backend/database"
	"verrocchio-backend/internal/domain/notifications"
	"verrocchio-backend/internal/domain/requests"
	"verrocchio-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const boardPageSize = 50

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// defaultBudgetMax applies the configured fallback rule when a request is
// created without budget_max.
func defaultBudgetMax(budgetMin int) int {
	if config.BUDGET_MAX_DEFAULT == "double" {
		return 2 * budgetMin
	}
	return 0
}

// POST /requests  (buyers only, guarded in routes)
func CreateRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description" binding:"required"`
		BudgetMin   int      `json:"budget_min"`
		BudgetMax   *int     `json:"budget_max"`
		Timeframe   string   `json:"timeframe"`
		Tags        []string `json:"tags"`
		Images      []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing title or description"})
		return
	}

	budgetMax := defaultBudgetMax(input.BudgetMin)
	if input.BudgetMax != nil {
		budgetMax = *input.BudgetMax
	}

	request := requests.CommissionRequest{
		BuyerID:     userID,
		Title:       input.Title,
		Description: input.Description,
		BudgetMin:   input.BudgetMin,
		BudgetMax:   budgetMax,
		Timeframe:   input.Timeframe,
		Tags:        input.Tags,
		Images:      input.Images,
		Status:      requests.StatusOpen,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": buildRequestDTO(&request, nil)})
}

// GET /requests?tag=
//
// The open board: newest first, capped at one page. Tag filtering happens
// in Go because tags are stored serialized.
func ListOpenRequests(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}
	tag := c.Query("tag")

	var rows []requests.CommissionRequest
	err := database.DB.
		Where("status = ?", requests.StatusOpen).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load requests"})
		return
	}

	filtered := rows[:0]
	for i := range rows {
		if tag != "" && !containsTag(rows[i].Tags, tag) {
			continue
		}
		filtered = append(filtered, rows[i])
		if len(filtered) == boardPageSize {
			break
		}
	}

	buyers, err := loadBuyers(filtered)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load requests"})
		return
	}

	out := make([]RequestDTO, 0, len(filtered))
	for i := range filtered {
		out = append(out, buildRequestDTO(&filtered[i], buyers[filtered[i].BuyerID]))
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}

// GET /requests/mine
func ListMyRequests(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var rows []requests.CommissionRequest
	err := database.DB.
		Where("buyer_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load requests"})
		return
	}

	out := make([]RequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, buildRequestDTO(&rows[i], nil))
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}

// PUT /requests/:id
//
// Owner-only allow-listed patch. When an artist is assigned they get a
// request_update notification inside the same transaction.
func UpdateRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var request requests.CommissionRequest
	if err := database.DB.First(&request, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if request.BuyerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your request"})
		return
	}

	var input struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		BudgetMin   *int      `json:"budget_min"`
		BudgetMax   *int      `json:"budget_max"`
		Timeframe   *string   `json:"timeframe"`
		Tags        *[]string `json:"tags"`
		Images      *[]string `json:"images"`
		Status      *string   `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Status != nil && !requests.ValidStatus(*input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if input.Title != nil {
		request.Title = *input.Title
	}
	if input.Description != nil {
		request.Description = *input.Description
	}
	if input.BudgetMin != nil {
		request.BudgetMin = *input.BudgetMin
	}
	if input.BudgetMax != nil {
		request.BudgetMax = *input.BudgetMax
	}
	if input.Timeframe != nil {
		request.Timeframe = *input.Timeframe
	}
	if input.Tags != nil {
		request.Tags = *input.Tags
	}
	if input.Images != nil {
		request.Images = *input.Images
	}
	if input.Status != nil {
		request.Status = *input.Status
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&request).Error; err != nil {
			return err
		}
		if request.AssignedArtistID != nil {
			return notifications.Notify(tx, *request.AssignedArtistID, notifications.TypeRequestUpdate, map[string]any{
				"request_id": request.ID,
			})
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": buildRequestDTO(&request, nil)})
}

// DELETE /requests/:id
func DeleteRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var request requests.CommissionRequest
	if err := database.DB.First(&request, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if request.BuyerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your request"})
		return
	}

	if err := database.DB.Delete(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /requests/:id/interest  (artists only, guarded in routes)
//
// Notifies the buyer; the request status is untouched.
func ExpressInterest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var request requests.CommissionRequest
	if err := database.DB.First(&request, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	err := notifications.Notify(database.DB, request.BuyerID, notifications.TypeNewRequest, map[string]any{
		"request_id":     request.ID,
		"from_artist_id": userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to express interest"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func loadBuyers(rows []requests.CommissionRequest) (map[uint]*users.User, error) {
	ids := make([]uint, 0, len(rows))
	seen := map[uint]bool{}
	for i := range rows {
		if !seen[rows[i].BuyerID] {
			seen[rows[i].BuyerID] = true
			ids = append(ids, rows[i].BuyerID)
		}
	}

	out := map[uint]*users.User{}
	if len(ids) == 0 {
		return out, nil
	}
	var buyers []users.User
	if err := database.DB.Find(&buyers, ids).Error; err != nil {
		return nil, err
	}
	for i := range buyers {
		out[buyers[i].ID] = &buyers[i]
	}
	return out, nil
}
