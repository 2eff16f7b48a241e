package notifications_test

import (
	"fmt"
	"net/http"
	"testing"

	"verrocchio-backend/internal/domain/notifications"
	"verrocchio-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func unreadCount(db *gorm.DB, userID uint) int64 {
	var count int64
	db.Model(&notifications.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count)
	return count
}

func TestListNotifications(t *testing.T) {
	db, r := testutil.Setup(t)
	user, token := testutil.CreateUser(t, db, "ana", "artist")
	other, _ := testutil.CreateUser(t, db, "other", "buyer")

	for i := 0; i < 3; i++ {
		require.NoError(t, notifications.Notify(db, user.ID, notifications.TypeLike, map[string]any{"post_id": i}))
	}
	require.NoError(t, notifications.Notify(db, other.ID, notifications.TypeFollow, nil))

	var resp struct {
		Notifications []struct {
			ID     uint   `json:"id"`
			UserID uint   `json:"user_id"`
			Type   string `json:"type"`
			Read   bool   `json:"read"`
		} `json:"notifications"`
	}
	w := testutil.Do(t, r, http.MethodGet, "/notifications", nil, token)
	testutil.Decode(t, w, http.StatusOK, &resp)

	// only the caller's, newest first, all unread
	require.Len(t, resp.Notifications, 3)
	for _, n := range resp.Notifications {
		assert.Equal(t, user.ID, n.UserID)
		assert.False(t, n.Read)
	}
	assert.Greater(t, resp.Notifications[0].ID, resp.Notifications[2].ID)

	w = testutil.Do(t, r, http.MethodGet, "/notifications?limit=2", nil, token)
	testutil.Decode(t, w, http.StatusOK, &resp)
	assert.Len(t, resp.Notifications, 2)
}

func TestCreateNotification(t *testing.T) {
	db, r := testutil.Setup(t)
	_, token := testutil.CreateUser(t, db, "ana", "artist")
	target, _ := testutil.CreateUser(t, db, "bob", "buyer")

	w := testutil.Do(t, r, http.MethodPost, "/notifications", map[string]any{
		"user_id": target.ID,
		"type":    notifications.TypeFollow,
		"data":    map[string]any{"from": "ana"},
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, unreadCount(db, target.ID))

	t.Run("invalid type", func(t *testing.T) {
		w := testutil.Do(t, r, http.MethodPost, "/notifications", map[string]any{
			"user_id": target.ID,
			"type":    "carrier_pigeon",
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		w := testutil.Do(t, r, http.MethodPost, "/notifications", map[string]any{
			"user_id": 424242,
			"type":    notifications.TypeFollow,
		}, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMarkRead(t *testing.T) {
	db, r := testutil.Setup(t)
	user, token := testutil.CreateUser(t, db, "ana", "artist")

	require.NoError(t, notifications.Notify(db, user.ID, notifications.TypeNewMessage, nil))
	require.NoError(t, notifications.Notify(db, user.ID, notifications.TypeLike, nil))
	require.EqualValues(t, 2, unreadCount(db, user.ID))

	var notif notifications.Notification
	require.NoError(t, db.First(&notif, "user_id = ?", user.ID).Error)
	readPath := fmt.Sprintf("/notifications/%d/read", notif.ID)

	// marking read decreases unread by exactly one
	w := testutil.Do(t, r, http.MethodPost, readPath, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, unreadCount(db, user.ID))

	// repeat is a no-op, not an "unread" toggle
	w = testutil.Do(t, r, http.MethodPost, readPath, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, unreadCount(db, user.ID))
}

func TestMarkReadAuthorization(t *testing.T) {
	db, r := testutil.Setup(t)
	user, _ := testutil.CreateUser(t, db, "ana", "artist")
	_, strangerToken := testutil.CreateUser(t, db, "stranger", "buyer")

	require.NoError(t, notifications.Notify(db, user.ID, notifications.TypeLike, nil))
	var notif notifications.Notification
	require.NoError(t, db.First(&notif, "user_id = ?", user.ID).Error)

	w := testutil.Do(t, r, http.MethodPost, fmt.Sprintf("/notifications/%d/read", notif.ID), nil, strangerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.EqualValues(t, 1, unreadCount(db, user.ID))

	w = testutil.Do(t, r, http.MethodPost, "/notifications/424242/read", nil, strangerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkAllRead(t *testing.T) {
	db, r := testutil.Setup(t)
	user, token := testutil.CreateUser(t, db, "ana", "artist")
	other, _ := testutil.CreateUser(t, db, "other", "buyer")

	for i := 0; i < 4; i++ {
		require.NoError(t, notifications.Notify(db, user.ID, notifications.TypeDeadline, nil))
	}
	require.NoError(t, notifications.Notify(db, other.ID, notifications.TypeDeadline, nil))

	var resp struct {
		Updated int64 `json:"updated"`
	}
	w := testutil.Do(t, r, http.MethodPost, "/notifications/read-all", nil, token)
	testutil.Decode(t, w, http.StatusOK, &resp)
	assert.EqualValues(t, 4, resp.Updated)
	assert.EqualValues(t, 0, unreadCount(db, user.ID))

	// other users' notifications are untouched
	assert.EqualValues(t, 1, unreadCount(db, other.ID))

	// second call has nothing left to mark
	w = testutil.Do(t, r, http.MethodPost, "/notifications/read-all", nil, token)
	testutil.Decode(t, w, http.StatusOK, &resp)
	assert.EqualValues(t, 0, resp.Updated)
}
