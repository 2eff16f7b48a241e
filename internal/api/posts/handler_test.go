package posts_test

import (
	"fmt"
	"net/http"
	"testing"

	"verrocchio-backend/internal/domain/notifications"
	"verrocchio-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postResponse struct {
	Post struct {
		ID       uint   `json:"id"`
		AuthorID uint   `json:"author_id"`
		ImageURL string `json:"image_url"`
	} `json:"post"`
}

type likesResponse struct {
	LikesCount int `json:"likes_count"`
}

func TestCreateAndListPosts(t *testing.T) {
	db, r := testutil.Setup(t)
	artist, token := testutil.CreateUser(t, db, "artist", "artist")

	// image_url is required
	w := testutil.Do(t, r, http.MethodPost, "/posts", map[string]any{"title": "no image"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.Do(t, r, http.MethodPost, "/posts",
		map[string]any{"image_url": "https://cdn.example.com/1.png", "caption": "first"}, token)
	var created postResponse
	testutil.Decode(t, w, http.StatusCreated, &created)
	assert.Equal(t, artist.ID, created.Post.AuthorID)

	w = testutil.Do(t, r, http.MethodPost, "/posts",
		map[string]any{"image_url": "https://cdn.example.com/2.png"}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	// feed is public and newest first
	var feed struct {
		Posts []struct {
			ImageURL string `json:"image_url"`
			Author   *struct {
				Username string `json:"username"`
			} `json:"author"`
		} `json:"posts"`
	}
	w = testutil.Do(t, r, http.MethodGet, "/posts", nil, "")
	testutil.Decode(t, w, http.StatusOK, &feed)
	require.Len(t, feed.Posts, 2)
	assert.Equal(t, "https://cdn.example.com/2.png", feed.Posts[0].ImageURL)
	require.NotNil(t, feed.Posts[0].Author)
	assert.Equal(t, "artist", feed.Posts[0].Author.Username)
}

func TestLikeIsIdempotent(t *testing.T) {
	db, r := testutil.Setup(t)
	author, authorToken := testutil.CreateUser(t, db, "author", "artist")
	_, fanToken := testutil.CreateUser(t, db, "fan", "buyer")

	w := testutil.Do(t, r, http.MethodPost, "/posts",
		map[string]any{"image_url": "https://cdn.example.com/1.png"}, authorToken)
	var created postResponse
	testutil.Decode(t, w, http.StatusCreated, &created)
	likePath := fmt.Sprintf("/posts/%d/like", created.Post.ID)

	var likes likesResponse
	w = testutil.Do(t, r, http.MethodPost, likePath, nil, fanToken)
	testutil.Decode(t, w, http.StatusOK, &likes)
	assert.Equal(t, 1, likes.LikesCount)

	// repeated like does not double-count
	w = testutil.Do(t, r, http.MethodPost, likePath, nil, fanToken)
	testutil.Decode(t, w, http.StatusOK, &likes)
	assert.Equal(t, 1, likes.LikesCount)

	// and the author was notified exactly once
	var count int64
	db.Model(&notifications.Notification{}).
		Where("user_id = ? AND type = ?", author.ID, notifications.TypeLike).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUnlikeIsIdempotent(t *testing.T) {
	db, r := testutil.Setup(t)
	_, authorToken := testutil.CreateUser(t, db, "author", "artist")
	_, fanToken := testutil.CreateUser(t, db, "fan", "buyer")

	w := testutil.Do(t, r, http.MethodPost, "/posts",
		map[string]any{"image_url": "https://cdn.example.com/1.png"}, authorToken)
	var created postResponse
	testutil.Decode(t, w, http.StatusCreated, &created)
	likePath := fmt.Sprintf("/posts/%d/like", created.Post.ID)

	w = testutil.Do(t, r, http.MethodPost, likePath, nil, fanToken)
	require.Equal(t, http.StatusOK, w.Code)

	var likes likesResponse
	w = testutil.Do(t, r, http.MethodDelete, likePath, nil, fanToken)
	testutil.Decode(t, w, http.StatusOK, &likes)
	assert.Equal(t, 0, likes.LikesCount)

	// unliking again stays at zero
	w = testutil.Do(t, r, http.MethodDelete, likePath, nil, fanToken)
	testutil.Decode(t, w, http.StatusOK, &likes)
	assert.Equal(t, 0, likes.LikesCount)
}

func TestSelfLikeDoesNotNotify(t *testing.T) {
	db, r := testutil.Setup(t)
	author, authorToken := testutil.CreateUser(t, db, "author", "artist")

	w := testutil.Do(t, r, http.MethodPost, "/posts",
		map[string]any{"image_url": "https://cdn.example.com/1.png"}, authorToken)
	var created postResponse
	testutil.Decode(t, w, http.StatusCreated, &created)

	w = testutil.Do(t, r, http.MethodPost, fmt.Sprintf("/posts/%d/like", created.Post.ID), nil, authorToken)
	var likes likesResponse
	testutil.Decode(t, w, http.StatusOK, &likes)
	assert.Equal(t, 1, likes.LikesCount)

	var count int64
	db.Model(&notifications.Notification{}).Where("user_id = ?", author.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestLikeUnknownPost(t *testing.T) {
	db, r := testutil.Setup(t)
	_, token := testutil.CreateUser(t, db, "fan", "buyer")

	w := testutil.Do(t, r, http.MethodPost, "/posts/424242/like", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
