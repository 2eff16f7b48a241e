package auth_test

import (
	"net/http"
	"testing"

	"verrocchio-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID          uint   `json:"id"`
		Email       string `json:"email"`
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
		Role        string `json:"role"`
	} `json:"user"`
}

func registerBody(email, username, role string) map[string]any {
	return map[string]any{
		"email":    email,
		"username": username,
		"password": "password1",
		"role":     role,
	}
}

func TestRegister(t *testing.T) {
	_, r := testutil.Setup(t)

	w := testutil.Do(t, r, http.MethodPost, "/auth/register", registerBody("ana@example.com", "ana", "artist"), "")

	var resp authResponse
	testutil.Decode(t, w, http.StatusCreated, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, "artist", resp.User.Role)
	// display name falls back to the username
	assert.Equal(t, "ana", resp.User.DisplayName)
}

func TestRegisterValidation(t *testing.T) {
	_, r := testutil.Setup(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing email", map[string]any{"username": "ana", "password": "password1", "role": "buyer"}},
		{"bad email", registerBody("not-an-email", "ana", "buyer")},
		{"short password", map[string]any{"email": "a@b.co", "username": "ana", "password": "short", "role": "buyer"}},
		{"bad role", registerBody("ana@example.com", "ana", "admin")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.Do(t, r, http.MethodPost, "/auth/register", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", w.Body.String())
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	_, r := testutil.Setup(t)

	w := testutil.Do(t, r, http.MethodPost, "/auth/register", registerBody("ana@example.com", "ana", "artist"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	// same email, different username
	w = testutil.Do(t, r, http.MethodPost, "/auth/register", registerBody("ana@example.com", "other", "buyer"), "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// same username, different email
	w = testutil.Do(t, r, http.MethodPost, "/auth/register", registerBody("other@example.com", "ana", "buyer"), "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	_, r := testutil.Setup(t)

	w := testutil.Do(t, r, http.MethodPost, "/auth/register", registerBody("ana@example.com", "ana", "artist"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("by email", func(t *testing.T) {
		w := testutil.Do(t, r, http.MethodPost, "/auth/login",
			map[string]any{"emailOrUsername": "ana@example.com", "password": "password1"}, "")
		var resp authResponse
		testutil.Decode(t, w, http.StatusOK, &resp)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("by username", func(t *testing.T) {
		w := testutil.Do(t, r, http.MethodPost, "/auth/login",
			map[string]any{"emailOrUsername": "ana", "password": "password1"}, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := testutil.Do(t, r, http.MethodPost, "/auth/login",
			map[string]any{"emailOrUsername": "ghost", "password": "password1"}, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := testutil.Do(t, r, http.MethodPost, "/auth/login",
			map[string]any{"emailOrUsername": "ana", "password": "wrong-password"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMe(t *testing.T) {
	db, r := testutil.Setup(t)
	user, token := testutil.CreateUser(t, db, "ana", "artist")

	w := testutil.Do(t, r, http.MethodGet, "/auth/me", nil, token)

	var resp struct {
		User struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	testutil.Decode(t, w, http.StatusOK, &resp)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, "ana", resp.User.Username)
}

func TestMeRequiresToken(t *testing.T) {
	_, r := testutil.Setup(t)

	w := testutil.Do(t, r, http.MethodGet, "/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.Do(t, r, http.MethodGet, "/auth/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
