// Package testutil wires a throwaway in-memory database and a fully routed
// gin engine for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"verrocchio-backend/config"
	"verrocchio-backend/database"
	routes "verrocchio-backend/internal/app/http"
	"verrocchio-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Setup points database.DB at a fresh in-memory SQLite, migrates the full
// schema and returns a routed engine.
func Setup(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()

	config.JWT_SECRET = "test-secret"
	config.BUDGET_MAX_DEFAULT = "zero"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	r := gin.New()
	routes.RegisterRoutes(r)
	return db, r
}

// CreateUser inserts a user directly and returns it with a signed bearer
// token, skipping the register endpoint for tests that are not about auth.
func CreateUser(t *testing.T, db *gorm.DB, username, role string) (*users.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(hashed)

	user := users.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: &hash,
		AuthProvider: "local",
		Role:         role,
		DisplayName:  username,
	}
	require.NoError(t, db.Create(&user).Error)

	return &user, Token(t, &user)
}

// Token signs a bearer token for user the same way the login handler does.
func Token(t *testing.T, user *users.User) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(config.JWT_SECRET))
	require.NoError(t, err)
	return signed
}

// Do performs a JSON request against the engine. body may be nil; token may
// be empty for unauthenticated calls.
func Do(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a recorded JSON response body, failing the test on a
// status mismatch first so the error message shows the payload.
func Decode(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, out any) {
	t.Helper()

	require.Equal(t, wantStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
	}
}
