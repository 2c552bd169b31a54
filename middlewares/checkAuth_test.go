package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

// Helper function to generate a signed JWT token
func generateToken(userID string, role string, expiresIn time.Duration, secret string) string {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": float64(time.Now().Add(expiresIn).Unix()),
	}
	if role != "" {
		claims["role"] = role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(secret))
	return tokenString
}

// Setup test Gin context
func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)
	return c, w
}

func TestCheckAuth(t *testing.T) {
	secret := "test-secret-key"
	os.Setenv("SECRET", secret)

	tests := []struct {
		name            string
		authHeader      string
		expectedStatus  int
		expectAbort     bool
		expectUserID    string
		expectAdminFlag bool
		adminRole       bool
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "invalid token format - no Bearer prefix",
			authHeader:     "InvalidToken123",
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "invalid token format - wrong prefix",
			authHeader:     "Basic " + generateToken("u1", "user", 24*time.Hour, secret),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "invalid JWT signature",
			authHeader:     "Bearer " + generateToken("u1", "user", 24*time.Hour, "wrong-secret-key"),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + generateToken("u1", "user", -1*time.Hour, secret),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:            "valid token - regular user",
			authHeader:      "Bearer " + generateToken("u1", "user", 24*time.Hour, secret),
			expectAbort:     false,
			expectUserID:    "u1",
			expectAdminFlag: true,
			adminRole:       false,
		},
		{
			name:            "valid token - admin user",
			authHeader:      "Bearer " + generateToken("rev1", "admin", 24*time.Hour, secret),
			expectAbort:     false,
			expectUserID:    "rev1",
			expectAdminFlag: true,
			adminRole:       true,
		},
		{
			name:            "valid token - no role claim (defaults to non-admin)",
			authHeader:      "Bearer " + generateToken("u2", "", 24*time.Hour, secret),
			expectAbort:     false,
			expectUserID:    "u2",
			expectAdminFlag: true,
			adminRole:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()

			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			CheckAuth(c)

			if tt.expectAbort {
				assert.True(t, c.IsAborted(), "Expected request to be aborted")
				assert.Equal(t, tt.expectedStatus, w.Code)
				_, exists := c.Get("currentUserID")
				assert.False(t, exists, "Expected currentUserID not to be set")
				return
			}

			assert.False(t, c.IsAborted(), "Expected request not to be aborted")

			userID, exists := c.Get("currentUserID")
			assert.True(t, exists, "Expected currentUserID to be set")
			assert.Equal(t, tt.expectUserID, userID)

			if tt.expectAdminFlag {
				admin, exists := c.Get("admin")
				assert.True(t, exists, "Expected admin to be set")
				assert.Equal(t, tt.adminRole, admin.(bool))
			}
		})
	}
}
