package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/GatherMatch/services"
	"github.com/GatherMatch/stores"
)

// SetupTestDB creates a mock database for controller tests
func SetupTestDB(t *testing.T) (*goqu.Database, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	goquDB := goqu.New("postgres", db)

	// Return cleanup function
	cleanup := func() {
		// Small delay to allow goroutines (like push notifications) to complete
		time.Sleep(10 * time.Millisecond)
		db.Close()
	}

	return goquDB, mock, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// SetAuthenticatedUser sets the currentUserID and admin values in the Gin
// context. This simulates what the CheckAuth middleware does.
func SetAuthenticatedUser(c *gin.Context, userID string, isAdmin bool) {
	c.Set("currentUserID", userID)
	c.Set("admin", isAdmin)
}

// noopNotifier returns a trigger service with no delivery backends, so
// controller tests never reach out to FCM or the email provider.
func noopNotifier() *services.NotificationTriggerService {
	return services.NewNotificationTriggerService(nil, nil)
}

func newActivityController(db *goqu.Database) *ActivityController {
	return NewActivityController(stores.NewActivityStore(db), services.NewTemplateGenerator(), noopNotifier())
}

func newMatchController(db *goqu.Database) *MatchController {
	return NewMatchController(stores.NewMatchStore(db, services.NewStubRanker()), stores.NewActivityStore(db), noopNotifier())
}

func newAdminController(db *goqu.Database) *AdminController {
	return NewAdminController(stores.NewAdminStore(db), noopNotifier())
}
