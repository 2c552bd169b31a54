package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/GatherMatch/models"
	"github.com/doug-martin/goqu/v9"
)

type PushNotificationService struct {
	db        *goqu.Database
	fcmClient *messaging.Client
}

type NotificationPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// NewPushNotificationService initializes the Firebase Admin SDK. A missing
// credential leaves the service in a degraded state where sends log and
// return an error instead of panicking.
func NewPushNotificationService(db *goqu.Database) *PushNotificationService {
	svc := &PushNotificationService{db: db}

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	var app *firebase.App
	var err error

	if serviceAccountPath != "" {
		opt := option.WithCredentialsFile(serviceAccountPath)
		app, err = firebase.NewApp(context.Background(), nil, opt)
	} else {
		// Application Default Credentials
		app, err = firebase.NewApp(context.Background(), nil)
	}
	if err != nil {
		log.Printf("Failed to initialize Firebase app: %v", err)
		return svc
	}

	svc.fcmClient, err = app.Messaging(context.Background())
	if err != nil {
		log.Printf("Failed to get Firebase messaging client: %v", err)
		return svc
	}

	log.Println("Push notification service initialized with FCM")
	return svc
}

// RegisterToken stores a device token for a user, refreshing the timestamp
// when the same token is registered again.
func (s *PushNotificationService) RegisterToken(ctx context.Context, userID, token, platform string) error {
	now := time.Now()

	query := `
		INSERT INTO user_push_token (user_id, push_token, platform, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id, push_token)
		DO UPDATE SET platform = $3, updated_at = $4
	`
	if _, err := s.db.ExecContext(ctx, query, userID, token, platform, now); err != nil {
		return fmt.Errorf("failed to store push token for user %s: %w", userID, err)
	}
	return nil
}

func (s *PushNotificationService) SendNotificationToUser(userID string, payload NotificationPayload) error {
	var tokens []models.PushToken
	err := s.db.From("user_push_token").
		Where(goqu.C("user_id").Eq(userID)).
		ScanStructs(&tokens)
	if err != nil {
		return fmt.Errorf("failed to get push tokens for user %s: %v", userID, err)
	}

	if len(tokens) == 0 {
		return fmt.Errorf("no push tokens found for user %s", userID)
	}

	for _, token := range tokens {
		if err := s.sendToToken(token, payload); err != nil {
			log.Printf("Failed to send notification to token %s: %v", token.PushToken, err)
			// keep going with the user's other devices
		}
	}

	return nil
}

func (s *PushNotificationService) SendNotificationToUsers(userIDs []string, payload NotificationPayload) error {
	failed := 0

	for _, userID := range userIDs {
		if err := s.SendNotificationToUser(userID, payload); err != nil {
			failed++
			log.Printf("Failed to send notification to user %s: %v", userID, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to send notifications to %d users", failed)
	}
	return nil
}

func (s *PushNotificationService) sendToToken(pushToken models.PushToken, payload NotificationPayload) error {
	if s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	message := &messaging.Message{
		Token: pushToken.PushToken,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}

	if pushToken.Platform == "ios" {
		message.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: payload.Title,
						Body:  payload.Body,
					},
				},
			},
		}
	} else if pushToken.Platform == "android" {
		message.Android = &messaging.AndroidConfig{
			Priority: "normal",
			Notification: &messaging.AndroidNotification{
				Title: payload.Title,
				Body:  payload.Body,
			},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, err := s.fcmClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("FCM send failed: %v", err)
	}

	log.Printf("FCM message sent: %s", response)
	return nil
}
