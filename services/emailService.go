package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	moderator string
}

// NewEmailService wires up Resend. Without an API key the service stays
// inert and sends report an error.
func NewEmailService() *EmailService {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return &EmailService{moderator: os.Getenv("MODERATION_EMAIL")}
	}

	log.Println("Email service initialized with Resend")
	return &EmailService{
		client:    resend.NewClient(apiKey),
		moderator: os.Getenv("MODERATION_EMAIL"),
	}
}

// SendModerationNotice tells the moderation inbox that an activity is
// waiting for review.
func (s *EmailService) SendModerationNotice(activityID string, ownerID string, title string) error {
	if s.client == nil {
		return fmt.Errorf("email service not initialized")
	}
	if s.moderator == "" {
		return fmt.Errorf("MODERATION_EMAIL not configured")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body>
    <h2>Activity pending review</h2>
    <p>Activity <strong>%s</strong> ("%s") submitted by user %s is waiting in the review queue.</p>
</body>
</html>`, activityID, title, ownerID)

	params := &resend.SendEmailRequest{
		From:    "GatherMatch <no-reply@gathermatch.app>",
		To:      []string{s.moderator},
		Subject: fmt.Sprintf("Activity %s pending review", activityID),
		Html:    htmlBody,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send moderation notice: %v", err)
	}
	return nil
}
