package services

import (
	"fmt"
	"log"
)

// NotificationTriggerService fans business events out to push and email.
// Everything here is fire-and-forget: a delivery failure is logged and
// never affects the transaction that produced the event.
type NotificationTriggerService struct {
	push  *PushNotificationService
	email *EmailService
}

func NewNotificationTriggerService(push *PushNotificationService, email *EmailService) *NotificationTriggerService {
	return &NotificationTriggerService{push: push, email: email}
}

// NotifyCandidatesProposed pings every pending candidate of a fresh match.
func (s *NotificationTriggerService) NotifyCandidatesProposed(matchID string, activityID string, candidates []string) {
	if s.push == nil || len(candidates) == 0 {
		return
	}

	payload := NotificationPayload{
		Title: "New activity match",
		Body:  "You've been proposed as a partner for an activity. Accept or decline in the app.",
		Data: map[string]string{
			"type":        "MATCH_PROPOSED",
			"match_id":    matchID,
			"activity_id": activityID,
		},
	}

	go func() {
		if err := s.push.SendNotificationToUsers(candidates, payload); err != nil {
			log.Printf("match %s: candidate notification incomplete: %v", matchID, err)
		}
	}()
}

// NotifyOwnerOfResponse tells the activity owner a candidate answered.
func (s *NotificationTriggerService) NotifyOwnerOfResponse(ownerID string, matchID string, userID string, response string) {
	if s.push == nil || ownerID == "" || ownerID == userID {
		return
	}

	payload := NotificationPayload{
		Title: "Match response",
		Body:  fmt.Sprintf("A candidate chose to %s your activity match.", response),
		Data: map[string]string{
			"type":     "MATCH_RESPONSE",
			"match_id": matchID,
			"user_id":  userID,
			"response": response,
		},
	}

	go func() {
		if err := s.push.SendNotificationToUser(ownerID, payload); err != nil {
			log.Printf("match %s: owner notification failed: %v", matchID, err)
		}
	}()
}

// NotifyOwnerOfDecision tells the activity owner the review outcome.
func (s *NotificationTriggerService) NotifyOwnerOfDecision(ownerID string, activityID string, status string) {
	if s.push == nil || ownerID == "" {
		return
	}

	payload := NotificationPayload{
		Title: "Activity review complete",
		Body:  fmt.Sprintf("Your activity was %s.", status),
		Data: map[string]string{
			"type":        "ADMIN_DECISION",
			"activity_id": activityID,
			"status":      status,
		},
	}

	go func() {
		if err := s.push.SendNotificationToUser(ownerID, payload); err != nil {
			log.Printf("activity %s: decision notification failed: %v", activityID, err)
		}
	}()
}

// NotifyModerationQueue emails the moderation inbox about a newly
// submitted activity.
func (s *NotificationTriggerService) NotifyModerationQueue(activityID string, ownerID string, title string) {
	if s.email == nil {
		return
	}

	go func() {
		if err := s.email.SendModerationNotice(activityID, ownerID, title); err != nil {
			log.Printf("activity %s: moderation notice failed: %v", activityID, err)
		}
	}()
}
