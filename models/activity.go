package models

import (
	"strings"
	"time"
	"unicode"

	"github.com/lib/pq"
)

const (
	ActivityStatusDeciding      = "deciding"
	ActivityStatusPendingReview = "pending_review"
	ActivityStatusApproved      = "approved"
	ActivityStatusRejected      = "rejected"
	ActivityStatusActive        = "active"
	ActivityStatusCompleted     = "completed"
	ActivityStatusCancelled     = "cancelled"
)

// ValidActivityStatus reports whether s is one of the lifecycle statuses.
func ValidActivityStatus(s string) bool {
	switch s {
	case ActivityStatusDeciding, ActivityStatusPendingReview, ActivityStatusApproved,
		ActivityStatusRejected, ActivityStatusActive, ActivityStatusCompleted,
		ActivityStatusCancelled:
		return true
	}
	return false
}

type Activity struct {
	Activity_ID      string         `json:"activity_id"`
	Owner_ID         string         `json:"owner_id"`
	Participants     pq.StringArray `json:"participants"`
	Status           string         `json:"status"`
	Created_At       time.Time      `json:"created_at"`
	Updated_At       time.Time      `json:"updated_at"`
	Aggregate_Rating *float64       `json:"aggregate_rating"`
	Rating_IDs       pq.StringArray `json:"rating_ids"`
}

type ActivityContent struct {
	Content_ID            int            `json:"content_id" goqu:"skipinsert"`
	Activity_ID           string         `json:"activity_id"`
	Title                 string         `json:"title"`
	Description           string         `json:"description"`
	Start_Time            time.Time      `json:"start_time"`
	Duration              *float64       `json:"duration"`
	Theme                 string         `json:"theme"`
	Location              string         `json:"location"`
	Budget                int            `json:"budget"`
	Group_Size            int            `json:"group_size"`
	Recommended_Equipment pq.StringArray `json:"recommended_equipment"`
	Activity_Tags         pq.StringArray `json:"activity_tags"`
}

type ActivityInput struct {
	Prompt             string `json:"prompt"`
	Theme              string `json:"theme"`
	Location           string `json:"location"`
	Budget             string `json:"budget"`
	Duration           string `json:"duration"`
	Additional_Context string `json:"additional_context"`
	Status             string `json:"status"`
}

type ActivityCreateRequest struct {
	User_ID    string        `json:"user_id" binding:"required"`
	Token      string        `json:"token"`
	Session_ID string        `json:"session_id"`
	Input_Data ActivityInput `json:"input_data"`
}

type GeneratedActivity struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Start_Time            string   `json:"start_time"`
	Recommended_Equipment []string `json:"recommended_equipment"`
}

type ActivityCreateResponse struct {
	Activity_ID        string            `json:"activity_id"`
	Generated_Activity GeneratedActivity `json:"generated_activity"`
	Status             string            `json:"status"`
	Created_At         string            `json:"created_at"`
}

type ManualCreateRequirements struct {
	Group_Size    int      `json:"group_size"`
	Activity_Tags []string `json:"activity_tags"`
}

type ManualCreateRequest struct {
	User_ID      string                   `json:"user_id" binding:"required"`
	Token        string                   `json:"token"`
	Title        string                   `json:"title" binding:"required"`
	Description  string                   `json:"description"`
	Theme        string                   `json:"theme"`
	Location     string                   `json:"location"`
	Budget       int                      `json:"budget"`
	Start_Time   string                   `json:"start_time" binding:"required"`
	Requirements ManualCreateRequirements `json:"requirements"`
}

type ManualCreateResponse struct {
	Activity_ID string `json:"activity_id"`
	Status      string `json:"status"`
	Created_At  string `json:"created_at"`
}

type ActivityDetailRequirements struct {
	Group_Size            int      `json:"group_size"`
	Activity_Tags         []string `json:"activity_tags"`
	Recommended_Equipment []string `json:"recommended_equipment"`
}

type ActivityDetailResponse struct {
	Activity_ID  string                     `json:"activity_id"`
	Title        string                     `json:"title"`
	Description  string                     `json:"description"`
	Theme        string                     `json:"theme"`
	Location     string                     `json:"location"`
	Budget       int                        `json:"budget"`
	Start_Time   string                     `json:"start_time"`
	Duration     *float64                   `json:"duration"`
	Status       string                     `json:"status"`
	Requirements ActivityDetailRequirements `json:"requirements"`
	Participants []string                   `json:"participants"`
	Created_At   string                     `json:"created_at"`
	Last_Updated string                     `json:"last_updated"`
}

type ActivityUpdateRequirements struct {
	Group_Size    int      `json:"group_size"`
	Activity_Tags []string `json:"activity_tags"`
}

type ActivityUpdateRequest struct {
	User_ID        string                      `json:"user_id"`
	Token          string                      `json:"token"`
	Activity_ID    string                      `json:"activity_id" binding:"required"`
	Activity_Title *string                     `json:"activity_title"`
	Description    *string                     `json:"description"`
	Theme          *string                     `json:"theme"`
	Location       *string                     `json:"location"`
	Budget         *int                        `json:"budget"`
	Start_Time     *string                     `json:"start_time"`
	Duration       *float64                    `json:"duration"`
	Requirements   *ActivityUpdateRequirements `json:"requirements"`
	Status         *string                     `json:"status"`
}

type ActivityUpdateResponse struct {
	Activity_ID string `json:"activity_id"`
	Feedback    string `json:"feedback"`
	Updated_At  string `json:"updated_at"`
}

// ParseBudget extracts a non-negative integer amount from free-form budget
// text such as "500" or "around $500". An input with no digits is invalid.
func ParseBudget(raw string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return 0, false
	}
	amount := 0
	for _, r := range digits {
		amount = amount*10 + int(r-'0')
		if amount > 1<<31-1 {
			return 0, false
		}
	}
	return amount, true
}
