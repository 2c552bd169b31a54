package models

import "time"

type Rating struct {
	Rating_ID    string    `json:"rating_id"`
	Activity_ID  string    `json:"activity_id"`
	Rater_ID     string    `json:"rater_id"`
	Rating       float64   `json:"rating"`
	Comment      string    `json:"comment"`
	Submitted_At time.Time `json:"submitted_at"`
}

type ActivityFeedbackRequest struct {
	User_ID     string  `json:"user_id" binding:"required"`
	Token       string  `json:"token"`
	Activity_ID string  `json:"activity_id" binding:"required"`
	Rating      float64 `json:"rating"`
	Comment     string  `json:"comment"`
}

type ActivityFeedbackResponse struct {
	Activity_ID  string `json:"activity_id"`
	Rating_ID    string `json:"rating_id"`
	Status       string `json:"status"`
	Submitted_At string `json:"submitted_at"`
}

type FeedbackItem struct {
	Feedback_ID  string  `json:"feedback_id"`
	Rating       float64 `json:"rating"`
	Comment      string  `json:"comment"`
	Submitted_At string  `json:"submitted_at"`
}

type FeedbackListResponse struct {
	Activity_ID string         `json:"activity_id"`
	Feedbacks   []FeedbackItem `json:"feedbacks"`
}

const (
	HistoryRoleCreated = "created"
	HistoryRoleJoined  = "joined"
)

type ActivityHistoryItem struct {
	Activity_ID string `json:"activity_id"`
	Role        string `json:"role"`
	Timestamp   string `json:"timestamp"`
}

type ActivityHistoryResponse struct {
	User_ID string                `json:"user_id"`
	History []ActivityHistoryItem `json:"history"`
}
