package models

import "time"

const (
	AdminDecisionApprove = "approve"
	AdminDecisionReject  = "reject"
)

type AdminActivityAction struct {
	Action_ID   int       `json:"action_id" goqu:"skipinsert"`
	Activity_ID string    `json:"activity_id"`
	Reviewer_ID string    `json:"reviewer_id"`
	Decision    string    `json:"decision"`
	Comment     string    `json:"comment"`
	Operated_At time.Time `json:"operated_at"`
}

type PendingActivityItem struct {
	Activity_ID  string `json:"activity_id"`
	Owner_ID     string `json:"owner_id"`
	Submitted_At string `json:"submitted_at"`
	Status       string `json:"status"`
}

type PendingActivitiesResponse struct {
	Pending_Activities []PendingActivityItem `json:"pending_activities"`
}

type AdminActivityUpdateRequest struct {
	User_ID     string `json:"user_id"`
	Token       string `json:"token"`
	Activity_ID string `json:"activity_id" binding:"required"`
	Status      string `json:"status" binding:"required"`
	Reviewer_ID string `json:"reviewer_id" binding:"required"`
	Comment     string `json:"comment"`
}

type AdminActivityUpdateResponse struct {
	Activity_ID string `json:"activity_id"`
	New_Status  string `json:"new_status"`
	Reviewed_At string `json:"reviewed_at"`
}
