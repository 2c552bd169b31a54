package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GatherMatch/models"
	"github.com/GatherMatch/services"
	"github.com/GatherMatch/stores"
)

type MatchController struct {
	store      *stores.MatchStore
	activities *stores.ActivityStore
	notify     *services.NotificationTriggerService
}

func NewMatchController(store *stores.MatchStore, activities *stores.ActivityStore, notify *services.NotificationTriggerService) *MatchController {
	return &MatchController{store: store, activities: activities, notify: notify}
}

func (mc *MatchController) MatchCandidates(c *gin.Context) {
	activityID := c.Param("activity_id")

	var req models.MatchCandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	match, candidates, err := mc.store.Initiate(c, activityID, req.Criteria)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	mc.notify.NotifyCandidatesProposed(match.Match_ID, activityID, match.Pending)

	c.JSON(http.StatusOK, models.MatchCandidatesResponse{
		Activity_ID:        activityID,
		Match_ID:           match.Match_ID,
		Matched_Candidates: candidates,
		User_Pending:       match.Pending,
		User_Accepted:      match.Accepted,
		User_Rejected:      match.Rejected,
		Matched_At:         match.Updated_At.Format(time.RFC3339),
		Status:             match.Status,
	})
}

func (mc *MatchController) GetMatchRecord(c *gin.Context) {
	activityID := c.Param("activity_id")

	match, err := mc.store.CurrentFor(c, activityID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	// Scores are not persisted with the match row; the record view reports
	// membership only.
	candidates := make([]models.MatchedCandidate, 0, len(match.Matched_Candidates))
	for _, uid := range match.Matched_Candidates {
		candidates = append(candidates, models.MatchedCandidate{User_ID: uid})
	}

	c.JSON(http.StatusOK, models.MatchRecordQueryResponse{
		Activity_ID:        activityID,
		Match_Record_ID:    match.Match_ID,
		Matched_Candidates: candidates,
		User_Pending:       match.Pending,
		User_Accepted:      match.Accepted,
		User_Rejected:      match.Rejected,
		Matched_At:         match.Updated_At.Format(time.RFC3339),
		Status:             match.Status,
	})
}

func (mc *MatchController) SubmitMatchFeedback(c *gin.Context) {
	activityID := c.Param("activity_id")

	var req models.MatchFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := mc.store.RecordFeedback(c, req.Match_ID, req.User_ID, req.Rating); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MatchFeedbackResponse{
		Activity_ID: activityID,
		Message:     "OK",
	})
}

func (mc *MatchController) GetMatchStatus(c *gin.Context) {
	activityID := c.Query("activity_id")
	userID := c.Query("user_id")
	if activityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity_id is required"})
		return
	}

	match, err := mc.store.CurrentFor(c, activityID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MatchStatusResponse{
		Activity_ID:              activityID,
		User_ID:                  userID,
		Matching_Status:          match.Status,
		Current_Candidates_Count: len(match.Matched_Candidates),
	})
}

func (mc *MatchController) UpdateMatchStatus(c *gin.Context) {
	var req models.MatchUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	match, err := mc.store.UpdateStatus(c, req.Activity_ID, req.Action)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MatchUpdateResponse{
		Activity_ID: req.Activity_ID,
		Status:      match.Status,
		Timestamp:   match.Updated_At.Format(time.RFC3339),
	})
}

func (mc *MatchController) MatchNotificationAction(c *gin.Context) {
	var req models.MatchNotificationActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	match, err := mc.store.Respond(c, req.Match_ID, req.User_ID, req.Response)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if activity, _, detailErr := mc.activities.GetDetail(c, match.Activity_ID); detailErr == nil {
		mc.notify.NotifyOwnerOfResponse(activity.Owner_ID, match.Match_ID, req.User_ID, req.Response)
	}

	c.JSON(http.StatusOK, models.MatchNotificationActionResponse{
		Match_ID: match.Match_ID,
		Message:  "OK",
	})
}
