package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/GatherMatch/models"
	"github.com/GatherMatch/services"
	"github.com/GatherMatch/stores"
)

type ActivityController struct {
	store     *stores.ActivityStore
	generator services.ContentGenerator
	notify    *services.NotificationTriggerService
}

func NewActivityController(store *stores.ActivityStore, generator services.ContentGenerator, notify *services.NotificationTriggerService) *ActivityController {
	return &ActivityController{store: store, generator: generator, notify: notify}
}

func (ac *ActivityController) CreateActivity(c *gin.Context) {
	var req models.ActivityCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	budget := 0
	if req.Input_Data.Budget != "" {
		parsed, ok := models.ParseBudget(req.Input_Data.Budget)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "budget does not resolve to a non-negative amount"})
			return
		}
		budget = parsed
	}

	generated, err := ac.generator.Generate(req.Input_Data)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate activity content", "details": err.Error()})
		return
	}

	content := models.ActivityContent{
		Title:                 generated.Title,
		Description:           generated.Description,
		Start_Time:            generated.StartTime,
		Theme:                 req.Input_Data.Theme,
		Location:              req.Input_Data.Location,
		Budget:                budget,
		Group_Size:            1,
		Recommended_Equipment: pq.StringArray(generated.RecommendedEquipment),
		Activity_Tags:         pq.StringArray{req.Input_Data.Theme},
	}

	activity, err := ac.store.Create(c, req.User_ID, req.Input_Data.Status, content)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if activity.Status == models.ActivityStatusPendingReview {
		ac.notify.NotifyModerationQueue(activity.Activity_ID, activity.Owner_ID, content.Title)
	}

	c.JSON(http.StatusOK, models.ActivityCreateResponse{
		Activity_ID: activity.Activity_ID,
		Generated_Activity: models.GeneratedActivity{
			Title:                 content.Title,
			Description:           content.Description,
			Start_Time:            content.Start_Time.Format(time.RFC3339),
			Recommended_Equipment: generated.RecommendedEquipment,
		},
		Status:     "created",
		Created_At: activity.Created_At.Format(time.RFC3339),
	})
}

func (ac *ActivityController) ManualCreateActivity(c *gin.Context) {
	var req models.ManualCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start_Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time is not a valid RFC 3339 timestamp", "details": err.Error()})
		return
	}

	content := models.ActivityContent{
		Title:         req.Title,
		Description:   req.Description,
		Start_Time:    start,
		Theme:         req.Theme,
		Location:      req.Location,
		Budget:        req.Budget,
		Group_Size:    req.Requirements.Group_Size,
		Activity_Tags: pq.StringArray(req.Requirements.Activity_Tags),
	}

	activity, err := ac.store.Create(c, req.User_ID, models.ActivityStatusDeciding, content)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ManualCreateResponse{
		Activity_ID: activity.Activity_ID,
		Status:      activity.Status,
		Created_At:  activity.Created_At.Format(time.RFC3339),
	})
}

func (ac *ActivityController) UpdateActivity(c *gin.Context) {
	var req models.ActivityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	activity, err := ac.store.Update(c, req)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if req.Status != nil && *req.Status == models.ActivityStatusPendingReview {
		ac.notify.NotifyModerationQueue(activity.Activity_ID, activity.Owner_ID, "")
	}

	c.JSON(http.StatusOK, models.ActivityUpdateResponse{
		Activity_ID: activity.Activity_ID,
		Feedback:    "Activity updated",
		Updated_At:  activity.Updated_At.Format(time.RFC3339),
	})
}

func (ac *ActivityController) GetActivityDetail(c *gin.Context) {
	activityID := c.Param("activity_id")

	activity, content, err := ac.store.GetDetail(c, activityID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ActivityDetailResponse{
		Activity_ID: activity.Activity_ID,
		Title:       content.Title,
		Description: content.Description,
		Theme:       content.Theme,
		Location:    content.Location,
		Budget:      content.Budget,
		Start_Time:  content.Start_Time.Format(time.RFC3339),
		Duration:    content.Duration,
		Status:      activity.Status,
		Requirements: models.ActivityDetailRequirements{
			Group_Size:            content.Group_Size,
			Activity_Tags:         content.Activity_Tags,
			Recommended_Equipment: content.Recommended_Equipment,
		},
		Participants: activity.Participants,
		Created_At:   activity.Created_At.Format(time.RFC3339),
		Last_Updated: activity.Updated_At.Format(time.RFC3339),
	})
}

func (ac *ActivityController) SubmitActivityFeedback(c *gin.Context) {
	var req models.ActivityFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	rating, err := ac.store.SubmitRating(c, req.Activity_ID, req.User_ID, req.Rating, req.Comment)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ActivityFeedbackResponse{
		Activity_ID:  rating.Activity_ID,
		Rating_ID:    rating.Rating_ID,
		Status:       "submitted",
		Submitted_At: rating.Submitted_At.Format(time.RFC3339),
	})
}

func (ac *ActivityController) GetActivityFeedbacks(c *gin.Context) {
	activityID := c.Param("activity_id")

	ratings, err := ac.store.ListFeedback(c, activityID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	feedbacks := make([]models.FeedbackItem, 0, len(ratings))
	for _, r := range ratings {
		feedbacks = append(feedbacks, models.FeedbackItem{
			Feedback_ID:  r.Rating_ID,
			Rating:       r.Rating,
			Comment:      r.Comment,
			Submitted_At: r.Submitted_At.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, models.FeedbackListResponse{
		Activity_ID: activityID,
		Feedbacks:   feedbacks,
	})
}

func (ac *ActivityController) GetActivityHistory(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = c.GetString("currentUserID")
	}
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	history, err := ac.store.HistoryFor(c, userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ActivityHistoryResponse{
		User_ID: userID,
		History: history,
	})
}
