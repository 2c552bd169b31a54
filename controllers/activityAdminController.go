package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GatherMatch/models"
	"github.com/GatherMatch/services"
	"github.com/GatherMatch/stores"
)

type AdminController struct {
	store  *stores.AdminStore
	notify *services.NotificationTriggerService
}

func NewAdminController(store *stores.AdminStore, notify *services.NotificationTriggerService) *AdminController {
	return &AdminController{store: store, notify: notify}
}

func (ac *AdminController) GetPendingActivities(c *gin.Context) {
	activities, err := ac.store.ListPending(c)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	pending := make([]models.PendingActivityItem, 0, len(activities))
	for _, a := range activities {
		pending = append(pending, models.PendingActivityItem{
			Activity_ID:  a.Activity_ID,
			Owner_ID:     a.Owner_ID,
			Submitted_At: a.Created_At.Format(time.RFC3339),
			Status:       a.Status,
		})
	}

	c.JSON(http.StatusOK, models.PendingActivitiesResponse{Pending_Activities: pending})
}

func (ac *AdminController) UpdateActivityStatus(c *gin.Context) {
	var req models.AdminActivityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	activity, err := ac.store.Decide(c, req.Activity_ID, req.Reviewer_ID, req.Status, req.Comment)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	ac.notify.NotifyOwnerOfDecision(activity.Owner_ID, activity.Activity_ID, activity.Status)

	c.JSON(http.StatusOK, models.AdminActivityUpdateResponse{
		Activity_ID: activity.Activity_ID,
		New_Status:  activity.Status,
		Reviewed_At: activity.Updated_At.Format(time.RFC3339),
	})
}
