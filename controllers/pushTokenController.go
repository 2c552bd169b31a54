package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GatherMatch/models"
	"github.com/GatherMatch/services"
)

type PushTokenController struct {
	push *services.PushNotificationService
}

func NewPushTokenController(push *services.PushNotificationService) *PushTokenController {
	return &PushTokenController{push: push}
}

// StorePushToken registers a device token so match and review events can
// reach the user.
func (pc *PushTokenController) StorePushToken(c *gin.Context) {
	var req models.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	userID := req.User_ID
	if userID == "" {
		userID = c.GetString("currentUserID")
	}

	if err := pc.push.RegisterToken(c, userID, req.PushToken, req.Platform); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store push token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token stored"})
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
