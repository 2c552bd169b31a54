package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/GatherMatch/controllers"
	"github.com/GatherMatch/initializers"
	"github.com/GatherMatch/middlewares"
	"github.com/GatherMatch/services"
	"github.com/GatherMatch/stores"
)

func main() {
	initializers.LoadEnv()

	db := initializers.ConnectDB()
	defer initializers.CloseDB()

	pushService := services.NewPushNotificationService(db)
	emailService := services.NewEmailService()
	notifyService := services.NewNotificationTriggerService(pushService, emailService)

	activityStore := stores.NewActivityStore(db)
	matchStore := stores.NewMatchStore(db, services.NewStubRanker())
	adminStore := stores.NewAdminStore(db)

	activityController := controllers.NewActivityController(activityStore, services.NewTemplateGenerator(), notifyService)
	matchController := controllers.NewMatchController(matchStore, activityStore, notifyService)
	adminController := controllers.NewAdminController(adminStore, notifyService)
	pushTokenController := controllers.NewPushTokenController(pushService)

	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{

		// activity routes
		auth.POST("/api/activities/create", activityController.CreateActivity)
		auth.POST("/api/activities/manual-create", activityController.ManualCreateActivity)
		auth.POST("/api/activities/update", activityController.UpdateActivity)
		auth.GET("/api/activities/:activity_id/detail", activityController.GetActivityDetail)
		auth.POST("/api/activities/feedback", activityController.SubmitActivityFeedback)
		auth.GET("/api/activities/:activity_id/feedbacks", activityController.GetActivityFeedbacks)
		auth.GET("/api/activities/history", activityController.GetActivityHistory)

		// match routes
		auth.POST("/api/match/activities/:activity_id/match-candidates", matchController.MatchCandidates)
		auth.GET("/api/match/activities/:activity_id/records", matchController.GetMatchRecord)
		auth.POST("/api/match/activities/:activity_id/feedback", matchController.SubmitMatchFeedback)
		auth.GET("/api/match/status", matchController.GetMatchStatus)
		auth.POST("/api/match/update", matchController.UpdateMatchStatus)
		auth.POST("/api/match/notifications/action", matchController.MatchNotificationAction)

		// push token route
		auth.POST("/api/users/push-token", pushTokenController.StorePushToken)

		// admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.GET("/api/admin/activities/pending", adminController.GetPendingActivities)
			admin.POST("/api/admin/activities/update", adminController.UpdateActivityStatus)
		}
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}
