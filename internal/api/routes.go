package api

import (
	"net/http"

	"pulseai/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers into the router.
func SetupRoutes(
	router *gin.Engine,
	serviceKey string,
	planService service.PlanService,
	chatService service.ChatService,
	workoutService service.WorkoutService,
) {
	planHandler := NewPlanHandler(planService)
	chatHandler := NewChatHandler(chatService)
	workoutHandler := NewWorkoutHandler(workoutService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(ServiceKeyMiddleware(serviceKey))
	{
		apiV1.POST("/plans/generate", planHandler.GeneratePlan)
		apiV1.POST("/chat", chatHandler.Chat)

		apiV1.GET("/users/:userId/plan", workoutHandler.GetActivePlan)
		apiV1.GET("/users/:userId/workouts/today", workoutHandler.GetTodaysWorkouts)
		apiV1.PATCH("/workouts/:workoutId/complete", workoutHandler.SetCompleted)
	}
}
