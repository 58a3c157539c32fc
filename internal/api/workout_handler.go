package api

import (
	"errors"
	"net/http"
	"time"

	"pulseai/coach-app/internal/domain"
	"pulseai/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler exposes the dashboard read endpoints and the direct
// mark-complete mutation.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

type WorkoutResponse struct {
	ID            string                  `json:"id"`
	PlanID        string                  `json:"planId"`
	ScheduledDate string                  `json:"scheduledDate"`
	DayOffset     int                     `json:"dayOffset"`
	Title         string                  `json:"title"`
	ActivityType  string                  `json:"activityType"`
	Description   string                  `json:"description,omitempty"`
	Structure     domain.WorkoutStructure `json:"structure"`
	IsCompleted   bool                    `json:"isCompleted"`
}

type PlanDetailsResponse struct {
	ID        string            `json:"id"`
	PlanName  string            `json:"planName"`
	Goal      string            `json:"goal"`
	IsActive  bool              `json:"isActive"`
	StartDate string            `json:"startDate"`
	Workouts  []WorkoutResponse `json:"workouts"`
}

func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	return WorkoutResponse{
		ID:            w.ID.Hex(),
		PlanID:        w.PlanID.Hex(),
		ScheduledDate: w.ScheduledDate.Format(time.DateOnly),
		DayOffset:     w.DayOffset,
		Title:         w.Title,
		ActivityType:  string(w.ActivityType),
		Description:   w.Description,
		Structure:     w.Structure,
		IsCompleted:   w.IsCompleted,
	}
}

func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, 0, len(workouts))
	for i := range workouts {
		responses = append(responses, MapWorkoutToResponse(&workouts[i]))
	}
	return responses
}

// --- Handlers ---

// GetActivePlan handles GET /users/:userId/plan.
func (h *WorkoutHandler) GetActivePlan(c *gin.Context) {
	details, err := h.workoutService.GetActivePlan(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PlanDetailsResponse{
		ID:        details.Plan.ID.Hex(),
		PlanName:  details.Plan.PlanName,
		Goal:      details.Plan.Goal,
		IsActive:  details.Plan.IsActive,
		StartDate: details.Plan.StartDate.Format(time.DateOnly),
		Workouts:  MapWorkoutsToResponse(details.Workouts),
	})
}

// GetTodaysWorkouts handles GET /users/:userId/workouts/today.
func (h *WorkoutHandler) GetTodaysWorkouts(c *gin.Context) {
	workouts, err := h.workoutService.GetTodaysWorkouts(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

type SetCompletedRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// SetCompleted handles PATCH /workouts/:workoutId/complete.
func (h *WorkoutHandler) SetCompleted(c *gin.Context) {
	var req SetCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err := h.workoutService.SetWorkoutCompleted(c.Request.Context(), c.Param("workoutId"), *req.Completed)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update workout.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondServiceError maps coded service errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	var coded *service.Error
	if errors.As(err, &coded) {
		c.JSON(statusForCode(coded.Code), gin.H{"error": coded.Message, "code": coded.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": service.CodeInternalError})
}
