package api

import (
	"errors"
	"net/http"

	"pulseai/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler exposes the plan generation entrypoint.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type GeneratePlanRequest struct {
	UserID string `json:"userId"`
}

// GeneratePlan handles POST /plans/generate. Body: {userId}. Responds
// {success, planId} or {error, code}.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required", "code": service.CodeMissingUserID})
		return
	}

	planID, err := h.planService.Generate(c.Request.Context(), req.UserID)
	if err != nil {
		var coded *service.Error
		if errors.As(err, &coded) {
			c.JSON(statusForCode(coded.Code), gin.H{"error": coded.Message, "code": coded.Code})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": service.CodeInternalError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "planId": planID})
}

// statusForCode maps service error codes onto HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case service.CodeMissingUserID, service.CodeMissingParams:
		return http.StatusBadRequest
	case service.CodeProfileNotFound, service.CodeUserNotFound, service.CodeNoPlan:
		return http.StatusNotFound
	case service.CodeAIError, service.CodeAIEmpty:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
