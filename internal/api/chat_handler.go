package api

import (
	"errors"
	"net/http"

	"pulseai/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the coach chat entrypoint.
type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type ChatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// Chat handles POST /chat. Body: {userId, message}. Responds
// {success, message, toolsExecuted?} or {success:false, error, code}.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "userId and message are required",
			"code":    service.CodeMissingParams,
		})
		return
	}

	result, err := h.chatService.HandleMessage(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		var coded *service.Error
		if errors.As(err, &coded) {
			c.JSON(statusForCode(coded.Code), gin.H{"success": false, "error": coded.Message, "code": coded.Code})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "internal server error",
			"code":    service.CodeInternalError,
		})
		return
	}

	resp := gin.H{"success": true, "message": result.Message}
	if len(result.ToolsExecuted) > 0 {
		resp["toolsExecuted"] = result.ToolsExecuted
	}
	c.JSON(http.StatusOK, resp)
}
