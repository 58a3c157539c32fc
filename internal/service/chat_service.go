package service

import (
	"context"
	"errors"
	"log"
	"time"

	"pulseai/coach-app/internal/ai"
	"pulseai/coach-app/internal/domain"
	"pulseai/coach-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context window for the chat prompt: workout history 7 days back,
// upcoming schedule 7 days forward, last 10 chat messages.
const (
	historyDaysBack    = 7
	upcomingDaysAhead  = 7
	chatHistoryLimit   = 10
	fallbackReplyOK    = "Done! I've updated your plan."
	fallbackReplyFail  = "Sorry, I couldn't complete that change."
	fallbackReplyBlank = "I'm not sure how to help with that. Could you rephrase?"
)

// ChatResult is a successful chat turn.
type ChatResult struct {
	Message       string
	ToolsExecuted []string
}

// ChatService handles one conversational turn: free text in, at most one
// plan mutation plus a natural-language reply out.
type ChatService interface {
	HandleMessage(ctx context.Context, userID, message string) (*ChatResult, error)
}

type chatService struct {
	profileRepo repository.ProfileRepository
	planRepo    repository.TrainingPlanRepository
	workoutRepo repository.WorkoutRepository
	chatRepo    repository.ChatMessageRepository
	model       ai.Client
	dispatcher  *toolDispatcher
	now         func() time.Time
}

// NewChatService creates a new instance of chatService.
func NewChatService(
	profileRepo repository.ProfileRepository,
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.WorkoutRepository,
	chatRepo repository.ChatMessageRepository,
	model ai.Client,
) ChatService {
	return &chatService{
		profileRepo: profileRepo,
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		chatRepo:    chatRepo,
		model:       model,
		dispatcher:  newToolDispatcher(workoutRepo),
		now:         time.Now,
	}
}

// turnState models one chat turn: the first model call either requests a
// tool or answers in plain text, and the turn ends once a reply exists.
type turnState int

const (
	stateAwaitingModel turnState = iota
	stateToolRequested
	stateTextOnly
	stateReplied
)

func (s turnState) String() string {
	switch s {
	case stateAwaitingModel:
		return "awaiting-model"
	case stateToolRequested:
		return "tool-requested"
	case stateTextOnly:
		return "text-only"
	case stateReplied:
		return "replied"
	}
	return "unknown"
}

// HandleMessage runs one chat turn end to end. The user message is logged
// before anything can fail so the conversation record stays complete even
// on error turns.
func (s *chatService) HandleMessage(ctx context.Context, userID, message string) (*ChatResult, error) {
	if userID == "" || message == "" {
		return nil, newError(CodeMissingParams, "userId and message are required")
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, newError(CodeUserNotFound, "user profile not found")
	}

	turnID := uuid.NewString()

	if _, err := s.chatRepo.Append(ctx, &domain.ChatMessage{
		UserID:  uid,
		Role:    domain.RoleUser,
		Content: message,
	}); err != nil {
		log.Printf("WARN: turn %s: failed to log user message: %v", turnID, err)
	}

	chatCtx, err := s.buildContext(ctx, uid)
	if err != nil {
		return nil, err
	}

	contents := make([]ai.Content, 0, len(chatCtx.history)+1)
	for _, msg := range chatCtx.history {
		role := "user"
		if msg.Role == domain.RoleAssistant {
			role = "model"
		}
		contents = append(contents, ai.Content{Role: role, Parts: []ai.Part{{Text: msg.Content}}})
	}
	contents = append(contents, ai.UserText(message))

	systemPrompt := buildChatSystemPrompt(chatCtx, s.now().UTC())

	state := stateAwaitingModel
	resp, err := s.model.GenerateContent(ctx, &ai.GenerateRequest{
		Contents:          contents,
		SystemInstruction: ai.SystemInstruction(systemPrompt),
		Tools:             []ai.Tool{{FunctionDeclarations: toolDeclarations()}},
		GenerationConfig:  &ai.GenerationConfig{MaxOutputTokens: 1024, Temperature: 0.7},
	})
	if err != nil {
		log.Printf("ERROR: turn %s: chat model call failed: %v", turnID, err)
		return nil, newError(CodeAIError, "AI service temporarily unavailable")
	}
	if len(resp.Candidates) == 0 {
		return nil, newError(CodeAIEmpty, "AI returned empty response")
	}

	functionCall := resp.FirstFunctionCall()
	if functionCall != nil {
		state = stateToolRequested
	} else {
		state = stateTextOnly
	}

	mode := state

	var reply string
	var toolsExecuted []string
	var toolCalls []domain.ToolCall
	var toolResults []domain.ToolResult

	switch state {
	case stateToolRequested:
		call := domain.ToolCall{Name: functionCall.Name, Args: functionCall.Args}
		result := s.dispatcher.Execute(ctx, call)
		log.Printf("turn %s: tool %s success=%t", turnID, result.Name, result.Success)

		toolCalls = append(toolCalls, call)
		toolResults = append(toolResults, result)
		toolsExecuted = append(toolsExecuted, call.Name)

		reply = s.confirmToolResult(ctx, contents, systemPrompt, functionCall, result)
	case stateTextOnly:
		reply = resp.FirstText()
		if reply == "" {
			reply = fallbackReplyBlank
		}
	}
	state = stateReplied

	if _, err := s.chatRepo.Append(ctx, &domain.ChatMessage{
		UserID:      uid,
		Role:        domain.RoleAssistant,
		Content:     reply,
		ToolCalls:   toolCalls,
		ToolResults: toolResults,
	}); err != nil {
		log.Printf("WARN: turn %s: failed to log assistant message: %v", turnID, err)
	}

	log.Printf("turn %s: %s via %s, tools=%d", turnID, state, mode, len(toolsExecuted))
	return &ChatResult{Message: reply, ToolsExecuted: toolsExecuted}, nil
}

// confirmToolResult asks the model to phrase a natural-language
// confirmation of the executed tool. If that follow-up fails for any
// reason the reply falls back to a template derived from the result.
func (s *chatService) confirmToolResult(ctx context.Context, contents []ai.Content, systemPrompt string, call *ai.FunctionCall, result domain.ToolResult) string {
	outcome := result.Result
	if !result.Success {
		outcome = result.Error
	}

	followUp := append(append([]ai.Content{}, contents...),
		ai.Content{Role: "model", Parts: []ai.Part{{FunctionCall: call}}},
		ai.Content{Role: "function", Parts: []ai.Part{{FunctionResponse: &ai.FunctionResponse{
			Name:     call.Name,
			Response: map[string]any{"result": outcome},
		}}}},
	)

	resp, err := s.model.GenerateContent(ctx, &ai.GenerateRequest{
		Contents:          followUp,
		SystemInstruction: ai.SystemInstruction(systemPrompt),
		GenerationConfig:  &ai.GenerationConfig{MaxOutputTokens: 512, Temperature: 0.7},
	})
	if err == nil {
		if text := resp.FirstText(); text != "" {
			return text
		}
	} else {
		log.Printf("WARN: tool confirmation call failed: %v", err)
	}

	if result.Success {
		return fallbackReplyOK
	}
	return fallbackReplyFail + " " + result.Error
}

// chatContext is the bounded window of state the assistant sees.
type chatContext struct {
	profile  *domain.Profile
	plan     *domain.TrainingPlan
	recent   []domain.Workout
	upcoming []domain.Workout
	history  []domain.ChatMessage
}

// buildContext loads profile, active plan, the surrounding workout window
// and recent chat history. Workout and history fetch errors degrade to an
// emptier prompt instead of failing the turn.
func (s *chatService) buildContext(ctx context.Context, uid primitive.ObjectID) (*chatContext, error) {
	profile, err := s.profileRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(CodeUserNotFound, "user profile not found")
		}
		log.Printf("ERROR: profile fetch failed for %s: %v", uid.Hex(), err)
		return nil, newError(CodeInternalError, "internal server error")
	}

	plan, err := s.planRepo.GetActiveByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(CodeNoPlan, "no active training plan found, complete onboarding first")
		}
		log.Printf("ERROR: active plan fetch failed for %s: %v", uid.Hex(), err)
		return nil, newError(CodeInternalError, "internal server error")
	}

	today := startOfDay(s.now().UTC())
	recent, err := s.workoutRepo.GetByPlanAndDateRange(ctx, plan.ID, today.AddDate(0, 0, -historyDaysBack), today)
	if err != nil {
		log.Printf("WARN: recent workout fetch failed: %v", err)
	}
	upcoming, err := s.workoutRepo.GetByPlanAndDateRange(ctx, plan.ID, today, today.AddDate(0, 0, upcomingDaysAhead+1))
	if err != nil {
		log.Printf("WARN: upcoming workout fetch failed: %v", err)
	}

	history, err := s.chatRepo.GetRecentByUserID(ctx, uid, chatHistoryLimit)
	if err != nil {
		log.Printf("WARN: chat history fetch failed: %v", err)
	}
	// Stored newest first; the prompt wants chronological order.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	return &chatContext{
		profile:  profile,
		plan:     plan,
		recent:   recent,
		upcoming: upcoming,
		history:  history,
	}, nil
}
