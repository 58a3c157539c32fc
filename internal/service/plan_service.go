package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pulseai/coach-app/internal/ai"
	"pulseai/coach-app/internal/coach"
	"pulseai/coach-app/internal/domain"
	"pulseai/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanService turns a user profile into a persisted, validated 8-week
// training plan.
type PlanService interface {
	Generate(ctx context.Context, userID string) (planID string, err error)
}

type planService struct {
	profileRepo repository.ProfileRepository
	planRepo    repository.TrainingPlanRepository
	workoutRepo repository.WorkoutRepository
	model       ai.Client
	repairer    *coach.Repairer
	now         func() time.Time
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	profileRepo repository.ProfileRepository,
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.WorkoutRepository,
	model ai.Client,
	repairer *coach.Repairer,
) PlanService {
	return &planService{
		profileRepo: profileRepo,
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		model:       model,
		repairer:    repairer,
		now:         time.Now,
	}
}

// Generate runs the full generation path: profile -> proposer -> repair ->
// materialize. Each failure maps to a stable code; nothing is persisted
// unless the whole plan can be.
func (s *planService) Generate(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", newError(CodeMissingUserID, "userId is required")
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", newError(CodeProfileNotFound, "user profile not found")
	}

	profile, err := s.profileRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", newError(CodeProfileNotFound, "user profile not found")
		}
		log.Printf("ERROR: profile fetch failed for %s: %v", userID, err)
		return "", newError(CodeDBError, "failed to load user profile")
	}

	startDate := startOfDay(s.now().UTC())

	resp, err := s.model.GenerateContent(ctx, &ai.GenerateRequest{
		Contents:          []ai.Content{ai.UserText(buildPlanUserPrompt(profile, startDate))},
		SystemInstruction: ai.SystemInstruction(buildPlanSystemPrompt(profile)),
		GenerationConfig: &ai.GenerationConfig{
			// Generous cap: 56 structured entries truncate easily otherwise.
			MaxOutputTokens: 65536,
			Temperature:     0.7,
		},
	})
	if err != nil {
		log.Printf("ERROR: plan proposer call failed: %v", err)
		return "", newError(CodeAIError, "AI service unavailable")
	}

	raw := resp.FirstText()
	if raw == "" {
		return "", newError(CodeAIEmpty, "AI returned empty response")
	}

	candidate, err := parseCandidateSchedule(raw)
	if err != nil {
		var coded *Error
		if errors.As(err, &coded) {
			return "", coded
		}
		return "", newError(CodeParseError, "failed to parse training plan")
	}

	repaired, report := s.repairer.Repair(candidate, coach.Constraints{
		RunsPerWeek:  profile.WeeklyRuns(),
		StrengthDays: profile.StrengthDays,
		StartDate:    startDate,
	})
	report.Log()

	return s.materialize(ctx, profile, repaired, startDate)
}

// parseCandidateSchedule strips markdown fences, requires a JSON array of
// exactly 56 elements, and decodes elements individually so a single
// malformed day degrades to an empty entry for the repairer instead of
// failing the whole plan.
func parseCandidateSchedule(raw string) ([]coach.Entry, error) {
	cleaned := cleanJSONResponse(raw)

	var rawEntries []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &rawEntries); err != nil {
		return nil, newError(CodeParseError, "failed to parse training plan")
	}
	if len(rawEntries) != coach.PlanDays {
		return nil, newError(CodeInvalidFormat, "invalid training plan format")
	}

	entries := make([]coach.Entry, coach.PlanDays)
	for i, rawEntry := range rawEntries {
		if err := json.Unmarshal(rawEntry, &entries[i]); err != nil {
			log.Printf("WARN: malformed schedule entry at index %d: %v", i, err)
			entries[i] = coach.Entry{}
		}
	}
	return entries, nil
}

// cleanJSONResponse removes the ```json fences models like to wrap
// arrays in.
func cleanJSONResponse(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// materialize persists one active plan plus its 56 workouts. If the bulk
// workout insert fails the plan record is deleted again so no orphaned
// active plan survives (compensating action, not a transaction).
func (s *planService) materialize(ctx context.Context, profile *domain.Profile, schedule []coach.Entry, startDate time.Time) (string, error) {
	goal := profile.GoalDescription()
	plan := &domain.TrainingPlan{
		UserID:    profile.ID,
		PlanName:  fmt.Sprintf("8-Week %s Plan", goal),
		Goal:      goal,
		IsActive:  true,
		StartDate: startDate,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		log.Printf("ERROR: training plan insert failed: %v", err)
		return "", newError(CodeDBError, "failed to save training plan")
	}

	workouts := make([]*domain.Workout, 0, len(schedule))
	for _, entry := range schedule {
		title := entry.Title
		if title == "" {
			title = "Workout"
		}
		workouts = append(workouts, &domain.Workout{
			PlanID:        planID,
			ScheduledDate: startDate.AddDate(0, 0, entry.DayOffset),
			DayOffset:     entry.DayOffset,
			Title:         title,
			ActivityType:  domain.NormalizeActivityType(entry.ActivityType),
			Description:   entry.Description,
			Structure:     entry.Structure,
			IsCompleted:   false,
		})
	}

	if err := s.workoutRepo.CreateMany(ctx, workouts); err != nil {
		log.Printf("ERROR: workout bulk insert failed, removing plan %s: %v", planID.Hex(), err)
		// A partial bulk insert leaves stray workouts behind; sweep them
		// before dropping the plan record.
		if delErr := s.workoutRepo.DeleteByPlanID(ctx, planID); delErr != nil {
			log.Printf("ERROR: failed to delete workouts of plan %s: %v", planID.Hex(), delErr)
		}
		if delErr := s.planRepo.Delete(ctx, planID); delErr != nil {
			log.Printf("ERROR: failed to delete orphaned plan %s: %v", planID.Hex(), delErr)
		}
		return "", newError(CodeDBError, "failed to save training plan")
	}

	log.Printf("created plan %s with %d workouts", planID.Hex(), len(workouts))
	return planID.Hex(), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
