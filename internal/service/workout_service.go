package service

import (
	"context"
	"errors"
	"log"
	"time"

	"pulseai/coach-app/internal/domain"
	"pulseai/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound = errors.New("workout not found")
)

// PlanDetails bundles the active plan with its full schedule.
type PlanDetails struct {
	Plan     domain.TrainingPlan
	Workouts []domain.Workout
}

// WorkoutService covers the read side of the dashboard plus the direct
// mark-complete mutation.
type WorkoutService interface {
	GetActivePlan(ctx context.Context, userID string) (*PlanDetails, error)
	GetTodaysWorkouts(ctx context.Context, userID string) ([]domain.Workout, error)
	SetWorkoutCompleted(ctx context.Context, workoutID string, completed bool) error
}

type workoutService struct {
	planRepo    repository.TrainingPlanRepository
	workoutRepo repository.WorkoutRepository
	now         func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.WorkoutRepository,
) WorkoutService {
	return &workoutService{
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		now:         time.Now,
	}
}

// GetActivePlan returns the user's active plan and its workouts in
// calendar order.
func (s *workoutService) GetActivePlan(ctx context.Context, userID string) (*PlanDetails, error) {
	plan, err := s.activePlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	workouts, err := s.workoutRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		log.Printf("ERROR: workout fetch failed for plan %s: %v", plan.ID.Hex(), err)
		return nil, newError(CodeDBError, "failed to load workouts")
	}

	return &PlanDetails{Plan: *plan, Workouts: workouts}, nil
}

// GetTodaysWorkouts returns the workouts scheduled for the current day.
func (s *workoutService) GetTodaysWorkouts(ctx context.Context, userID string) ([]domain.Workout, error) {
	plan, err := s.activePlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := startOfDay(s.now().UTC())
	workouts, err := s.workoutRepo.GetByPlanAndDateRange(ctx, plan.ID, today, today.AddDate(0, 0, 1))
	if err != nil {
		log.Printf("ERROR: today's workout fetch failed for plan %s: %v", plan.ID.Hex(), err)
		return nil, newError(CodeDBError, "failed to load workouts")
	}
	return workouts, nil
}

// SetWorkoutCompleted flips a workout's completion flag.
func (s *workoutService) SetWorkoutCompleted(ctx context.Context, workoutID string, completed bool) error {
	id, err := primitive.ObjectIDFromHex(workoutID)
	if err != nil {
		return ErrWorkoutNotFound
	}
	if err := s.workoutRepo.SetCompleted(ctx, id, completed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

func (s *workoutService) activePlan(ctx context.Context, userID string) (*domain.TrainingPlan, error) {
	if userID == "" {
		return nil, newError(CodeMissingUserID, "userId is required")
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, newError(CodeUserNotFound, "user not found")
	}

	plan, err := s.planRepo.GetActiveByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(CodeNoPlan, "no active training plan found")
		}
		log.Printf("ERROR: active plan fetch failed for %s: %v", userID, err)
		return nil, newError(CodeDBError, "failed to load training plan")
	}
	return plan, nil
}
