package repository

import (
	"context"
	"time"

	"pulseai/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ProfileRepository defines the interface for interacting with user profiles.
// Profiles are written during onboarding (outside this service); this core
// only reads them.
type ProfileRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error)
}

// TrainingPlanRepository defines the interface for interacting with training plan data.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	CreateMany(ctx context.Context, workouts []*domain.Workout) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Workout, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Workout, error)
	// GetByPlanAndDateRange returns workouts with from <= scheduledDate < to,
	// ordered by date.
	GetByPlanAndDateRange(ctx context.Context, planID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, update domain.WorkoutUpdate) error
	// UpdateSchedule sets both scheduledDate and dayOffset (swap semantics).
	UpdateSchedule(ctx context.Context, id primitive.ObjectID, scheduledDate time.Time, dayOffset int) error
	// UpdateScheduledDate moves a workout to a new date. The dayOffset is
	// deliberately left untouched; ordering queries sort by scheduledDate.
	UpdateScheduledDate(ctx context.Context, id primitive.ObjectID, scheduledDate time.Time) error
	SetCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error
}

// ChatMessageRepository defines the interface for the append-only chat log.
type ChatMessageRepository interface {
	Append(ctx context.Context, msg *domain.ChatMessage) (primitive.ObjectID, error)
	// GetRecentByUserID returns up to limit messages, newest first.
	GetRecentByUserID(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.ChatMessage, error)
}
