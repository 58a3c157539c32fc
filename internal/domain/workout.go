package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType is the canonical workout classification. The store only
// ever sees these three values; free-text model output is normalized
// through NormalizeActivityType before persistence.
type ActivityType string

const (
	ActivityRun      ActivityType = "Run"
	ActivityStrength ActivityType = "Strength"
	ActivityRest     ActivityType = "Rest"
)

// NormalizeActivityType maps free-text model output onto the canonical
// activity types. Unrecognized values become Rest rather than failing.
func NormalizeActivityType(raw string) ActivityType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "run", "running":
		return ActivityRun
	case "strength", "cross-training", "cross training":
		return ActivityStrength
	case "rest", "recovery", "off":
		return ActivityRest
	default:
		return ActivityRest
	}
}

// WorkoutStructure is the per-activity payload. Which fields are set
// depends on the activity type: runs use distance/duration/pace, strength
// uses duration/split/exercises/sets/reps/rest, rest days carry only
// instructions.
type WorkoutStructure struct {
	Distance     string   `bson:"distance,omitempty" json:"distance,omitempty"` // e.g. "3 mi"
	Duration     string   `bson:"duration,omitempty" json:"duration,omitempty"` // e.g. "30 min"
	Pace         string   `bson:"pace,omitempty" json:"pace,omitempty"`         // easy | moderate | hard
	Split        string   `bson:"split,omitempty" json:"split,omitempty"`       // Lower Body | Upper Body | Full Body
	Exercises    []string `bson:"exercises,omitempty" json:"exercises,omitempty"`
	Sets         int      `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps         string   `bson:"reps,omitempty" json:"reps,omitempty"`
	Rest         string   `bson:"rest,omitempty" json:"rest,omitempty"`
	Instructions string   `bson:"instructions,omitempty" json:"instructions,omitempty"`
}

// Workout is a single scheduled day within a TrainingPlan.
type Workout struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID        primitive.ObjectID `bson:"planId" json:"planId"`
	ScheduledDate time.Time          `bson:"scheduledDate" json:"scheduledDate"`
	DayOffset     int                `bson:"dayOffset" json:"dayOffset"` // 0-based from plan start, swap/order key
	Title         string             `bson:"title" json:"title"`
	ActivityType  ActivityType       `bson:"activityType" json:"activityType"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Structure     WorkoutStructure   `bson:"structure" json:"structure"`
	IsCompleted   bool               `bson:"isCompleted" json:"isCompleted"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutUpdate is a partial update; nil fields are left unchanged.
type WorkoutUpdate struct {
	ActivityType *ActivityType
	Title        *string
	Description  *string
	Structure    *WorkoutStructure
}
