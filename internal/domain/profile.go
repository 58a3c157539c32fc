package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal is the training goal selected during onboarding.
type Goal string

const (
	GoalMarathon Goal = "marathon"
	Goal5K       Goal = "5k"
	GoalHabit    Goal = "habit"
	GoalCustom   Goal = "custom"
)

// Profile holds the onboarding answers a plan is generated from.
// RunsPerWeek + len(StrengthDays) may exceed 7; the schedule repairer
// tolerates that and fits as many runs as the week allows.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name,omitempty" json:"name,omitempty"`
	Goal           Goal               `bson:"goal" json:"goal"`
	CustomGoalText string             `bson:"customGoalText,omitempty" json:"customGoalText,omitempty"`
	RunsPerWeek    int                `bson:"runsPerWeek" json:"runsPerWeek"`       // 2-7
	StrengthDays   []string           `bson:"strengthDays" json:"strengthDays"`     // weekday names, lowercase
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WeeklyRuns returns the runs to schedule per week, defaulting to 3 when
// onboarding left the field unset. Prompts and the schedule repairer must
// agree on this number, so the default lives here.
func (p *Profile) WeeklyRuns() int {
	if p.RunsPerWeek == 0 {
		return 3
	}
	return p.RunsPerWeek
}

// GoalDescription returns the human-readable goal used in prompts and
// plan names. A custom goal falls back to its free-text elaboration.
func (p *Profile) GoalDescription() string {
	if p.Goal == GoalCustom && p.CustomGoalText != "" {
		return p.CustomGoalText
	}
	if p.Goal == "" {
		return "general fitness"
	}
	return string(p.Goal)
}
