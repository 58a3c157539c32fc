package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingPlan is one generated 8-week plan. At most one plan per user is
// active at a time; the generator always creates an active plan and plan
// resets happen outside this service.
type TrainingPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	PlanName  string             `bson:"planName" json:"planName"` // e.g. "8-Week marathon Plan"
	Goal      string             `bson:"goal" json:"goal"`         // goal snapshot at generation time
	IsActive  bool               `bson:"isActive" json:"isActive"`
	StartDate time.Time          `bson:"startDate" json:"startDate"` // day 0 of the schedule, UTC midnight
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
