package service

import (
	"context"
	"testing"
	"time"

	"pulseai/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type workoutFixture struct {
	planRepo    *fakePlanRepo
	workoutRepo *fakeWorkoutRepo
	svc         *workoutService
	userID      primitive.ObjectID
	planID      primitive.ObjectID
}

var workoutTestNow = time.Date(2025, 9, 10, 14, 0, 0, 0, time.UTC)

func newWorkoutFixture(t *testing.T) *workoutFixture {
	t.Helper()
	f := &workoutFixture{
		planRepo:    newFakePlanRepo(),
		workoutRepo: newFakeWorkoutRepo(),
		userID:      primitive.NewObjectID(),
	}
	planID, err := f.planRepo.Create(context.Background(), &domain.TrainingPlan{
		UserID:    f.userID,
		PlanName:  "8-Week habit Plan",
		IsActive:  true,
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	f.planID = planID

	f.svc = NewWorkoutService(f.planRepo, f.workoutRepo).(*workoutService)
	f.svc.now = func() time.Time { return workoutTestNow }
	return f
}

func TestGetActivePlanOrdersBySchedule(t *testing.T) {
	f := newWorkoutFixture(t)
	// Inserted out of order; the repository sorts by date.
	f.workoutRepo.add(&domain.Workout{PlanID: f.planID, DayOffset: 2, Title: "Tempo Run",
		ScheduledDate: time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)})
	f.workoutRepo.add(&domain.Workout{PlanID: f.planID, DayOffset: 0, Title: "Easy Run",
		ScheduledDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)})

	details, err := f.svc.GetActivePlan(context.Background(), f.userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, f.planID, details.Plan.ID)
	require.Len(t, details.Workouts, 2)
	assert.Equal(t, "Easy Run", details.Workouts[0].Title)
	assert.Equal(t, "Tempo Run", details.Workouts[1].Title)
}

func TestGetActivePlanErrors(t *testing.T) {
	f := newWorkoutFixture(t)

	_, err := f.svc.GetActivePlan(context.Background(), "")
	assertCode(t, err, CodeMissingUserID)

	_, err = f.svc.GetActivePlan(context.Background(), "not-hex")
	assertCode(t, err, CodeUserNotFound)

	_, err = f.svc.GetActivePlan(context.Background(), primitive.NewObjectID().Hex())
	assertCode(t, err, CodeNoPlan)
}

func TestGetTodaysWorkouts(t *testing.T) {
	f := newWorkoutFixture(t)
	today := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	f.workoutRepo.add(&domain.Workout{PlanID: f.planID, Title: "Yesterday", ScheduledDate: today.AddDate(0, 0, -1)})
	f.workoutRepo.add(&domain.Workout{PlanID: f.planID, Title: "Today", ScheduledDate: today})
	f.workoutRepo.add(&domain.Workout{PlanID: f.planID, Title: "Tomorrow", ScheduledDate: today.AddDate(0, 0, 1)})

	workouts, err := f.svc.GetTodaysWorkouts(context.Background(), f.userID.Hex())
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, "Today", workouts[0].Title)
}

func TestSetWorkoutCompleted(t *testing.T) {
	f := newWorkoutFixture(t)
	id := f.workoutRepo.add(&domain.Workout{PlanID: f.planID, Title: "Easy Run"})

	require.NoError(t, f.svc.SetWorkoutCompleted(context.Background(), id.Hex(), true))
	w, _ := f.workoutRepo.GetByID(context.Background(), id)
	assert.True(t, w.IsCompleted)

	require.NoError(t, f.svc.SetWorkoutCompleted(context.Background(), id.Hex(), false))
	w, _ = f.workoutRepo.GetByID(context.Background(), id)
	assert.False(t, w.IsCompleted)

	err := f.svc.SetWorkoutCompleted(context.Background(), primitive.NewObjectID().Hex(), true)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	err = f.svc.SetWorkoutCompleted(context.Background(), "bad-id", true)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}
