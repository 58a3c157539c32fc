package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"pulseai/coach-app/internal/ai"
	"pulseai/coach-app/internal/domain"
	"pulseai/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes for service tests. They honor the same
// sentinel errors as the mongo implementations.

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[primitive.ObjectID]*domain.Profile)}
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakePlanRepo struct {
	plans      map[primitive.ObjectID]*domain.TrainingPlan
	deleted    []primitive.ObjectID
	failCreate bool
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.TrainingPlan)}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	if r.failCreate {
		return primitive.NilObjectID, errors.New("insert failed")
	}
	id := primitive.NewObjectID()
	plan.ID = id
	cp := *plan
	r.plans[id] = &cp
	return id, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlanRepo) GetActiveByUserID(_ context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	for _, p := range r.plans {
		if p.UserID == userID && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrDeleteFailed
	}
	delete(r.plans, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeWorkoutRepo struct {
	workouts       map[primitive.ObjectID]*domain.Workout
	order          []primitive.ObjectID
	failCreateMany bool
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.Workout)}
}

func (r *fakeWorkoutRepo) add(w *domain.Workout) primitive.ObjectID {
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	cp := *w
	r.workouts[w.ID] = &cp
	r.order = append(r.order, w.ID)
	return w.ID
}

func (r *fakeWorkoutRepo) CreateMany(_ context.Context, workouts []*domain.Workout) error {
	if r.failCreateMany {
		// Simulate a partial bulk insert: half the documents land before
		// the failure.
		for _, w := range workouts[:len(workouts)/2] {
			r.add(w)
		}
		return errors.New("bulk insert failed")
	}
	for _, w := range workouts {
		r.add(w)
	}
	return nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	w, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWorkoutRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, id := range ids {
		if w, ok := r.workouts[id]; ok {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, id := range r.order {
		if w, ok := r.workouts[id]; ok && w.PlanID == planID {
			out = append(out, *w)
		}
	}
	sortWorkouts(out)
	return out, nil
}

func (r *fakeWorkoutRepo) GetByPlanAndDateRange(_ context.Context, planID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, id := range r.order {
		w, ok := r.workouts[id]
		if ok && w.PlanID == planID && !w.ScheduledDate.Before(from) && w.ScheduledDate.Before(to) {
			out = append(out, *w)
		}
	}
	sortWorkouts(out)
	return out, nil
}

func (r *fakeWorkoutRepo) UpdateFields(_ context.Context, id primitive.ObjectID, update domain.WorkoutUpdate) error {
	w, ok := r.workouts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if update.ActivityType != nil {
		w.ActivityType = *update.ActivityType
	}
	if update.Title != nil {
		w.Title = *update.Title
	}
	if update.Description != nil {
		w.Description = *update.Description
	}
	if update.Structure != nil {
		w.Structure = *update.Structure
	}
	return nil
}

func (r *fakeWorkoutRepo) UpdateSchedule(_ context.Context, id primitive.ObjectID, scheduledDate time.Time, dayOffset int) error {
	w, ok := r.workouts[id]
	if !ok {
		return repository.ErrNotFound
	}
	w.ScheduledDate = scheduledDate
	w.DayOffset = dayOffset
	return nil
}

func (r *fakeWorkoutRepo) UpdateScheduledDate(_ context.Context, id primitive.ObjectID, scheduledDate time.Time) error {
	w, ok := r.workouts[id]
	if !ok {
		return repository.ErrNotFound
	}
	w.ScheduledDate = scheduledDate
	return nil
}

func (r *fakeWorkoutRepo) SetCompleted(_ context.Context, id primitive.ObjectID, completed bool) error {
	w, ok := r.workouts[id]
	if !ok {
		return repository.ErrNotFound
	}
	w.IsCompleted = completed
	return nil
}

func (r *fakeWorkoutRepo) DeleteByPlanID(_ context.Context, planID primitive.ObjectID) error {
	for id, w := range r.workouts {
		if w.PlanID == planID {
			delete(r.workouts, id)
		}
	}
	return nil
}

func sortWorkouts(workouts []domain.Workout) {
	sort.SliceStable(workouts, func(i, j int) bool {
		if !workouts[i].ScheduledDate.Equal(workouts[j].ScheduledDate) {
			return workouts[i].ScheduledDate.Before(workouts[j].ScheduledDate)
		}
		return workouts[i].DayOffset < workouts[j].DayOffset
	})
}

type fakeChatRepo struct {
	messages   []domain.ChatMessage
	failAppend bool
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{}
}

func (r *fakeChatRepo) Append(_ context.Context, msg *domain.ChatMessage) (primitive.ObjectID, error) {
	if r.failAppend {
		return primitive.NilObjectID, errors.New("append failed")
	}
	msg.ID = primitive.NewObjectID()
	r.messages = append(r.messages, *msg)
	return msg.ID, nil
}

func (r *fakeChatRepo) GetRecentByUserID(_ context.Context, userID primitive.ObjectID, limit int) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	for i := len(r.messages) - 1; i >= 0 && len(out) < limit; i-- {
		if r.messages[i].UserID == userID {
			out = append(out, r.messages[i])
		}
	}
	return out, nil
}

// fakeAI replays a scripted sequence of model responses. Each call to
// GenerateContent consumes one step and records the request it saw.
type fakeAIStep struct {
	resp *ai.GenerateResponse
	err  error
}

type fakeAI struct {
	steps    []fakeAIStep
	requests []*ai.GenerateRequest
}

func (f *fakeAI) GenerateContent(_ context.Context, req *ai.GenerateRequest) (*ai.GenerateResponse, error) {
	f.requests = append(f.requests, req)
	if len(f.steps) == 0 {
		return nil, errors.New("fakeAI: no scripted response left")
	}
	step := f.steps[0]
	f.steps = f.steps[1:]
	return step.resp, step.err
}

func textResponse(text string) *ai.GenerateResponse {
	return &ai.GenerateResponse{Candidates: []ai.Candidate{{
		Content: &ai.Content{Role: "model", Parts: []ai.Part{{Text: text}}},
	}}}
}

func functionCallResponse(name string, args map[string]any) *ai.GenerateResponse {
	return &ai.GenerateResponse{Candidates: []ai.Candidate{{
		Content: &ai.Content{Role: "model", Parts: []ai.Part{{
			FunctionCall: &ai.FunctionCall{Name: name, Args: args},
		}}},
	}}}
}
