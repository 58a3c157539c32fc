package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pulseai/coach-app/internal/ai"
	"pulseai/coach-app/internal/domain"
	"pulseai/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tool names exposed to the assistant model.
const (
	toolUpdateWorkout     = "update_workout"
	toolSwapWorkouts      = "swap_workouts"
	toolAddRestDay        = "add_rest_day"
	toolRescheduleWorkout = "reschedule_workout"
)

// toolDeclarations describes the four plan-mutation tools to the model.
func toolDeclarations() []ai.FunctionDeclaration {
	return []ai.FunctionDeclaration{
		{
			Name:        toolUpdateWorkout,
			Description: "Update a workout's details including activity type, title, or description",
			Parameters: &ai.Schema{
				Type: "object",
				Properties: map[string]*ai.Schema{
					"workout_id":    {Type: "string", Description: "The ID of the workout to update"},
					"activity_type": {Type: "string", Enum: []string{"Run", "Strength", "Rest"}, Description: "The type of workout"},
					"title":         {Type: "string", Description: "New title for the workout"},
					"description":   {Type: "string", Description: "New description for the workout"},
				},
				Required: []string{"workout_id"},
			},
		},
		{
			Name:        toolSwapWorkouts,
			Description: "Swap two workouts between their scheduled dates",
			Parameters: &ai.Schema{
				Type: "object",
				Properties: map[string]*ai.Schema{
					"workout_id_1": {Type: "string", Description: "ID of the first workout"},
					"workout_id_2": {Type: "string", Description: "ID of the second workout"},
				},
				Required: []string{"workout_id_1", "workout_id_2"},
			},
		},
		{
			Name:        toolAddRestDay,
			Description: "Convert an existing workout to a rest day. Use when the user needs recovery.",
			Parameters: &ai.Schema{
				Type: "object",
				Properties: map[string]*ai.Schema{
					"workout_id": {Type: "string", Description: "ID of the workout to convert to rest"},
					"reason":     {Type: "string", Description: "Optional reason for the rest day (e.g., 'feeling sick', 'work deadline')"},
				},
				Required: []string{"workout_id"},
			},
		},
		{
			Name:        toolRescheduleWorkout,
			Description: "Move a workout to a different date",
			Parameters: &ai.Schema{
				Type: "object",
				Properties: map[string]*ai.Schema{
					"workout_id": {Type: "string", Description: "ID of the workout to reschedule"},
					"new_date":   {Type: "string", Description: "New date in YYYY-MM-DD format"},
				},
				Required: []string{"workout_id", "new_date"},
			},
		},
	}
}

// toolDispatcher executes exactly one tool call against the store. Every
// executor returns a uniform ToolResult; failures never escape as errors.
type toolDispatcher struct {
	workoutRepo repository.WorkoutRepository
}

func newToolDispatcher(workoutRepo repository.WorkoutRepository) *toolDispatcher {
	return &toolDispatcher{workoutRepo: workoutRepo}
}

// Execute runs the named tool. Unknown names are a failed result, not an
// error; the conversation continues either way.
func (d *toolDispatcher) Execute(ctx context.Context, call domain.ToolCall) domain.ToolResult {
	log.Printf("executing tool %s args=%v", call.Name, call.Args)

	switch call.Name {
	case toolUpdateWorkout:
		return d.executeUpdateWorkout(ctx, call.Args)
	case toolSwapWorkouts:
		return d.executeSwapWorkouts(ctx, call.Args)
	case toolAddRestDay:
		return d.executeAddRestDay(ctx, call.Args)
	case toolRescheduleWorkout:
		return d.executeRescheduleWorkout(ctx, call.Args)
	default:
		return failure(call.Name, fmt.Sprintf("unknown tool: %s", call.Name))
	}
}

func (d *toolDispatcher) executeUpdateWorkout(ctx context.Context, args map[string]any) domain.ToolResult {
	id, err := workoutIDArg(args, "workout_id")
	if err != nil {
		return failure(toolUpdateWorkout, err.Error())
	}

	var update domain.WorkoutUpdate
	if v := stringArg(args, "activity_type"); v != "" {
		at := domain.NormalizeActivityType(v)
		update.ActivityType = &at
	}
	if v := stringArg(args, "title"); v != "" {
		update.Title = &v
	}
	if v := stringArg(args, "description"); v != "" {
		update.Description = &v
	}

	if err := d.workoutRepo.UpdateFields(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure(toolUpdateWorkout, "workout not found")
		}
		return failure(toolUpdateWorkout, err.Error())
	}
	return success(toolUpdateWorkout, "Workout updated successfully")
}

func (d *toolDispatcher) executeSwapWorkouts(ctx context.Context, args map[string]any) domain.ToolResult {
	id1, err := workoutIDArg(args, "workout_id_1")
	if err != nil {
		return failure(toolSwapWorkouts, err.Error())
	}
	id2, err := workoutIDArg(args, "workout_id_2")
	if err != nil {
		return failure(toolSwapWorkouts, err.Error())
	}

	workouts, err := d.workoutRepo.GetByIDs(ctx, []primitive.ObjectID{id1, id2})
	if err != nil || len(workouts) != 2 {
		return failure(toolSwapWorkouts, "could not find both workouts")
	}
	w1, w2 := workouts[0], workouts[1]

	// Two independent updates, no enclosing transaction: a failure between
	// them leaves a half-swapped pair. Accepted risk; the user can rerun.
	if err := d.workoutRepo.UpdateSchedule(ctx, w1.ID, w2.ScheduledDate, w2.DayOffset); err != nil {
		return failure(toolSwapWorkouts, "failed to swap workouts")
	}
	if err := d.workoutRepo.UpdateSchedule(ctx, w2.ID, w1.ScheduledDate, w1.DayOffset); err != nil {
		return failure(toolSwapWorkouts, "failed to swap workouts")
	}
	return success(toolSwapWorkouts, fmt.Sprintf("Swapped workouts between %s and %s",
		formatDate(w1.ScheduledDate), formatDate(w2.ScheduledDate)))
}

func (d *toolDispatcher) executeAddRestDay(ctx context.Context, args map[string]any) domain.ToolResult {
	id, err := workoutIDArg(args, "workout_id")
	if err != nil {
		return failure(toolAddRestDay, err.Error())
	}

	reason := stringArg(args, "reason")
	description := "Take it easy today. Light stretching or complete rest."
	instructions := "Recovery is essential. Stay hydrated and get good sleep."
	if reason != "" {
		description = reason
		instructions = fmt.Sprintf("Rest day: %s", reason)
	}

	rest := domain.ActivityRest
	title := "Rest Day"
	update := domain.WorkoutUpdate{
		ActivityType: &rest,
		Title:        &title,
		Description:  &description,
		Structure:    &domain.WorkoutStructure{Instructions: instructions},
	}

	if err := d.workoutRepo.UpdateFields(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure(toolAddRestDay, "workout not found")
		}
		return failure(toolAddRestDay, err.Error())
	}
	return success(toolAddRestDay, "Converted to rest day")
}

func (d *toolDispatcher) executeRescheduleWorkout(ctx context.Context, args map[string]any) domain.ToolResult {
	id, err := workoutIDArg(args, "workout_id")
	if err != nil {
		return failure(toolRescheduleWorkout, err.Error())
	}
	dateStr := stringArg(args, "new_date")
	newDate, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return failure(toolRescheduleWorkout, fmt.Sprintf("invalid date: %q", dateStr))
	}

	if err := d.workoutRepo.UpdateScheduledDate(ctx, id, newDate); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure(toolRescheduleWorkout, "workout not found")
		}
		return failure(toolRescheduleWorkout, err.Error())
	}
	return success(toolRescheduleWorkout, fmt.Sprintf("Workout moved to %s", dateStr))
}

// --- helpers ---

func success(name, result string) domain.ToolResult {
	return domain.ToolResult{Name: name, Success: true, Result: result}
}

func failure(name, errMsg string) domain.ToolResult {
	return domain.ToolResult{Name: name, Success: false, Error: errMsg}
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func workoutIDArg(args map[string]any, key string) (primitive.ObjectID, error) {
	raw := stringArg(args, key)
	if raw == "" {
		return primitive.NilObjectID, fmt.Errorf("%s is required", key)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return id, nil
}
