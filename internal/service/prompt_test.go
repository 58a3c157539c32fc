package service

import (
	"testing"
	"time"

	"pulseai/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildPlanSystemPrompt(t *testing.T) {
	profile := &domain.Profile{
		Goal:         domain.Goal5K,
		RunsPerWeek:  3,
		StrengthDays: []string{"monday", "thursday"},
	}

	prompt := buildPlanSystemPrompt(profile)
	assert.Contains(t, prompt, "User Goal: 5k")
	assert.Contains(t, prompt, "Running Frequency: 3 runs per week")
	assert.Contains(t, prompt, "monday, thursday")
	assert.Contains(t, prompt, "Available Days for Runs: 5 days")
	assert.Contains(t, prompt, "Expected Rest Days: 2 per week")
	assert.Contains(t, prompt, "exactly 56 objects")
	assert.Contains(t, prompt, "STRENGTH DAYS (HIGHEST PRIORITY)")
}

func TestBuildPlanSystemPromptNoStrengthDays(t *testing.T) {
	profile := &domain.Profile{Goal: domain.GoalHabit}

	prompt := buildPlanSystemPrompt(profile)
	// Zero runs per week falls back to three.
	assert.Contains(t, prompt, "Running Frequency: 3 runs per week")
	assert.Contains(t, prompt, "none specified - all 7 days available")
	assert.NotContains(t, prompt, "HIGHEST PRIORITY")
}

func TestBuildPlanUserPrompt(t *testing.T) {
	profile := &domain.Profile{Goal: domain.GoalMarathon, RunsPerWeek: 4, StrengthDays: []string{"friday"}}
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	prompt := buildPlanUserPrompt(profile, start)
	assert.Contains(t, prompt, "Goal: marathon")
	assert.Contains(t, prompt, "Running days per week: 4")
	assert.Contains(t, prompt, "Start date: 2025-09-01")
	assert.Contains(t, prompt, "Day 0 = 2025-09-01")
}

func TestBuildChatSystemPrompt(t *testing.T) {
	c := &chatContext{
		profile: &domain.Profile{Name: "Avery", Goal: domain.Goal5K, RunsPerWeek: 4, StrengthDays: []string{"monday"}},
		plan:    &domain.TrainingPlan{PlanName: "8-Week 5k Plan"},
		recent: []domain.Workout{{
			ScheduledDate: time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
			Title:         "Easy Run",
			ActivityType:  domain.ActivityRun,
			IsCompleted:   true,
		}},
		upcoming: []domain.Workout{{
			ScheduledDate: time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC),
			Title:         "Tempo Run",
			ActivityType:  domain.ActivityRun,
		}},
	}

	prompt := buildChatSystemPrompt(c, time.Date(2025, 9, 10, 9, 0, 0, 0, time.UTC))
	assert.Contains(t, prompt, "Coach Pulse")
	assert.Contains(t, prompt, "Name: Avery")
	assert.Contains(t, prompt, "4 runs, strength on monday")
	assert.Contains(t, prompt, "2025-09-08")
	assert.Contains(t, prompt, "COMPLETED")
	assert.Contains(t, prompt, "Tempo Run (Run) | pending")
	assert.Contains(t, prompt, "Today's date is 2025-09-10")
	assert.Contains(t, prompt, "NEVER show workout IDs")
}

func TestFormatWorkoutLinesStatuses(t *testing.T) {
	past := []domain.Workout{
		{Title: "Easy Run", ActivityType: domain.ActivityRun, IsCompleted: true},
		{Title: "Long Run", ActivityType: domain.ActivityRun},
	}
	lines := formatWorkoutLines(past, true)
	assert.Contains(t, lines, "COMPLETED")
	assert.Contains(t, lines, "MISSED")

	upcoming := []domain.Workout{{Title: "Tempo Run", ActivityType: domain.ActivityRun}}
	assert.Contains(t, formatWorkoutLines(upcoming, false), "pending")

	assert.Equal(t, "No recent workout history", formatWorkoutLines(nil, true))
	assert.Equal(t, "No upcoming workouts", formatWorkoutLines(nil, false))
}
