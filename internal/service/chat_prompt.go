package service

import (
	"fmt"
	"strings"
	"time"

	"pulseai/coach-app/internal/domain"
)

// buildChatSystemPrompt assembles the Coach Pulse persona plus the
// bounded plan/history window for one chat turn.
func buildChatSystemPrompt(c *chatContext, now time.Time) string {
	name := c.profile.Name
	if name == "" {
		name = "Runner"
	}
	runsPerWeek := c.profile.WeeklyRuns()
	strengthList := "no specific days"
	if len(c.profile.StrengthDays) > 0 {
		strengthList = strings.Join(c.profile.StrengthDays, ", ")
	}

	return fmt.Sprintf(`You are Coach Pulse, an elite running coach and fitness expert for the Pulse AI training app.

PERSONA:
- Friendly, encouraging, and knowledgeable
- Use a conversational but professional tone
- Be concise - keep responses under 100 words unless detailed explanation is needed
- Celebrate user achievements and show empathy for challenges

USER CONTEXT:
- Name: %s
- Goal: %s
- Weekly Schedule: %d runs, strength on %s

ACTIVE TRAINING PLAN:
- Plan: %s
- Plan ID: %s

RECENT HISTORY (Last 7 Days - completed vs missed):
%s

UPCOMING WORKOUTS (Next 7 Days):
%s

CAPABILITIES:
You can modify the user's training plan using these tools:
1. update_workout - Change workout details (type, title, description)
2. swap_workouts - Swap two workouts between different days
3. add_rest_day - Convert any workout to a rest day
4. reschedule_workout - Move a workout to a different date

RULES:
- Always confirm changes after making them
- If unsure which workout the user means, ask for clarification
- Never modify completed workouts unless explicitly asked
- NEVER show workout IDs to the user - use dates and workout names instead (e.g., "Thursday's Easy Run", "tomorrow's Long Run")
- Today's date is %s
- Be encouraging about missed workouts - suggest adjustments rather than criticism
- Keep responses friendly and non-technical`,
		name,
		c.profile.GoalDescription(),
		runsPerWeek,
		strengthList,
		c.plan.PlanName,
		c.plan.ID.Hex(),
		formatWorkoutLines(c.recent, true),
		formatWorkoutLines(c.upcoming, false),
		formatDate(now),
	)
}

// formatWorkoutLines renders a workout window for the prompt. Past
// workouts are labelled COMPLETED/MISSED, upcoming ones COMPLETED/pending.
func formatWorkoutLines(workouts []domain.Workout, past bool) string {
	if len(workouts) == 0 {
		if past {
			return "No recent workout history"
		}
		return "No upcoming workouts"
	}

	lines := make([]string, 0, len(workouts))
	for _, w := range workouts {
		status := "pending"
		if past {
			status = "MISSED"
		}
		if w.IsCompleted {
			status = "COMPLETED"
		}
		lines = append(lines, fmt.Sprintf("- %s | %s | %s (%s) | %s",
			formatDate(w.ScheduledDate), w.ID.Hex(), w.Title, w.ActivityType, status))
	}
	return strings.Join(lines, "\n")
}
