package service

import (
	"fmt"
	"strings"
	"time"

	"pulseai/coach-app/internal/domain"
)

// buildPlanSystemPrompt encodes the scheduling rules for the plan
// proposer. The repairer enforces the same rules afterwards regardless of
// how well the model follows them; a compliant proposal just means fewer
// days fall back to templates.
func buildPlanSystemPrompt(profile *domain.Profile) string {
	goal := profile.GoalDescription()
	runsPerWeek := profile.WeeklyRuns()
	strengthDays := profile.StrengthDays

	availableDays := 7 - len(strengthDays)
	expectedRest := availableDays - runsPerWeek
	if expectedRest < 0 {
		expectedRest = 0
	}

	strengthList := "None specified"
	if len(strengthDays) > 0 {
		strengthList = strings.Join(strengthDays, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a professional running coach AI. Generate a training plan as a JSON array.

CONTEXT:
- User Goal: %s
- Custom Details: %s
- Running Frequency: %d runs per week
- Designated Strength Days: %s
- Available Days for Runs: %d days (7 - %d strength days)
- Expected Rest Days: %d per week

CRITICAL SCHEDULING RULES:
1. Return ONLY valid JSON - no markdown, no explanation.
2. Response must be a JSON array of exactly 56 objects (8 weeks x 7 days).
3. Structure: { "day_offset": number, "title": string, "activity_type": "Run" | "Strength" | "Rest", "description": string, "structure": {...} }

`, goal, orNone(profile.CustomGoalText), runsPerWeek, strengthList, availableDays, len(strengthDays), expectedRest)

	if len(strengthDays) > 0 {
		fmt.Fprintf(&b, `4. STRENGTH DAYS (HIGHEST PRIORITY):
   - The user lifts weights on: %s
   - You MUST schedule "activity_type": "Strength" on these specific days
   - NEVER schedule a "Run" on strength days

`, strengthList)
	} else {
		b.WriteString("4. STRENGTH DAYS: none specified - all 7 days available for runs/rest\n\n")
	}

	fmt.Fprintf(&b, `5. RUNNING DAYS (SECOND PRIORITY):
   - Schedule exactly %d runs per week
   - Runs MUST be on non-strength days only
   - Distribute runs evenly across the available days
   - Vary run types based on goal: easy runs, long runs, tempo runs, intervals

6. REST DAYS (FILL REMAINING):
   - Fill ALL remaining days with "activity_type": "Rest"
   - Calculation: 7 days - %d strength - %d runs = %d rest days per week
   - Rest days are essential for recovery

7. WORKOUT VARIETY & PROGRESSION:
   - SPLITS: If user has 3+ strength days, rotate: Lower Body -> Upper Body -> Full Body.
     If 2 or fewer, alternate Full Body A and Full Body B.
   - PROGRESSION: Increase intensity every 2 weeks (add sets, duration, or complexity).
     Week 1-2: Foundation (2 sets). Week 3-4: Build (3 sets). Week 5-6: Intensify. Week 7-8: Peak (4 sets).
   - NO REPETITION: Do NOT repeat the exact same exercise list on consecutive strength days.
   - Each strength workout MUST include:
     - "split": "Lower Body" | "Upper Body" | "Full Body"
     - "exercises": Array of 4-5 specific exercises (not generic)
     - "sets" and "reps": Based on the progression week

8. RUN VARIETY & PROGRESSION:
   - Rotate run types: Easy Run, Long Run, Tempo Run, Interval Training
   - NEVER schedule the same run type on consecutive run days
   - Increase distance/duration every 2 weeks (progressive overload)
   - Each run MUST include:
     - "title": Specific run type (e.g., "Easy Run", "Tempo Run", NOT just "Training Run")
     - "pace": "easy" | "moderate" | "hard"
     - "distance" and "duration": Based on progression week

IMPORTANT: Do NOT use "Strength" as a filler. Only schedule Strength on designated strength days. Use "Rest" for all other non-run days.
`, runsPerWeek, len(strengthDays), runsPerWeek, expectedRest)

	return b.String()
}

// buildPlanUserPrompt is the short request carrying the concrete parameters.
func buildPlanUserPrompt(profile *domain.Profile, startDate time.Time) string {
	runsPerWeek := profile.WeeklyRuns()
	strengthList := "none specified"
	if len(profile.StrengthDays) > 0 {
		strengthList = strings.Join(profile.StrengthDays, ", ")
	}
	return fmt.Sprintf(`Create an 8-week training plan with these parameters:
- Goal: %s
- Running days per week: %d
- Strength/rest days: %s
- Start date: %s

Return exactly 56 workout objects as a JSON array. Day 0 = %s.`,
		profile.GoalDescription(), runsPerWeek, strengthList, formatDate(startDate), formatDate(startDate))
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
