package coach

import "fmt"

// StrengthTemplate is one fallback strength workout used when the model
// fails to produce a valid one for a strength day.
type StrengthTemplate struct {
	Name      string
	Split     string
	Exercises []string
	Focus     string
}

// RunTemplate is one fallback run type. Templates rotate in the order
// easy, long, tempo, intervals.
type RunTemplate struct {
	Name         string
	Pace         string
	Description  string
	Instructions string
}

// ProgressionPhase is one two-week intensity tier of the 8-week plan.
type ProgressionPhase struct {
	Sets int
	Reps string
	Rest string
	Note string
}

// Instructions renders the phase into the strength instruction line.
func (p ProgressionPhase) Instructions() string {
	return fmt.Sprintf("%s phase: %d sets of %s. Rest %s between sets.", p.Note, p.Sets, p.Reps, p.Rest)
}

// RunVolume is the distance/duration target for one run type in one phase.
type RunVolume struct {
	Distance string
	Duration string
}

// Tables is the immutable lookup data the repairer works from: the
// template library and the progression tables. Injected, never mutated.
type Tables struct {
	Strength []StrengthTemplate
	Runs     []RunTemplate
	Phases   [4]ProgressionPhase
	// RunVolumes[phase][i] pairs with Runs[i].
	RunVolumes [4][4]RunVolume
}

// phaseIndex maps a 1-based week number onto its two-week phase.
func phaseIndex(week int) int {
	idx := (week - 1) / 2
	if idx < 0 {
		idx = 0
	}
	if idx > 3 {
		idx = 3
	}
	return idx
}

// PhaseForWeek returns the progression phase for a 1-based week number.
// Pure function of the week; repair decisions never influence it.
func (t Tables) PhaseForWeek(week int) ProgressionPhase {
	return t.Phases[phaseIndex(week)]
}

// RunVolumeForWeek returns the volume target for the given run template
// index in the given 1-based week.
func (t Tables) RunVolumeForWeek(week, runIdx int) RunVolume {
	return t.RunVolumes[phaseIndex(week)][runIdx%len(t.Runs)]
}

// DefaultTables returns the built-in template library and progression data.
func DefaultTables() Tables {
	return Tables{
		Strength: []StrengthTemplate{
			{
				Name:      "Lower Body Power",
				Split:     "Lower Body",
				Exercises: []string{"Squats", "Romanian Deadlifts", "Walking Lunges", "Glute Bridges", "Calf Raises"},
				Focus:     "Build leg strength for running power",
			},
			{
				Name:      "Upper Body & Core",
				Split:     "Upper Body",
				Exercises: []string{"Push-ups", "Dumbbell Rows", "Overhead Press", "Plank Hold", "Dead Bugs"},
				Focus:     "Upper body balance and core stability",
			},
			{
				Name:      "Full Body Conditioning",
				Split:     "Full Body",
				Exercises: []string{"Burpees", "Kettlebell Swings", "Box Step-ups", "Mountain Climbers", "Turkish Get-ups"},
				Focus:     "Total body conditioning and endurance",
			},
		},
		Runs: []RunTemplate{
			{
				Name:         "Easy Run",
				Pace:         "easy",
				Description:  "Relaxed pace to build aerobic base. Should feel comfortable.",
				Instructions: "Maintain a conversational pace. If you can't chat, slow down.",
			},
			{
				Name:         "Long Run",
				Pace:         "easy",
				Description:  "Extended distance run to build endurance.",
				Instructions: "Start slow, finish strong. Fuel and hydrate as needed.",
			},
			{
				Name:         "Tempo Run",
				Pace:         "moderate",
				Description:  "Sustained effort at comfortably hard pace.",
				Instructions: "Run at a pace you could hold for about an hour. Challenging but controlled.",
			},
			{
				Name:         "Interval Training",
				Pace:         "hard",
				Description:  "Speed work with recovery periods.",
				Instructions: "Alternate between hard efforts and recovery jogs. Push yourself on the fast segments.",
			},
		},
		Phases: [4]ProgressionPhase{
			{Sets: 2, Reps: "10-12", Rest: "60s", Note: "Foundation"},
			{Sets: 3, Reps: "10-12", Rest: "60s", Note: "Build"},
			{Sets: 3, Reps: "12-15", Rest: "45s", Note: "Intensify"},
			{Sets: 4, Reps: "12-15", Rest: "45s", Note: "Peak"},
		},
		RunVolumes: [4][4]RunVolume{
			{{"3 mi", "30 min"}, {"5 mi", "50 min"}, {"3 mi", "25 min"}, {"2 mi", "20 min"}},
			{{"3.5 mi", "35 min"}, {"6 mi", "60 min"}, {"3.5 mi", "28 min"}, {"2.5 mi", "25 min"}},
			{{"4 mi", "40 min"}, {"7 mi", "70 min"}, {"4 mi", "32 min"}, {"3 mi", "30 min"}},
			{{"4.5 mi", "45 min"}, {"8 mi", "80 min"}, {"4.5 mi", "36 min"}, {"3 mi", "30 min"}},
		},
	}
}

// Rest day filler content.
const (
	restTitle        = "Rest Day"
	restDescription  = "Take it easy today. Light stretching or complete rest."
	restInstructions = "Recovery is essential. Stay hydrated and get good sleep."
	strengthDuration = "40-50 min"
	genericRunTitle  = "Training Run"
)
