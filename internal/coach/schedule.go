package coach

import (
	"fmt"
	"log"
	"strings"
	"time"

	"pulseai/coach-app/internal/domain"
)

// PlanDays is the fixed schedule horizon: 8 weeks of 7 days.
const (
	PlanWeeks = 8
	PlanDays  = PlanWeeks * 7
)

// Entry is one candidate day as proposed by the model, and one repaired
// day after the repairer has run. ActivityType stays free text here; it
// is normalized when the plan is materialized.
type Entry struct {
	DayOffset    int                     `json:"day_offset"`
	Title        string                  `json:"title"`
	ActivityType string                  `json:"activity_type"`
	Description  string                  `json:"description"`
	Structure    domain.WorkoutStructure `json:"structure"`
}

// Constraints are the profile-derived scheduling rules for one plan.
type Constraints struct {
	RunsPerWeek  int
	StrengthDays []string // weekday names, any case
	StartDate    time.Time
}

// Verdict is the outcome of checking a proposed entry against what its
// slot requires: either the entry is trusted as-is or it is invalid for
// the stated reason and gets replaced from the template library.
type Verdict struct {
	Trusted bool
	Reason  string
}

func trusted() Verdict { return Verdict{Trusted: true} }

func invalid(reason string) Verdict { return Verdict{Reason: reason} }

// CheckStrength decides whether a proposed entry can fill a strength slot.
func CheckStrength(e Entry) Verdict {
	if e.ActivityType != string(domain.ActivityStrength) {
		return invalid("not a strength workout")
	}
	if e.Structure.Split == "" {
		return invalid("missing split")
	}
	if len(e.Structure.Exercises) < 3 {
		return invalid("fewer than 3 exercises")
	}
	return trusted()
}

// CheckRun decides whether a proposed entry can fill a run slot.
func CheckRun(e Entry) Verdict {
	if e.ActivityType != string(domain.ActivityRun) {
		return invalid("not a run")
	}
	if e.Structure.Distance == "" || e.Structure.Pace == "" {
		return invalid("missing distance or pace")
	}
	if e.Title == "" || e.Title == genericRunTitle {
		return invalid("generic title")
	}
	return trusted()
}

// WeekCount tallies activity types within one 7-day window.
type WeekCount struct {
	Strength int
	Run      int
	Rest     int
}

// Report carries the post-repair diagnostics: per-week and aggregate
// counts plus warnings. Discrepancies are reported, never fatal.
type Report struct {
	Weeks    [PlanWeeks]WeekCount
	Total    WeekCount
	Warnings []string
}

// rotation is the template rotation state threaded through the week scan.
// The counters run across the whole horizon and are never reset, which is
// what guarantees no immediate template repeats at typical frequencies.
type rotation struct {
	strength int
	run      int
}

// Repairer walks a candidate schedule week by week and rewrites every day
// that fails validation, so the output always satisfies the weekly
// distribution rules no matter what the model returned. It owns no state
// between calls; Tables is immutable configuration.
type Repairer struct {
	tables Tables
}

// NewRepairer creates a repairer over the given lookup tables.
func NewRepairer(tables Tables) *Repairer {
	return &Repairer{tables: tables}
}

// Repair produces a 56-entry schedule from an arbitrary candidate. The
// candidate may be nil, short, long, or full of garbage; output length
// and weekly distribution are guaranteed either way.
func (r *Repairer) Repair(candidate []Entry, c Constraints) ([]Entry, Report) {
	days := make([]Entry, PlanDays)
	copy(days, candidate)
	for i := range days {
		days[i].DayOffset = i
	}

	strengthSet := make(map[string]bool, len(c.StrengthDays))
	for _, d := range c.StrengthDays {
		strengthSet[strings.ToLower(strings.TrimSpace(d))] = true
	}

	var report Report
	rot := rotation{}
	for week := 0; week < PlanWeeks; week++ {
		rot = r.repairWeek(days[week*7:week*7+7], week+1, c, strengthSet, rot, &report)
	}

	r.validate(days, c, strengthSet, &report)
	return days, report
}

// repairWeek enforces the distribution for one aligned 7-day window and
// returns the advanced rotation state.
func (r *Repairer) repairWeek(days []Entry, weekNum int, c Constraints, strengthSet map[string]bool, rot rotation, report *Report) rotation {
	phase := r.tables.PhaseForWeek(weekNum)

	// Split the week into forced strength days and days available for
	// runs or rest.
	var available []int
	for i := range days {
		offset := (weekNum-1)*7 + i
		if strengthSet[weekdayName(c.StartDate, offset)] {
			r.repairStrengthDay(&days[i], phase, rot.strength)
			rot.strength++
		} else {
			available = append(available, i)
		}
	}

	runsToSchedule := c.RunsPerWeek
	if runsToSchedule > len(available) {
		runsToSchedule = len(available)
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"week %d: requested %d runs but only %d days available", weekNum, c.RunsPerWeek, len(available)))
	}

	// Distribute runs evenly across the available days: day i becomes a
	// run when floor(i*R/A) first reaches the next run slot, which
	// front-loads the remainder when A does not divide evenly.
	isRun := make(map[int]bool, runsToSchedule)
	scheduled := 0
	for i := 0; i < len(available) && scheduled < runsToSchedule; i++ {
		if i*runsToSchedule/len(available) == scheduled {
			idx := available[i]
			isRun[idx] = true
			r.repairRunDay(&days[idx], weekNum, rot.run)
			rot.run++
			scheduled++
		}
	}

	// Everything left over is rest.
	for _, idx := range available {
		if !isRun[idx] {
			setRestDay(&days[idx])
		}
	}

	return rot
}

// repairStrengthDay forces a day to strength. A trusted proposal keeps its
// content but always gets the phase's sets/reps/rest so the overload
// progression stays consistent; anything else is replaced from the
// rotating template library.
func (r *Repairer) repairStrengthDay(e *Entry, phase ProgressionPhase, counter int) {
	if v := CheckStrength(*e); v.Trusted {
		e.Structure.Sets = phase.Sets
		e.Structure.Reps = phase.Reps
		e.Structure.Rest = phase.Rest
		e.Structure.Instructions = phase.Instructions()
		return
	}

	tpl := r.tables.Strength[counter%len(r.tables.Strength)]
	e.ActivityType = string(domain.ActivityStrength)
	e.Title = tpl.Name
	e.Description = tpl.Focus
	e.Structure = domain.WorkoutStructure{
		Duration:     strengthDuration,
		Split:        tpl.Split,
		Exercises:    append([]string(nil), tpl.Exercises...),
		Sets:         phase.Sets,
		Reps:         phase.Reps,
		Rest:         phase.Rest,
		Instructions: phase.Instructions(),
	}
}

// repairRunDay forces a day to a run. Trusted proposals are left
// untouched; otherwise the rotating run templates fill it with the
// current week's volume target.
func (r *Repairer) repairRunDay(e *Entry, weekNum, counter int) {
	if v := CheckRun(*e); v.Trusted {
		return
	}

	idx := counter % len(r.tables.Runs)
	tpl := r.tables.Runs[idx]
	vol := r.tables.RunVolumeForWeek(weekNum, idx)
	e.ActivityType = string(domain.ActivityRun)
	e.Title = tpl.Name
	e.Description = tpl.Description
	e.Structure = domain.WorkoutStructure{
		Distance:     vol.Distance,
		Duration:     vol.Duration,
		Pace:         tpl.Pace,
		Instructions: tpl.Instructions,
	}
}

func setRestDay(e *Entry) {
	e.ActivityType = string(domain.ActivityRest)
	e.Title = restTitle
	e.Description = restDescription
	e.Structure = domain.WorkoutStructure{Instructions: restInstructions}
}

// validate tallies the repaired schedule and records count discrepancies
// as warnings. Purely diagnostic; persistence goes ahead regardless.
func (r *Repairer) validate(days []Entry, c Constraints, strengthSet map[string]bool, report *Report) {
	for week := 0; week < PlanWeeks; week++ {
		var count WeekCount
		expectedStrength := 0
		for i := 0; i < 7; i++ {
			offset := week*7 + i
			if strengthSet[weekdayName(c.StartDate, offset)] {
				expectedStrength++
			}
			switch days[offset].ActivityType {
			case string(domain.ActivityStrength):
				count.Strength++
			case string(domain.ActivityRun):
				count.Run++
			default:
				count.Rest++
			}
		}
		report.Weeks[week] = count
		report.Total.Strength += count.Strength
		report.Total.Run += count.Run
		report.Total.Rest += count.Rest

		expectedRuns := c.RunsPerWeek
		if expectedRuns > 7-expectedStrength {
			expectedRuns = 7 - expectedStrength
		}
		if count.Strength != expectedStrength {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"week %d: expected %d strength days, got %d", week+1, expectedStrength, count.Strength))
		}
		if count.Run != expectedRuns {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"week %d: expected %d runs, got %d", week+1, expectedRuns, count.Run))
		}
	}
}

// Log writes the report the way the generator logs its diagnostics.
func (rep Report) Log() {
	for week, count := range rep.Weeks {
		log.Printf("week %d: %d strength | %d runs | %d rest", week+1, count.Strength, count.Run, count.Rest)
	}
	log.Printf("total distribution (%d days): %d strength | %d runs | %d rest",
		PlanDays, rep.Total.Strength, rep.Total.Run, rep.Total.Rest)
	for _, w := range rep.Warnings {
		log.Printf("WARN: %s", w)
	}
}

// weekdayName returns the lowercase weekday of start + offset days.
func weekdayName(start time.Time, offset int) string {
	return strings.ToLower(start.AddDate(0, 0, offset).Weekday().String())
}
