package plan

import "time"

// Focus labels for workout days. The build-muscle goal rotates through a
// six-entry split; the other goals keep a constant focus so that any month
// renders the same label for every workout day.
const (
	FocusUpperBody           = "Upper Body"
	FocusLowerBody           = "Lower Body"
	FocusFullBody            = "Full Body"
	FocusPush                = "Push"
	FocusPull                = "Pull"
	FocusLegs                = "Legs"
	FocusCardioStrength      = "Cardio & Strength"
	FocusFullBodyMaintenance = "Full Body Maintenance"
	FocusGeneralFitness      = "General Fitness"
)

// buildMuscleRotation is indexed by (dayNumber-1) mod len so that the focus
// assigned to an absolute date never depends on which month was assembled.
var buildMuscleRotation = []string{
	FocusUpperBody,
	FocusLowerBody,
	FocusFullBody,
	FocusPush,
	FocusPull,
	FocusLegs,
}

// dayPlan is the selection outcome for a single calendar day.
type dayPlan struct {
	dayType   DayType
	focus     string
	intensity Intensity
}

// workoutWeekdays returns the weekly workout-day pattern for an exercise
// frequency. Cardinality grows with frequency and rest days stay spread out.
// An unset frequency falls back to the rarely pattern.
func workoutWeekdays(freq Frequency) map[time.Weekday]bool {
	switch freq {
	case FrequencyNever:
		return map[time.Weekday]bool{time.Monday: true, time.Friday: true}
	case FrequencySometimes:
		return map[time.Weekday]bool{
			time.Monday: true, time.Wednesday: true, time.Friday: true, time.Saturday: true,
		}
	case FrequencyOften:
		return map[time.Weekday]bool{
			time.Monday: true, time.Tuesday: true, time.Thursday: true,
			time.Friday: true, time.Saturday: true,
		}
	case FrequencyVeryOften:
		return map[time.Weekday]bool{
			time.Monday: true, time.Tuesday: true, time.Wednesday: true,
			time.Thursday: true, time.Friday: true, time.Saturday: true,
		}
	case FrequencyRarely, FrequencyUnknown:
		fallthrough
	default:
		return map[time.Weekday]bool{time.Monday: true, time.Wednesday: true, time.Friday: true}
	}
}

// focusFor picks the focus label for the given absolute day number.
func focusFor(goal Goal, dayNumber int) string {
	switch goal {
	case GoalBuildMuscle:
		return buildMuscleRotation[(dayNumber-1)%len(buildMuscleRotation)]
	case GoalLoseWeight:
		return FocusCardioStrength
	case GoalMaintain:
		return FocusFullBodyMaintenance
	case GoalImproveFitness, GoalUnknown:
		fallthrough
	default:
		return FocusGeneralFitness
	}
}

// intensityFor classifies the training intensity from frequency and goal.
func intensityFor(freq Frequency, goal Goal) Intensity {
	switch {
	case goal == GoalLoseWeight:
		return IntensityHigh
	case goal == GoalBuildMuscle && (freq == FrequencyOften || freq == FrequencyVeryOften):
		return IntensityHigh
	case goal == GoalBuildMuscle || goal == GoalMaintain:
		return IntensityMedium
	default:
		return IntensityLow
	}
}

// selectDayPlan decides rest versus workout for a weekday and, for workout
// days, the focus and intensity. A dayNumber below 1 means no day-one anchor
// exists yet; selection then behaves as if the date were day 1 so that a plan
// preview stays deterministic before any measurement is recorded.
func selectDayPlan(dayNumber int, weekday time.Weekday, prof SurveyProfile) dayPlan {
	if dayNumber < 1 {
		dayNumber = 1
	}

	if !workoutWeekdays(prof.ExerciseFrequency)[weekday] {
		return dayPlan{dayType: DayTypeRest}
	}

	return dayPlan{
		dayType:   DayTypeWorkout,
		focus:     focusFor(prof.WorkoutGoal, dayNumber),
		intensity: intensityFor(prof.ExerciseFrequency, prof.WorkoutGoal),
	}
}
