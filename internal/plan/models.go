// Package plan derives periodized workout calendars from a survey profile and
// a day-one anchor date, and reconciles them against recorded adherence events.
package plan

import "time"

// Sex is the self-reported sex from the onboarding survey.
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = ""
)

// Frequency is the self-reported exercise frequency. It drives how many
// weekdays per week are scheduled as workout days.
type Frequency string

const (
	FrequencyNever     Frequency = "never"
	FrequencyRarely    Frequency = "rarely"
	FrequencySometimes Frequency = "sometimes"
	FrequencyOften     Frequency = "often"
	FrequencyVeryOften Frequency = "very_often"
	FrequencyUnknown   Frequency = ""
)

// Goal is the training goal from the onboarding survey. It drives the focus
// rotation and the intensity classification.
type Goal string

const (
	GoalLoseWeight     Goal = "lose_weight"
	GoalBuildMuscle    Goal = "build_muscle"
	GoalMaintain       Goal = "maintain"
	GoalImproveFitness Goal = "improve_fitness"
	GoalUnknown        Goal = ""
)

// SurveyProfile is the immutable survey snapshot a plan is generated from.
// Any field may be unset; selection falls back to documented defaults instead
// of failing.
type SurveyProfile struct {
	Sex               Sex       `json:"sex"`
	ExerciseFrequency Frequency `json:"exercise_frequency"`
	WorkoutGoal       Goal      `json:"workout_goal"`
}

// Intensity is the coarse effort classification driving set, rep, and rest
// parameters.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// DayType classifies a calendar day as a rest or workout day.
type DayType string

const (
	DayTypeRest    DayType = "rest"
	DayTypeWorkout DayType = "workout"
)

// Status is the adherence outcome of a workout day. Rest days carry no
// status. A workout day without a recorded event is scheduled unless it lies
// in the past, in which case the assembler infers missed.
type Status string

const (
	StatusNone      Status = ""
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

// Prescription is a single exercise with its set, rep, and rest targets.
type Prescription struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
	Tip         string `json:"tip"`
}

// DailyWorkout is one calendar day of a plan. DayNumber is nil until a
// day-one anchor exists.
type DailyWorkout struct {
	Date      time.Time      `json:"date"`
	DayNumber *int           `json:"day_number,omitempty"`
	Type      DayType        `json:"type"`
	Focus     string         `json:"focus,omitempty"`
	Intensity Intensity      `json:"intensity,omitempty"`
	Title     string         `json:"title"`
	Duration  string         `json:"duration,omitempty"`
	Warmup    []string       `json:"warmup,omitempty"`
	Exercises []Prescription `json:"exercises,omitempty"`
	Cooldown  []string       `json:"cooldown,omitempty"`
	Status    Status         `json:"status,omitempty"`
}

// MonthlyPlan covers every calendar day of one month, first to last,
// contiguous and sorted ascending by date.
type MonthlyPlan struct {
	Year      int            `json:"year"`
	Month     time.Month     `json:"month"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Workouts  []DailyWorkout `json:"workouts"`
}
