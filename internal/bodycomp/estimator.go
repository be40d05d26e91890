// Package bodycomp estimates body-fat percentage from the survey profile and
// stores the resulting measurements. The first recorded measurement anchors
// the user's journey day numbering.
package bodycomp

import (
	"math"
	"math/rand/v2"

	"github.com/harrysikes/shredai/internal/plan"
)

const (
	minBodyFat = 5.0
	maxBodyFat = 45.0
)

// Estimator produces a survey-based body-fat estimate. The jitter source is
// injectable so tests can pin the estimate down.
type Estimator struct {
	jitter func() float64
}

// NewEstimator creates an estimator. A nil jitter defaults to the global
// random source; pass a deterministic func in tests.
func NewEstimator(jitter func() float64) *Estimator {
	if jitter == nil {
		jitter = rand.Float64
	}
	return &Estimator{jitter: jitter}
}

// Estimate derives a body-fat percentage from the survey answers. The result
// is a plausibility heuristic, not a measurement: a sex-specific baseline
// shifted by activity level and goal, with a small random spread.
func (e *Estimator) Estimate(prof plan.SurveyProfile) float64 {
	baseline := 24.0
	switch prof.Sex {
	case plan.SexMale:
		baseline = 20.0
	case plan.SexFemale:
		baseline = 28.0
	}

	switch prof.ExerciseFrequency {
	case plan.FrequencyNever:
		baseline += 4
	case plan.FrequencyRarely:
		baseline += 2
	case plan.FrequencyOften:
		baseline -= 2
	case plan.FrequencyVeryOften:
		baseline -= 4
	}

	switch prof.WorkoutGoal {
	case plan.GoalLoseWeight:
		baseline += 3
	case plan.GoalBuildMuscle:
		baseline--
	}

	// Spread of plus or minus 1.5 percentage points.
	spread := (e.jitter()*2 - 1) * 1.5

	return clampBodyFat(math.Round((baseline+spread)*10) / 10)
}

func clampBodyFat(pct float64) float64 {
	return math.Min(maxBodyFat, math.Max(minBodyFat, pct))
}
