package plan

import (
	"fmt"
	"time"
)

// buildDailyWorkout composes the full record for one calendar day from the
// selector's decision. dayNumber may be nil when no day-one anchor exists;
// the title then omits the day counter. Rest days carry no exercises, warmup,
// cooldown, or status.
func buildDailyWorkout(date time.Time, dayNumber *int, dp dayPlan) (DailyWorkout, error) {
	workout := DailyWorkout{
		Date:      NormalizeDate(date),
		DayNumber: dayNumber,
		Type:      dp.dayType,
	}

	if dp.dayType == DayTypeRest {
		workout.Title = "Rest Day"
		return workout, nil
	}

	exercises, err := Exercises(dp.focus, dp.intensity)
	if err != nil {
		return DailyWorkout{}, fmt.Errorf("build exercises for %s: %w", formatDate(date), err)
	}

	workout.Focus = dp.focus
	workout.Intensity = dp.intensity
	workout.Title = fmt.Sprintf("%s Workout", dp.focus)
	if dayNumber != nil {
		workout.Title = fmt.Sprintf("%s Workout - Day %d", dp.focus, *dayNumber)
	}
	workout.Duration = durationFor(dp.intensity)
	workout.Warmup = warmupRoutine
	workout.Exercises = exercises
	workout.Cooldown = cooldownRoutine
	workout.Status = StatusScheduled

	return workout, nil
}
