package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Input validation sentinels. Both are rejected before any store access.
var (
	ErrInvalidMonth = errors.New("month out of range")
	ErrInvalidYear  = errors.New("year out of range")
)

const (
	minYear = 2000
	maxYear = 2100
)

// EventSource is the snapshot view of recorded adherence state the assembler
// reads once per call. Implementations scope reads to the current user.
type EventSource interface {
	CompletedDates(ctx context.Context) (map[time.Time]struct{}, error)
	MissedDates(ctx context.Context) (map[time.Time]struct{}, error)
	// DayOne returns the anchor date and whether one has been established.
	DayOne(ctx context.Context) (time.Time, bool, error)
}

// ProfileSource supplies the survey profile a plan is generated from.
type ProfileSource interface {
	Get(ctx context.Context) (SurveyProfile, error)
}

// Service assembles workout calendars. Each call reads one consistent
// snapshot from its sources and is otherwise pure computation; the service
// holds no mutable state between calls.
type Service struct {
	events   EventSource
	profiles ProfileSource
	logger   *slog.Logger
}

// NewService creates a plan assembly service.
func NewService(events EventSource, profiles ProfileSource, logger *slog.Logger) *Service {
	return &Service{
		events:   events,
		profiles: profiles,
		logger:   logger,
	}
}

// snapshot is the frozen input state for one assembly call.
type snapshot struct {
	profile   SurveyProfile
	anchor    time.Time
	hasAnchor bool
	completed map[time.Time]struct{}
	missed    map[time.Time]struct{}
}

// MonthlyPlan assembles the full calendar for one month. today is the
// caller's current date and drives the missed inference for lapsed workout
// days that have no recorded event. Store read failures propagate; the
// assembler never substitutes empty event sets for a failed read, since that
// would render completed history as missed.
func (s *Service) MonthlyPlan(
	ctx context.Context,
	year int,
	month time.Month,
	today time.Time,
) (MonthlyPlan, error) {
	if month < time.January || month > time.December {
		return MonthlyPlan{}, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	if year < minYear || year > maxYear {
		return MonthlyPlan{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	snap, err := s.takeSnapshot(ctx)
	if err != nil {
		return MonthlyPlan{}, err
	}

	monthPlan, err := assembleMonth(year, month, snap, today)
	if err != nil {
		return MonthlyPlan{}, fmt.Errorf("assemble %d-%02d: %w", year, month, err)
	}
	return monthPlan, nil
}

// DailyWorkout assembles a single day using the same snapshot and
// reconciliation rules as MonthlyPlan.
func (s *Service) DailyWorkout(ctx context.Context, date, today time.Time) (DailyWorkout, error) {
	snap, err := s.takeSnapshot(ctx)
	if err != nil {
		return DailyWorkout{}, err
	}

	workout, err := assembleDay(NormalizeDate(date), snap, today)
	if err != nil {
		return DailyWorkout{}, fmt.Errorf("assemble %s: %w", formatDate(date), err)
	}
	return workout, nil
}

// IsWorkoutDay reports whether the profile schedules a workout on the given
// date. It reads only the profile, not the event history.
func (s *Service) IsWorkoutDay(ctx context.Context, date time.Time) (bool, error) {
	prof, err := s.profiles.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("get survey profile: %w", err)
	}
	return workoutWeekdays(prof.ExerciseFrequency)[date.Weekday()], nil
}

// takeSnapshot reads all assembly inputs once. Reads fail closed.
func (s *Service) takeSnapshot(ctx context.Context) (snapshot, error) {
	prof, err := s.profiles.Get(ctx)
	if err != nil {
		return snapshot{}, fmt.Errorf("get survey profile: %w", err)
	}

	anchor, hasAnchor, err := s.events.DayOne(ctx)
	if err != nil {
		return snapshot{}, fmt.Errorf("get day-one anchor: %w", err)
	}

	completed, err := s.events.CompletedDates(ctx)
	if err != nil {
		return snapshot{}, fmt.Errorf("get completed dates: %w", err)
	}

	missed, err := s.events.MissedDates(ctx)
	if err != nil {
		return snapshot{}, fmt.Errorf("get missed dates: %w", err)
	}

	return snapshot{
		profile:   prof,
		anchor:    NormalizeDate(anchor),
		hasAnchor: hasAnchor,
		completed: completed,
		missed:    missed,
	}, nil
}

// assembleMonth enumerates every day of the month and builds the reconciled
// calendar. Pure function of its inputs.
func assembleMonth(year int, month time.Month, snap snapshot, today time.Time) (MonthlyPlan, error) {
	days := EnumerateMonth(year, month)

	workouts := make([]DailyWorkout, 0, len(days))
	for _, day := range days {
		workout, err := assembleDay(day, snap, today)
		if err != nil {
			return MonthlyPlan{}, err
		}
		workouts = append(workouts, workout)
	}

	return MonthlyPlan{
		Year:      year,
		Month:     month,
		StartDate: days[0],
		EndDate:   days[len(days)-1],
		Workouts:  workouts,
	}, nil
}

// assembleDay builds one day and applies the status override rules: a
// recorded completed event wins, then a recorded missed event, then the
// missed inference for past workout days, otherwise scheduled. Events on rest
// days are a data anomaly and are ignored.
func assembleDay(date time.Time, snap snapshot, today time.Time) (DailyWorkout, error) {
	// Dates before the anchor carry no day number; selection falls back to
	// day-1 semantics for them just like for users without an anchor.
	var dayNumber *int
	effectiveDayNumber := 0
	if snap.hasAnchor {
		if n := DayNumberFor(snap.anchor, date); n >= 1 {
			dayNumber = &n
			effectiveDayNumber = n
		}
	}

	dp := selectDayPlan(effectiveDayNumber, date.Weekday(), snap.profile)
	workout, err := buildDailyWorkout(date, dayNumber, dp)
	if err != nil {
		return DailyWorkout{}, err
	}

	if workout.Type == DayTypeRest {
		return workout, nil
	}

	switch {
	case contains(snap.completed, date):
		workout.Status = StatusCompleted
	case contains(snap.missed, date):
		workout.Status = StatusMissed
	case date.Before(NormalizeDate(today)):
		workout.Status = StatusMissed
	default:
		workout.Status = StatusScheduled
	}

	return workout, nil
}

func contains(dates map[time.Time]struct{}, date time.Time) bool {
	_, ok := dates[NormalizeDate(date)]
	return ok
}
