package plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/harrysikes/shredai/internal/testhelpers"
)

// fakeEventSource is an in-memory EventSource for assembler tests.
type fakeEventSource struct {
	completed map[time.Time]struct{}
	missed    map[time.Time]struct{}
	anchor    time.Time
	hasAnchor bool
	err       error
}

func (f *fakeEventSource) CompletedDates(_ context.Context) (map[time.Time]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.completed, nil
}

func (f *fakeEventSource) MissedDates(_ context.Context) (map[time.Time]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.missed, nil
}

func (f *fakeEventSource) DayOne(_ context.Context) (time.Time, bool, error) {
	if f.err != nil {
		return time.Time{}, false, f.err
	}
	return f.anchor, f.hasAnchor, nil
}

type fakeProfileSource struct {
	profile SurveyProfile
	err     error
}

func (f *fakeProfileSource) Get(_ context.Context) (SurveyProfile, error) {
	return f.profile, f.err
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dateSet(dates ...time.Time) map[time.Time]struct{} {
	set := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

func newTestService(t *testing.T, events EventSource, profiles ProfileSource) *Service {
	t.Helper()
	return NewService(events, profiles, testhelpers.NewLogger(testhelpers.NewWriter(t)))
}

func TestMonthlyPlanCompleteness(t *testing.T) {
	events := &fakeEventSource{anchor: date(2024, time.March, 4), hasAnchor: true}
	profiles := &fakeProfileSource{
		profile: SurveyProfile{ExerciseFrequency: FrequencyRarely, WorkoutGoal: GoalBuildMuscle},
	}
	svc := newTestService(t, events, profiles)

	monthPlan, err := svc.MonthlyPlan(t.Context(), 2024, time.March, date(2024, time.March, 1))
	if err != nil {
		t.Fatalf("MonthlyPlan returned error: %v", err)
	}

	if len(monthPlan.Workouts) != 31 {
		t.Fatalf("got %d workouts, want 31", len(monthPlan.Workouts))
	}
	if !monthPlan.StartDate.Equal(date(2024, time.March, 1)) {
		t.Errorf("start date = %v", monthPlan.StartDate)
	}
	if !monthPlan.EndDate.Equal(date(2024, time.March, 31)) {
		t.Errorf("end date = %v", monthPlan.EndDate)
	}

	// Contiguous, ascending, no gaps or duplicates.
	for i, workout := range monthPlan.Workouts {
		want := date(2024, time.March, i+1)
		if !workout.Date.Equal(want) {
			t.Errorf("workout %d has date %s, want %s", i, formatDate(workout.Date), formatDate(want))
		}
	}
}

// Matches the worked scenario: day one on Monday 2024-03-04, three workouts a
// week, build-muscle rotation.
func TestMonthlyPlanRotationScenario(t *testing.T) {
	events := &fakeEventSource{anchor: date(2024, time.March, 4), hasAnchor: true}
	profiles := &fakeProfileSource{
		profile: SurveyProfile{ExerciseFrequency: FrequencyRarely, WorkoutGoal: GoalBuildMuscle},
	}
	svc := newTestService(t, events, profiles)

	monthPlan, err := svc.MonthlyPlan(t.Context(), 2024, time.March, date(2024, time.March, 1))
	if err != nil {
		t.Fatalf("MonthlyPlan returned error: %v", err)
	}

	byDate := indexByDate(monthPlan.Workouts)

	dayOne := byDate[date(2024, time.March, 4)]
	if dayOne.Type != DayTypeWorkout || dayOne.Focus != FocusUpperBody {
		t.Errorf("day one = %+v, want Upper Body workout", dayOne)
	}
	if dayOne.DayNumber == nil || *dayOne.DayNumber != 1 {
		t.Errorf("day one number = %v, want 1", dayOne.DayNumber)
	}

	dayThree := byDate[date(2024, time.March, 6)]
	if dayThree.Type != DayTypeWorkout || dayThree.Focus != FocusFullBody {
		t.Errorf("day three = %+v, want Full Body workout", dayThree)
	}

	tuesday := byDate[date(2024, time.March, 5)]
	if tuesday.Type != DayTypeRest {
		t.Errorf("tuesday type = %q, want rest", tuesday.Type)
	}
}

// Focus must be a pure function of day number: assembling March and April
// independently has to agree on every date they both could cover.
func TestMonthlyPlanRotationStableAcrossMonths(t *testing.T) {
	events := &fakeEventSource{anchor: date(2024, time.March, 4), hasAnchor: true}
	profiles := &fakeProfileSource{
		profile: SurveyProfile{ExerciseFrequency: FrequencyVeryOften, WorkoutGoal: GoalBuildMuscle},
	}
	svc := newTestService(t, events, profiles)

	today := date(2024, time.March, 1)
	march, err := svc.MonthlyPlan(t.Context(), 2024, time.March, today)
	if err != nil {
		t.Fatalf("MonthlyPlan March returned error: %v", err)
	}
	april, err := svc.MonthlyPlan(t.Context(), 2024, time.April, today)
	if err != nil {
		t.Fatalf("MonthlyPlan April returned error: %v", err)
	}

	for _, workout := range append(march.Workouts, april.Workouts...) {
		if workout.Type != DayTypeWorkout || workout.DayNumber == nil {
			continue
		}
		want := buildMuscleRotation[(*workout.DayNumber-1)%len(buildMuscleRotation)]
		if workout.Focus != want {
			t.Errorf("date %s day %d focus = %q, want %q",
				formatDate(workout.Date), *workout.DayNumber, workout.Focus, want)
		}
	}

	// The same date assembled via a different call must be identical.
	aprilFirstViaDaily, err := svc.DailyWorkout(t.Context(), date(2024, time.April, 1), today)
	if err != nil {
		t.Fatalf("DailyWorkout returned error: %v", err)
	}
	aprilFirstViaMonth := indexByDate(april.Workouts)[date(2024, time.April, 1)]
	if diff := cmp.Diff(aprilFirstViaMonth, aprilFirstViaDaily); diff != "" {
		t.Errorf("daily and monthly assembly disagree (-month +daily):\n%s", diff)
	}
}

func TestMonthlyPlanStatusReconciliation(t *testing.T) {
	anchor := date(2024, time.March, 4)
	events := &fakeEventSource{
		anchor:    anchor,
		hasAnchor: true,
		completed: dateSet(date(2024, time.March, 4)),
		missed:    dateSet(date(2024, time.March, 6)),
	}
	profiles := &fakeProfileSource{
		profile: SurveyProfile{ExerciseFrequency: FrequencyRarely, WorkoutGoal: GoalBuildMuscle},
	}
	svc := newTestService(t, events, profiles)

	today := date(2024, time.March, 12)
	monthPlan, err := svc.MonthlyPlan(t.Context(), 2024, time.March, today)
	if err != nil {
		t.Fatalf("MonthlyPlan returned error: %v", err)
	}
	byDate := indexByDate(monthPlan.Workouts)

	tests := []struct {
		name string
		day  time.Time
		want Status
	}{
		{name: "recorded completion", day: date(2024, time.March, 4), want: StatusCompleted},
		{name: "recorded miss", day: date(2024, time.March, 6), want: StatusMissed},
		{name: "lapsed day with no event is inferred missed", day: date(2024, time.March, 8), want: StatusMissed},
		{name: "today stays scheduled", day: date(2024, time.March, 12), want: StatusScheduled},
		{name: "future day stays scheduled", day: date(2024, time.March, 15), want: StatusScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := byDate[tt.day].Status; got != tt.want {
				t.Errorf("status for %s = %q, want %q", formatDate(tt.day), got, tt.want)
			}
		})
	}
}

// Events recorded against rest days are a data anomaly and must not leak into
// the calendar.
func TestMonthlyPlanIgnoresEventsOnRestDays(t *testing.T) {
	restTuesday := date(2024, time.March, 5)
	events := &fakeEventSource{
		anchor:    date(2024, time.March, 4),
		hasAnchor: true,
		completed: dateSet(restTuesday),
		missed:    dateSet(date(2024, time.March, 12)),
	}
	profiles := &fakeProfileSource{
		profile: SurveyProfile{ExerciseFrequency: FrequencyRarely, WorkoutGoal: GoalMaintain},
	}
	svc := newTestService(t, events, profiles)

	monthPlan, err := svc.MonthlyPlan(t.Context(), 2024, time.March, date(2024, time.March, 1))
	if err != nil {
		t.Fatalf("MonthlyPlan returned error: %v", err)
	}

	for _, workout := range monthPlan.Workouts {
		if workout.Type != DayTypeRest {
			continue
		}
		if workout.Status != StatusNone {
			t.Errorf("rest day %s has status %q", formatDate(workout.Date), workout.Status)
		}
		if len(workout.Exercises) != 0 {
			t.Errorf("rest day %s has exercises", formatDate(workout.Date))
		}
	}
}

// A user without any measurement still gets a deterministic preview plan.
func TestMonthlyPlanWithoutAnchor(t *testing.T) {
	events := &fakeEventSource{hasAnchor: false}
	profiles := &fakeProfileSource{
		profile: SurveyProfile{ExerciseFrequency: FrequencyOften, WorkoutGoal: GoalLoseWeight},
	}
	svc := newTestService(t, events, profiles)

	// today before the month so no auto-miss inference applies.
	monthPlan, err := svc.MonthlyPlan(t.Context(), 2024, time.April, date(2024, time.March, 30))
	if err != nil {
		t.Fatalf("MonthlyPlan returned error: %v", err)
	}

	for _, workout := range monthPlan.Workouts {
		if workout.DayNumber != nil {
			t.Errorf("date %s has day number without an anchor", formatDate(workout.Date))
		}
		if workout.Status == StatusCompleted || workout.Status == StatusMissed {
			t.Errorf("date %s has adherence status without any events", formatDate(workout.Date))
		}
		if workout.Type == DayTypeWorkout {
			if workout.Focus != FocusCardioStrength {
				t.Errorf("date %s focus = %q, want %q", formatDate(workout.Date), workout.Focus, FocusCardioStrength)
			}
			if workout.Intensity != IntensityHigh {
				t.Errorf("date %s intensity = %q, want high", formatDate(workout.Date), workout.Intensity)
			}
		}
	}
}

// A failed store read must surface, not degrade to an empty event set.
func TestMonthlyPlanFailsClosedOnStoreError(t *testing.T) {
	storeErr := errors.New("store unavailable")
	events := &fakeEventSource{err: storeErr}
	profiles := &fakeProfileSource{profile: SurveyProfile{}}
	svc := newTestService(t, events, profiles)

	_, err := svc.MonthlyPlan(t.Context(), 2024, time.March, date(2024, time.March, 1))
	if !errors.Is(err, storeErr) {
		t.Errorf("error = %v, want wrapped store error", err)
	}
}

func TestMonthlyPlanValidatesInput(t *testing.T) {
	// The event source must never be consulted for invalid input.
	events := &fakeEventSource{err: errors.New("should not be called")}
	profiles := &fakeProfileSource{err: errors.New("should not be called")}
	svc := newTestService(t, events, profiles)

	tests := []struct {
		name    string
		year    int
		month   time.Month
		wantErr error
	}{
		{name: "month zero", year: 2024, month: 0, wantErr: ErrInvalidMonth},
		{name: "month thirteen", year: 2024, month: 13, wantErr: ErrInvalidMonth},
		{name: "year too small", year: 1200, month: time.May, wantErr: ErrInvalidYear},
		{name: "year too large", year: 9999, month: time.May, wantErr: ErrInvalidYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.MonthlyPlan(t.Context(), tt.year, tt.month, date(2024, time.March, 1))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsWorkoutDay(t *testing.T) {
	profiles := &fakeProfileSource{
		profile: SurveyProfile{ExerciseFrequency: FrequencyRarely},
	}
	svc := newTestService(t, &fakeEventSource{}, profiles)

	monday, err := svc.IsWorkoutDay(t.Context(), date(2024, time.March, 4))
	if err != nil {
		t.Fatalf("IsWorkoutDay returned error: %v", err)
	}
	if !monday {
		t.Error("Monday should be a workout day for the rarely pattern")
	}

	sunday, err := svc.IsWorkoutDay(t.Context(), date(2024, time.March, 3))
	if err != nil {
		t.Fatalf("IsWorkoutDay returned error: %v", err)
	}
	if sunday {
		t.Error("Sunday should be a rest day")
	}
}

func indexByDate(workouts []DailyWorkout) map[time.Time]DailyWorkout {
	byDate := make(map[time.Time]DailyWorkout, len(workouts))
	for _, workout := range workouts {
		byDate[workout.Date] = workout
	}
	return byDate
}
