package main

import (
	"context"
	"net/http"
	"time"

	"github.com/harrysikes/shredai/internal/plan"
)

// workoutGET serves one day of the plan, reconciled against recorded events.
func (app *application) workoutGET(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	workout, err := app.planService.DailyWorkout(r.Context(), date, plan.NormalizeDate(time.Now()))
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, workout)
}

// workoutCompletePOST marks the workout on the date as completed.
func (app *application) workoutCompletePOST(w http.ResponseWriter, r *http.Request) {
	app.recordEvent(w, r, app.adherenceService.MarkCompleted)
}

// workoutMissPOST marks the workout on the date as missed.
func (app *application) workoutMissPOST(w http.ResponseWriter, r *http.Request) {
	app.recordEvent(w, r, app.adherenceService.MarkMissed)
}

func (app *application) recordEvent(
	w http.ResponseWriter,
	r *http.Request,
	mark func(ctx context.Context, date time.Time) error,
) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	// Rest days never carry a status, so events against them are rejected
	// rather than stored as anomalies.
	isWorkoutDay, err := app.planService.IsWorkoutDay(r.Context(), date)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if !isWorkoutDay {
		app.clientError(w, r, http.StatusConflict, "not a workout day")
		return
	}

	if err := mark(r.Context(), date); err != nil {
		app.serverError(w, r, err)
		return
	}

	workout, err := app.planService.DailyWorkout(r.Context(), date, plan.NormalizeDate(time.Now()))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, workout)
}
