package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/harrysikes/shredai/internal/plan"
)

// planGET serves the assembled calendar for one month.
func (app *application) planGET(w http.ResponseWriter, r *http.Request) {
	year, month, ok := app.parseMonthParams(w, r)
	if !ok {
		return
	}

	monthlyPlan, err := app.planService.MonthlyPlan(r.Context(), year, month, plan.NormalizeDate(time.Now()))
	if err != nil {
		if errors.Is(err, plan.ErrInvalidMonth) || errors.Is(err, plan.ErrInvalidYear) {
			app.clientError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, monthlyPlan)
}
