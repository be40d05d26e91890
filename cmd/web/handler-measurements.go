package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type measurementRequest struct {
	// Date defaults to today when omitted.
	Date string `json:"date,omitempty"`
}

// measurementsPOST estimates body fat from the stored survey profile and
// records the measurement. The first measurement anchors day one.
func (app *application) measurementsPOST(w http.ResponseWriter, r *http.Request) {
	// The body is optional, an empty request records a measurement for today.
	var req measurementRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		app.clientError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	date := time.Now()
	if req.Date != "" {
		var err error
		if date, err = time.Parse(time.DateOnly, req.Date); err != nil {
			app.clientError(w, r, http.StatusBadRequest, "date must be formatted as 2006-01-02")
			return
		}
	}

	measurement, err := app.bodycompService.Record(r.Context(), date)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, measurement)
}

// measurementsGET serves the measurement history in chronological order.
func (app *application) measurementsGET(w http.ResponseWriter, r *http.Request) {
	history, err := app.bodycompService.History(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, history)
}
