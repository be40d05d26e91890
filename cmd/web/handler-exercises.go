package main

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/harrysikes/shredai/internal/plan"
	"github.com/yuin/goldmark"
)

type exerciseResponse struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
	TipHTML     string `json:"tip_html"`
}

type exercisesResponse struct {
	Focus     string             `json:"focus"`
	Intensity plan.Intensity     `json:"intensity"`
	Exercises []exerciseResponse `json:"exercises"`
}

// focusesGET lists every focus label the catalog can serve rosters for.
func (app *application) focusesGET(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, map[string][]string{"focuses": plan.Focuses()})
}

// exercisesGET serves the catalog roster for a focus, with the coaching tips
// rendered from markdown to HTML.
func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	focus := r.PathValue("focus")

	intensity := plan.Intensity(r.URL.Query().Get("intensity"))
	if intensity == "" {
		intensity = plan.IntensityMedium
	}
	switch intensity {
	case plan.IntensityLow, plan.IntensityMedium, plan.IntensityHigh:
	default:
		app.clientError(w, r, http.StatusBadRequest, "intensity must be low, medium, or high")
		return
	}

	prescriptions, err := plan.Exercises(focus, intensity)
	if err != nil {
		if errors.Is(err, plan.ErrUnknownFocus) {
			http.NotFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	resp := exercisesResponse{
		Focus:     focus,
		Intensity: intensity,
		Exercises: make([]exerciseResponse, 0, len(prescriptions)),
	}
	for _, p := range prescriptions {
		var tipHTML bytes.Buffer
		if err = goldmark.Convert([]byte(p.Tip), &tipHTML); err != nil {
			app.serverError(w, r, err)
			return
		}
		resp.Exercises = append(resp.Exercises, exerciseResponse{
			Name:        p.Name,
			Sets:        p.Sets,
			Reps:        p.Reps,
			RestSeconds: p.RestSeconds,
			TipHTML:     tipHTML.String(),
		})
	}

	app.writeJSON(w, r, http.StatusOK, resp)
}
