package main

import (
	"net/http"
	"slices"

	"github.com/harrysikes/shredai/internal/plan"
)

// profileGET serves the current user's survey answers.
func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	prof, err := app.profileService.Get(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, prof)
}

// profilePUT replaces the current user's survey answers.
func (app *application) profilePUT(w http.ResponseWriter, r *http.Request) {
	var prof plan.SurveyProfile
	if !app.readJSON(w, r, &prof) {
		return
	}
	if msg, valid := validateProfile(prof); !valid {
		app.clientError(w, r, http.StatusBadRequest, msg)
		return
	}

	if err := app.profileService.Set(r.Context(), prof); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, prof)
}

// validateProfile accepts only known survey answers. Empty values are fine,
// selection treats them as defaults.
func validateProfile(prof plan.SurveyProfile) (string, bool) {
	sexes := []plan.Sex{plan.SexUnknown, plan.SexMale, plan.SexFemale}
	if !slices.Contains(sexes, prof.Sex) {
		return "unknown sex", false
	}
	frequencies := []plan.Frequency{
		plan.FrequencyUnknown, plan.FrequencyNever, plan.FrequencyRarely,
		plan.FrequencySometimes, plan.FrequencyOften, plan.FrequencyVeryOften,
	}
	if !slices.Contains(frequencies, prof.ExerciseFrequency) {
		return "unknown exercise frequency", false
	}
	goals := []plan.Goal{
		plan.GoalUnknown, plan.GoalLoseWeight, plan.GoalBuildMuscle,
		plan.GoalMaintain, plan.GoalImproveFitness,
	}
	if !slices.Contains(goals, prof.WorkoutGoal) {
		return "unknown workout goal", false
	}
	return "", true
}
