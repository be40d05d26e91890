package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/harrysikes/shredai/internal/adherence"
	"github.com/harrysikes/shredai/internal/bodycomp"
	"github.com/harrysikes/shredai/internal/plan"
	"github.com/harrysikes/shredai/internal/profile"
	"github.com/harrysikes/shredai/internal/sqlite"
	"github.com/harrysikes/shredai/internal/testhelpers"
)

// newTestServer spins up the whole application against an in-memory database
// and returns a client with a cookie jar so the device session persists
// across requests.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(t.Context(), ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	adherenceService := adherence.NewService(db, logger)
	profileService := profile.NewService(db, logger)
	planService := plan.NewService(adherenceService, profileService, logger)
	bodycompService := bodycomp.NewService(db, logger, "", profileService, adherenceService)

	sessionManager := initializeSessionManager(db)
	// httptest serves plain HTTP, so the Secure flag would drop the cookie.
	sessionManager.Cookie.Secure = false

	app := application{
		logger:           logger,
		sessionManager:   sessionManager,
		planService:      planService,
		adherenceService: adherenceService,
		profileService:   profileService,
		bodycompService:  bodycompService,
	}

	server := httptest.NewServer(app.routes())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("new cookie jar: %v", err)
	}
	client := server.Client()
	client.Jar = jar

	return server, client
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(t.Context(), method, url, reqBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err = resp.Body.Close(); err != nil {
		t.Fatalf("close response body: %v", err)
	}
	return resp, respBody
}

func TestHealthyEndpoint(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)

	resp, body := doJSON(t, client, http.MethodGet, server.URL+"/api/healthy", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("body = %s, want status ok", body)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)

	resp, body := doJSON(t, client, http.MethodGet, server.URL+"/api/profile", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	var got plan.SurveyProfile
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal profile: %v", err)
	}
	if got != (plan.SurveyProfile{}) {
		t.Errorf("fresh profile = %+v, want zero", got)
	}

	want := plan.SurveyProfile{
		Sex:               plan.SexFemale,
		ExerciseFrequency: plan.FrequencyOften,
		WorkoutGoal:       plan.GoalLoseWeight,
	}
	resp, _ = doJSON(t, client, http.MethodPut, server.URL+"/api/profile", want)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
	}

	resp, body = doJSON(t, client, http.MethodGet, server.URL+"/api/profile", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal profile: %v", err)
	}
	if got != want {
		t.Errorf("profile = %+v, want %+v", got, want)
	}
}

func TestProfileRejectsUnknownAnswers(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)

	resp, _ := doJSON(t, client, http.MethodPut, server.URL+"/api/profile", map[string]string{
		"sex":                "other",
		"exercise_frequency": "rarely",
		"workout_goal":       "build_muscle",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMeasurementAnchorsAndPlanReconciles(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)

	prof := plan.SurveyProfile{
		Sex:               plan.SexMale,
		ExerciseFrequency: plan.FrequencyRarely,
		WorkoutGoal:       plan.GoalBuildMuscle,
	}
	resp, _ := doJSON(t, client, http.MethodPut, server.URL+"/api/profile", prof)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT profile status = %d, want 200", resp.StatusCode)
	}

	// Monday 2024-03-04 becomes day one.
	resp, body := doJSON(t, client, http.MethodPost, server.URL+"/api/measurements",
		measurementRequest{Date: "2024-03-04"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST measurement status = %d, want 201: %s", resp.StatusCode, body)
	}
	var measurement bodycomp.Measurement
	if err := json.Unmarshal(body, &measurement); err != nil {
		t.Fatalf("unmarshal measurement: %v", err)
	}
	if measurement.BodyFatPercentage <= 0 {
		t.Errorf("body fat = %v, want positive", measurement.BodyFatPercentage)
	}

	resp, body = doJSON(t, client, http.MethodGet, server.URL+"/api/plan/2024/3", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET plan status = %d, want 200: %s", resp.StatusCode, body)
	}
	var monthlyPlan plan.MonthlyPlan
	if err := json.Unmarshal(body, &monthlyPlan); err != nil {
		t.Fatalf("unmarshal plan: %v", err)
	}
	if len(monthlyPlan.Workouts) != 31 {
		t.Fatalf("plan has %d workouts, want 31", len(monthlyPlan.Workouts))
	}

	var dayOne plan.DailyWorkout
	for _, workout := range monthlyPlan.Workouts {
		if workout.Date.Day() == 4 {
			dayOne = workout
		}
	}
	if dayOne.DayNumber == nil || *dayOne.DayNumber != 1 {
		t.Errorf("day number = %v, want 1", dayOne.DayNumber)
	}
	if dayOne.Focus != "Upper Body" {
		t.Errorf("focus = %q, want Upper Body", dayOne.Focus)
	}
	// The date is long past without a recorded event, so it reads as missed.
	if dayOne.Status != plan.StatusMissed {
		t.Errorf("status = %q, want missed", dayOne.Status)
	}

	// Completing it flips the inferred miss into a durable completion.
	resp, body = doJSON(t, client, http.MethodPost, server.URL+"/api/workouts/2024-03-04/complete", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST complete status = %d, want 200: %s", resp.StatusCode, body)
	}
	var completed plan.DailyWorkout
	if err := json.Unmarshal(body, &completed); err != nil {
		t.Fatalf("unmarshal workout: %v", err)
	}
	if completed.Status != plan.StatusCompleted {
		t.Errorf("status = %q, want completed", completed.Status)
	}

	// Tuesday is a rest day under the rarely pattern.
	resp, _ = doJSON(t, client, http.MethodPost, server.URL+"/api/workouts/2024-03-05/complete", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("rest day complete status = %d, want 409", resp.StatusCode)
	}

	resp, body = doJSON(t, client, http.MethodGet, server.URL+"/api/workouts/2024-03-04", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET workout status = %d, want 200", resp.StatusCode)
	}
	var single plan.DailyWorkout
	if err := json.Unmarshal(body, &single); err != nil {
		t.Fatalf("unmarshal workout: %v", err)
	}
	if single.Status != plan.StatusCompleted {
		t.Errorf("single workout status = %q, want completed", single.Status)
	}
}

func TestPlanValidation(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)

	resp, _ := doJSON(t, client, http.MethodGet, server.URL+"/api/plan/2024/13", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("month 13 status = %d, want 400", resp.StatusCode)
	}
	resp, _ = doJSON(t, client, http.MethodGet, server.URL+"/api/plan/2024/x", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("non-numeric month status = %d, want 404", resp.StatusCode)
	}
}

func TestExercisesEndpoint(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)

	resp, body := doJSON(t, client, http.MethodGet, server.URL+"/api/exercises/Upper%20Body", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	var got exercisesResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal exercises: %v", err)
	}
	if got.Intensity != plan.IntensityMedium {
		t.Errorf("intensity = %q, want medium default", got.Intensity)
	}
	if len(got.Exercises) < 4 {
		t.Fatalf("roster has %d exercises, want at least 4", len(got.Exercises))
	}
	for _, exercise := range got.Exercises {
		if !strings.Contains(exercise.TipHTML, "<") {
			t.Errorf("tip for %s not rendered to HTML: %q", exercise.Name, exercise.TipHTML)
		}
	}

	resp, _ = doJSON(t, client, http.MethodGet, server.URL+"/api/exercises/Underwater%20Basket", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown focus status = %d, want 404", resp.StatusCode)
	}

	resp, _ = doJSON(t, client,
		http.MethodGet, fmt.Sprintf("%s/api/exercises/Push?intensity=extreme", server.URL), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad intensity status = %d, want 400", resp.StatusCode)
	}

	resp, body = doJSON(t, client, http.MethodGet, server.URL+"/api/exercises", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("index status = %d, want 200", resp.StatusCode)
	}
	var index struct {
		Focuses []string `json:"focuses"`
	}
	if err := json.Unmarshal(body, &index); err != nil {
		t.Fatalf("unmarshal focus index: %v", err)
	}
	if !slices.Contains(index.Focuses, "Upper Body") {
		t.Errorf("focus index %v missing Upper Body", index.Focuses)
	}
}

func TestMeasurementHistoryPerDevice(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)

	resp, _ := doJSON(t, client, http.MethodPost, server.URL+"/api/measurements",
		measurementRequest{Date: "2024-03-04"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", resp.StatusCode)
	}

	resp, body := doJSON(t, client, http.MethodGet, server.URL+"/api/measurements", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	var history []bodycomp.Measurement
	if err := json.Unmarshal(body, &history); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history has %d entries, want 1", len(history))
	}

	// A different device with its own cookie jar sees nothing.
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("new cookie jar: %v", err)
	}
	otherClient := server.Client()
	otherClient.Jar = jar
	resp, body = doJSON(t, otherClient, http.MethodGet, server.URL+"/api/measurements", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	history = nil
	if err := json.Unmarshal(body, &history); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("other device sees %d entries, want 0", len(history))
	}
}
