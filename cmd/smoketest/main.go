// Command smoketest exercises a running server end to end: it answers the
// survey, records a measurement, and fetches the resulting plan.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	"github.com/harrysikes/shredai/internal/logging"
	"github.com/harrysikes/shredai/internal/plan"
	"github.com/harrysikes/shredai/internal/testhelpers"
)

const readyTimeout = 30 * time.Second

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // only the hostname is expected.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	hostname := os.Args[1]
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	baseURL := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		baseURL = "http://" + hostname
	}

	start := time.Now()
	client, err := newClient()
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}

	if err = waitForReady(ctx, client, baseURL+"/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready", slog.Any("error", err))
		os.Exit(1)
	}

	if err = testPlanFlow(ctx, client, baseURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "smoketest failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "smoketest passed", slog.Duration("duration", time.Since(start)))
}

func newClient() (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("new cookie jar: %w", err)
	}
	return &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second, //nolint:mnd // generous request timeout.
	}, nil
}

func waitForReady(ctx context.Context, client *http.Client, url string) error {
	deadline := time.Now().Add(readyTimeout)
	for {
		status, _, err := request(ctx, client, http.MethodGet, url, nil)
		if err == nil && status == http.StatusOK {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("server not ready within %s: %w", readyTimeout, err)
		}
		time.Sleep(time.Second)
	}
}

func testPlanFlow(ctx context.Context, client *http.Client, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	prof := plan.SurveyProfile{
		Sex:               plan.SexMale,
		ExerciseFrequency: plan.FrequencySometimes,
		WorkoutGoal:       plan.GoalBuildMuscle,
	}
	status, _, err := request(ctx, client, http.MethodPut, baseURL+"/api/profile", prof)
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("put profile: status %d", status)
	}

	status, _, err = request(ctx, client, http.MethodPost, baseURL+"/api/measurements", nil)
	if err != nil {
		return fmt.Errorf("post measurement: %w", err)
	}
	if status != http.StatusCreated {
		return fmt.Errorf("post measurement: status %d", status)
	}

	now := time.Now()
	planURL := fmt.Sprintf("%s/api/plan/%d/%d", baseURL, now.Year(), int(now.Month()))
	status, body, err := request(ctx, client, http.MethodGet, planURL, nil)
	if err != nil {
		return fmt.Errorf("get plan: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("get plan: status %d", status)
	}

	var monthlyPlan plan.MonthlyPlan
	if err = json.Unmarshal(body, &monthlyPlan); err != nil {
		return fmt.Errorf("parse plan: %w", err)
	}
	if len(monthlyPlan.Workouts) == 0 {
		return fmt.Errorf("plan for %s has no days", now.Format("2006-01"))
	}
	return nil
}

func request(ctx context.Context, client *http.Client, method, url string, body any) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}
