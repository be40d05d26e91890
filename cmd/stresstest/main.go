// Command stresstest drives many concurrent simulated devices against a
// running server and fails when the success rate drops below the threshold.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/harrysikes/shredai/internal/logging"
	"github.com/harrysikes/shredai/internal/plan"
	"github.com/harrysikes/shredai/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	deviceCount          = 50
	maxConcurrentDevices = 10
	scenarioTimeout      = 30 * time.Second
	successRateThreshold = 95.0
	percentageMultiplier = 100
)

//nolint:gochecknoglobals // enumerated survey answers for random profiles.
var (
	frequencies = []plan.Frequency{
		plan.FrequencyNever, plan.FrequencyRarely, plan.FrequencySometimes,
		plan.FrequencyOften, plan.FrequencyVeryOften,
	}
	goals = []plan.Goal{
		plan.GoalLoseWeight, plan.GoalBuildMuscle, plan.GoalMaintain, plan.GoalImproveFitness,
	}
)

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // only the hostname is expected.
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname>")
		os.Exit(1)
	}

	hostname := os.Args[1]
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	baseURL := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		baseURL = "http://" + hostname
	}

	start := time.Now()
	var succeeded, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDevices)
	for device := range deviceCount {
		g.Go(func() error {
			if err := runDeviceScenario(gctx, baseURL); err != nil {
				failed.Add(1)
				logger.LogAttrs(gctx, slog.LevelWarn, "device scenario failed",
					slog.Int("device", device), slog.Any("error", err))
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "stresstest aborted", slog.Any("error", err))
		os.Exit(1)
	}

	total := succeeded.Load() + failed.Load()
	successRate := float64(succeeded.Load()) / float64(total) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "stresstest finished",
		slog.Int64("succeeded", succeeded.Load()),
		slog.Int64("failed", failed.Load()),
		slog.Float64("successRate", successRate),
		slog.Duration("duration", time.Since(start)))

	if successRate < successRateThreshold {
		logger.LogAttrs(ctx, slog.LevelError, "success rate below threshold",
			slog.Float64("threshold", successRateThreshold))
		os.Exit(1)
	}
}

// runDeviceScenario walks one fresh device through the whole API surface.
func runDeviceScenario(ctx context.Context, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, scenarioTimeout)
	defer cancel()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("new cookie jar: %w", err)
	}
	client := &http.Client{Jar: jar, Timeout: scenarioTimeout}

	prof := plan.SurveyProfile{
		Sex:               plan.SexMale,
		ExerciseFrequency: frequencies[rand.IntN(len(frequencies))],
		WorkoutGoal:       goals[rand.IntN(len(goals))],
	}
	if err = expectStatus(ctx, client, http.MethodPut, baseURL+"/api/profile", prof, http.StatusOK); err != nil {
		return fmt.Errorf("put profile: %w", err)
	}

	if err = expectStatus(ctx, client,
		http.MethodPost, baseURL+"/api/measurements", nil, http.StatusCreated); err != nil {
		return fmt.Errorf("post measurement: %w", err)
	}

	now := time.Now()
	planURL := fmt.Sprintf("%s/api/plan/%d/%d", baseURL, now.Year(), int(now.Month()))
	if err = expectStatus(ctx, client, http.MethodGet, planURL, nil, http.StatusOK); err != nil {
		return fmt.Errorf("get plan: %w", err)
	}

	workoutURL := fmt.Sprintf("%s/api/workouts/%s", baseURL, now.Format(time.DateOnly))
	if err = expectStatus(ctx, client, http.MethodGet, workoutURL, nil, http.StatusOK); err != nil {
		return fmt.Errorf("get workout: %w", err)
	}

	return nil
}

func expectStatus(
	ctx context.Context,
	client *http.Client,
	method, url string,
	body any,
	want int,
) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if _, err = io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("drain body: %w", err)
	}
	if resp.StatusCode != want {
		return fmt.Errorf("%s %s: status %d, want %d", method, url, resp.StatusCode, want)
	}
	return nil
}
