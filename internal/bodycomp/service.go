package bodycomp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harrysikes/shredai/internal/plan"
	"github.com/harrysikes/shredai/internal/sqlite"
)

const (
	methodHeuristic = "heuristic"
	methodRefined   = "llm_refined"
)

// AnchorSink receives the day-one anchor when the first measurement lands.
type AnchorSink interface {
	EstablishDayOne(ctx context.Context, date time.Time) error
}

// Service records body-composition measurements for the current user.
type Service struct {
	repo      *sqliteRepository
	estimator *Estimator
	refiner   *refiner
	profiles  plan.ProfileSource
	anchors   AnchorSink
	logger    *slog.Logger
}

// NewService wires the measurement pipeline. An empty openaiAPIKey disables
// LLM refinement and the heuristic estimate is used as is.
func NewService(
	db *sqlite.Database,
	logger *slog.Logger,
	openaiAPIKey string,
	profiles plan.ProfileSource,
	anchors AnchorSink,
) *Service {
	var r *refiner
	if openaiAPIKey != "" {
		r = newRefiner(openaiAPIKey)
	}
	return &Service{
		repo:      newSQLiteRepository(db, logger),
		estimator: NewEstimator(nil),
		refiner:   r,
		profiles:  profiles,
		anchors:   anchors,
		logger:    logger,
	}
}

// Record estimates body fat from the stored survey profile and persists the
// measurement. The first measurement establishes the journey's day one, so
// the anchor always comes from a measurement and never from workout events.
func (s *Service) Record(ctx context.Context, date time.Time) (Measurement, error) {
	date = plan.NormalizeDate(date)

	prof, err := s.profiles.Get(ctx)
	if err != nil {
		return Measurement{}, fmt.Errorf("get profile: %w", err)
	}

	estimate := s.estimator.Estimate(prof)
	method := methodHeuristic

	if s.refiner != nil {
		refined, refineErr := s.refiner.refine(ctx, prof, estimate)
		if refineErr != nil {
			// Refinement is best effort, keep the heuristic value.
			s.logger.LogAttrs(ctx, slog.LevelWarn, "estimate refinement failed",
				slog.Any("error", refineErr))
		} else {
			estimate = refined
			method = methodRefined
		}
	}

	measurement := Measurement{
		Date:              date,
		BodyFatPercentage: estimate,
		Method:            method,
	}
	if err = s.repo.save(ctx, measurement); err != nil {
		return Measurement{}, fmt.Errorf("save measurement: %w", err)
	}

	if err = s.anchors.EstablishDayOne(ctx, date); err != nil {
		return Measurement{}, fmt.Errorf("establish day one: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "measurement recorded",
		slog.Time("date", date),
		slog.Float64("bodyFatPercentage", estimate),
		slog.String("method", method))

	return measurement, nil
}

// History returns the user's measurements in chronological order.
func (s *Service) History(ctx context.Context) ([]Measurement, error) {
	measurements, err := s.repo.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	return measurements, nil
}
