// Package profile stores the survey answers that drive plan generation.
package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harrysikes/shredai/internal/plan"
	"github.com/harrysikes/shredai/internal/sqlite"
)

// Service exposes the survey profile for the current user. It satisfies
// plan.ProfileSource.
type Service struct {
	repo   *sqliteRepository
	logger *slog.Logger
}

func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newSQLiteRepository(db, logger),
		logger: logger,
	}
}

// Get returns the current user's profile, zero-valued when the survey has not
// been answered.
func (s *Service) Get(ctx context.Context) (plan.SurveyProfile, error) {
	prof, err := s.repo.get(ctx)
	if err != nil {
		return plan.SurveyProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return prof, nil
}

// Set saves the survey answers for the current user.
func (s *Service) Set(ctx context.Context, prof plan.SurveyProfile) error {
	if err := s.repo.set(ctx, prof); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "survey profile saved",
		slog.String("frequency", string(prof.ExerciseFrequency)),
		slog.String("goal", string(prof.WorkoutGoal)))
	return nil
}
