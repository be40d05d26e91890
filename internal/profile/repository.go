package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/harrysikes/shredai/internal/contexthelpers"
	"github.com/harrysikes/shredai/internal/plan"
	"github.com/harrysikes/shredai/internal/sqlite"
)

// sqliteRepository stores one survey profile row per user.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{
		db:     db,
		logger: logger,
	}
}

// get returns the stored profile. A user who has not answered the survey gets
// the zero profile, which downstream selection treats as defaults.
func (r *sqliteRepository) get(ctx context.Context) (plan.SurveyProfile, error) {
	userID := contexthelpers.CurrentUserID(ctx)
	var prof plan.SurveyProfile
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT sex, exercise_frequency, workout_goal
		FROM survey_profiles
		WHERE user_id = ?`, userID).Scan(
		&prof.Sex,
		&prof.ExerciseFrequency,
		&prof.WorkoutGoal,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return plan.SurveyProfile{}, nil
	}
	if err != nil {
		return plan.SurveyProfile{}, fmt.Errorf("query survey profile: %w", err)
	}
	return prof, nil
}

// set saves the profile, replacing any previous answers.
func (r *sqliteRepository) set(ctx context.Context, prof plan.SurveyProfile) error {
	userID := contexthelpers.CurrentUserID(ctx)
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO survey_profiles (user_id, sex, exercise_frequency, workout_goal)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			sex = excluded.sex,
			exercise_frequency = excluded.exercise_frequency,
			workout_goal = excluded.workout_goal,
			updated_at = CURRENT_TIMESTAMP`,
		userID,
		prof.Sex,
		prof.ExerciseFrequency,
		prof.WorkoutGoal,
	)
	if err != nil {
		return fmt.Errorf("upsert survey profile: %w", err)
	}
	return nil
}
