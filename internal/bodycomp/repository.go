package bodycomp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/harrysikes/shredai/internal/contexthelpers"
	"github.com/harrysikes/shredai/internal/sqlite"
)

const dateFormat = time.DateOnly

// Measurement is one recorded body-composition reading.
type Measurement struct {
	Date              time.Time `json:"date"`
	BodyFatPercentage float64   `json:"body_fat_percentage"`
	Method            string    `json:"method"`
}

// sqliteRepository stores at most one measurement per user and day.
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

// save upserts the measurement. Recording twice on one day keeps the latest
// reading.
func (r *sqliteRepository) save(ctx context.Context, m Measurement) error {
	userID := contexthelpers.CurrentUserID(ctx)
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO measurements (user_id, measured_on, body_fat_percentage, method)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, measured_on) DO UPDATE SET
			body_fat_percentage = excluded.body_fat_percentage,
			method = excluded.method,
			created_at = CURRENT_TIMESTAMP`,
		userID, m.Date.UTC().Format(dateFormat), m.BodyFatPercentage, m.Method)
	if err != nil {
		return fmt.Errorf("upsert measurement: %w", err)
	}
	return nil
}

// list returns the user's measurements in chronological order.
func (r *sqliteRepository) list(ctx context.Context) (_ []Measurement, err error) {
	userID := contexthelpers.CurrentUserID(ctx)
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT measured_on, body_fat_percentage, method
		FROM measurements
		WHERE user_id = ?
		ORDER BY measured_on`, userID)
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var measurements []Measurement
	for rows.Next() {
		var (
			dateStr     string
			measurement Measurement
		)
		if err = rows.Scan(&dateStr, &measurement.BodyFatPercentage, &measurement.Method); err != nil {
			return nil, fmt.Errorf("scan measurement row: %w", err)
		}
		measurement.Date, err = time.ParseInLocation(dateFormat, dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse measurement date %q: %w", dateStr, err)
		}
		measurements = append(measurements, measurement)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return measurements, nil
}
