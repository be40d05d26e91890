package adherence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/harrysikes/shredai/internal/contexthelpers"
	"github.com/harrysikes/shredai/internal/plan"
	"github.com/harrysikes/shredai/internal/sqlite"
)

// sqliteEventRepository stores one adherence event per user and date. The
// primary key on (user_id, event_date) is what keeps completed and missed
// mutually exclusive: recording one overwrites the other.
type sqliteEventRepository struct {
	baseRepository
}

func newSQLiteEventRepository(db *sqlite.Database, logger *slog.Logger) *sqliteEventRepository {
	return &sqliteEventRepository{baseRepository: newBaseRepository(db, logger)}
}

// setStatus records status for the date, replacing any previous event.
func (r *sqliteEventRepository) setStatus(ctx context.Context, date time.Time, status plan.Status) error {
	userID := contexthelpers.CurrentUserID(ctx)
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_events (user_id, event_date, status)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, event_date) DO UPDATE SET
			status = excluded.status,
			recorded_at = CURRENT_TIMESTAMP`,
		userID, formatDate(date), string(status))
	if err != nil {
		return fmt.Errorf("upsert workout event: %w", err)
	}
	return nil
}

// setStatusIfAbsent records status only when the date has no event yet. It
// reports whether a row was written. The nightly sweep uses this so that a
// completion recorded during the day is never downgraded.
func (r *sqliteEventRepository) setStatusIfAbsent(
	ctx context.Context,
	date time.Time,
	status plan.Status,
) (bool, error) {
	userID := contexthelpers.CurrentUserID(ctx)
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_events (user_id, event_date, status)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, event_date) DO NOTHING`,
		userID, formatDate(date), string(status))
	if err != nil {
		return false, fmt.Errorf("insert workout event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// status returns the recorded event status for the date or ErrNotFound.
func (r *sqliteEventRepository) status(ctx context.Context, date time.Time) (plan.Status, error) {
	userID := contexthelpers.CurrentUserID(ctx)
	var status string
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT status
		FROM workout_events
		WHERE user_id = ? AND event_date = ?`,
		userID, formatDate(date)).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return plan.StatusNone, ErrNotFound
	}
	if err != nil {
		return plan.StatusNone, fmt.Errorf("query workout event: %w", err)
	}
	return plan.Status(status), nil
}

// datesWithStatus returns every event date carrying the given status.
func (r *sqliteEventRepository) datesWithStatus(
	ctx context.Context,
	status plan.Status,
) (_ map[time.Time]struct{}, err error) {
	userID := contexthelpers.CurrentUserID(ctx)
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT event_date
		FROM workout_events
		WHERE user_id = ? AND status = ?`,
		userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("query workout events: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	dates := make(map[time.Time]struct{})
	for rows.Next() {
		var dateStr string
		if err = rows.Scan(&dateStr); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		date, parseErr := parseDate(dateStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parse event date %q: %w", dateStr, parseErr)
		}
		dates[date] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return dates, nil
}
