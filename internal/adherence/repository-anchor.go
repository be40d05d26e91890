package adherence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/harrysikes/shredai/internal/contexthelpers"
	"github.com/harrysikes/shredai/internal/sqlite"
)

// sqliteAnchorRepository stores the immutable day-one anchor per user.
type sqliteAnchorRepository struct {
	baseRepository
}

func newSQLiteAnchorRepository(db *sqlite.Database, logger *slog.Logger) *sqliteAnchorRepository {
	return &sqliteAnchorRepository{baseRepository: newBaseRepository(db, logger)}
}

// establish sets the anchor if the user has none. An existing anchor is never
// overwritten, whatever date is passed.
func (r *sqliteAnchorRepository) establish(ctx context.Context, date time.Time) error {
	userID := contexthelpers.CurrentUserID(ctx)
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO day_one_anchors (user_id, anchor_date)
		VALUES (?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, formatDate(date))
	if err != nil {
		return fmt.Errorf("insert day-one anchor: %w", err)
	}
	return nil
}

// get returns the anchor date and whether one has been established.
func (r *sqliteAnchorRepository) get(ctx context.Context) (time.Time, bool, error) {
	userID := contexthelpers.CurrentUserID(ctx)
	var dateStr string
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT anchor_date
		FROM day_one_anchors
		WHERE user_id = ?`, userID).Scan(&dateStr)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query day-one anchor: %w", err)
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse anchor date %q: %w", dateStr, err)
	}
	return date, true, nil
}

// listUserIDs returns every user with an established anchor.
func (r *sqliteAnchorRepository) listUserIDs(ctx context.Context) (_ []string, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `SELECT user_id FROM day_one_anchors`)
	if err != nil {
		return nil, fmt.Errorf("query anchored users: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err = rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		userIDs = append(userIDs, userID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return userIDs, nil
}
