package adherence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harrysikes/shredai/internal/plan"
	"github.com/harrysikes/shredai/internal/sqlite"
)

// Service exposes adherence tracking for the current user. It satisfies
// plan.EventSource so the calendar can reconcile generated days against the
// recorded history.
type Service struct {
	events  *sqliteEventRepository
	anchors *sqliteAnchorRepository
	logger  *slog.Logger
}

func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		events:  newSQLiteEventRepository(db, logger),
		anchors: newSQLiteAnchorRepository(db, logger),
		logger:  logger,
	}
}

// MarkCompleted records the workout on date as completed. A previously
// recorded miss for the same date is replaced.
func (s *Service) MarkCompleted(ctx context.Context, date time.Time) error {
	date = plan.NormalizeDate(date)
	if err := s.events.setStatus(ctx, date, plan.StatusCompleted); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "workout marked completed",
		slog.Time("date", date))
	return nil
}

// MarkMissed records the workout on date as missed. A previously recorded
// completion for the same date is replaced.
func (s *Service) MarkMissed(ctx context.Context, date time.Time) error {
	date = plan.NormalizeDate(date)
	if err := s.events.setStatus(ctx, date, plan.StatusMissed); err != nil {
		return fmt.Errorf("mark missed: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "workout marked missed",
		slog.Time("date", date))
	return nil
}

// Status returns the recorded status for date or ErrNotFound when no event
// exists.
func (s *Service) Status(ctx context.Context, date time.Time) (plan.Status, error) {
	return s.events.status(ctx, plan.NormalizeDate(date))
}

// EstablishDayOne anchors the user's journey to date. The first call wins:
// once an anchor exists, later calls are no-ops regardless of the date, so
// recorded history never shifts under the user.
func (s *Service) EstablishDayOne(ctx context.Context, date time.Time) error {
	date = plan.NormalizeDate(date)
	if err := s.anchors.establish(ctx, date); err != nil {
		return fmt.Errorf("establish day one: %w", err)
	}
	return nil
}

// DayOne returns the journey anchor and whether one has been established.
func (s *Service) DayOne(ctx context.Context) (time.Time, bool, error) {
	anchor, ok, err := s.anchors.get(ctx)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("day one: %w", err)
	}
	return anchor, ok, nil
}

// CompletedDates returns the set of dates with a recorded completion.
func (s *Service) CompletedDates(ctx context.Context) (map[time.Time]struct{}, error) {
	dates, err := s.events.datesWithStatus(ctx, plan.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("completed dates: %w", err)
	}
	return dates, nil
}

// MissedDates returns the set of dates with a recorded miss.
func (s *Service) MissedDates(ctx context.Context) (map[time.Time]struct{}, error) {
	dates, err := s.events.datesWithStatus(ctx, plan.StatusMissed)
	if err != nil {
		return nil, fmt.Errorf("missed dates: %w", err)
	}
	return dates, nil
}
