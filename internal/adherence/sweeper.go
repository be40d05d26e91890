package adherence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harrysikes/shredai/internal/contexthelpers"
	"github.com/harrysikes/shredai/internal/plan"
	"github.com/robfig/cron"
)

// ScheduleSource answers whether a date is a workout day for the user bound
// to the context.
type ScheduleSource interface {
	IsWorkoutDay(ctx context.Context, date time.Time) (bool, error)
}

// Sweeper persists misses for lapsed workout days. The calendar already
// infers these at read time, the sweeper makes them durable so exports and
// future reads agree without re-deriving history.
type Sweeper struct {
	service  *Service
	schedule ScheduleSource
	logger   *slog.Logger
	now      func() time.Time
}

func NewSweeper(service *Service, schedule ScheduleSource, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		service:  service,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Run sweeps nightly until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	c := cron.New()
	err := c.AddFunc("@midnight", func() {
		s.Sweep(context.WithoutCancel(ctx))
	})
	if err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	c.Start()
	<-ctx.Done()
	c.Stop()
	return nil
}

// Sweep records a miss for yesterday for every anchored user whose workout
// day passed without an event. Recorded completions and misses are left
// alone.
func (s *Sweeper) Sweep(ctx context.Context) {
	yesterday := plan.NormalizeDate(s.now().AddDate(0, 0, -1))

	userIDs, err := s.service.anchors.listUserIDs(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "sweep failed to list users", slog.Any("error", err))
		return
	}

	swept := 0
	for _, userID := range userIDs {
		userCtx := contexthelpers.BindUserID(ctx, userID)
		recorded, err := s.sweepUser(userCtx, yesterday)
		if err != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "sweep failed for user",
				slog.String("userID", userID), slog.Any("error", err))
			continue
		}
		if recorded {
			swept++
		}
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "adherence sweep finished",
		slog.Time("date", yesterday),
		slog.Int("users", len(userIDs)),
		slog.Int("recordedMisses", swept))
}

func (s *Sweeper) sweepUser(ctx context.Context, date time.Time) (bool, error) {
	anchor, ok, err := s.service.DayOne(ctx)
	if err != nil {
		return false, err
	}
	// Days before the journey started are not misses.
	if !ok || plan.DayNumberFor(anchor, date) < 1 {
		return false, nil
	}

	isWorkoutDay, err := s.schedule.IsWorkoutDay(ctx, date)
	if err != nil {
		return false, fmt.Errorf("check workout day: %w", err)
	}
	if !isWorkoutDay {
		return false, nil
	}

	recorded, err := s.service.events.setStatusIfAbsent(ctx, date, plan.StatusMissed)
	if err != nil {
		return false, fmt.Errorf("record miss: %w", err)
	}
	return recorded, nil
}
