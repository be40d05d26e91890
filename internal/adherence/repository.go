// Package adherence records workout completions and misses and owns the
// day-one anchor that ties calendar dates to journey day numbers.
package adherence

import (
	"errors"
	"log/slog"
	"time"

	"github.com/harrysikes/shredai/internal/sqlite"
)

const dateFormat = time.DateOnly

// ErrNotFound is returned when no event exists for the requested date.
var ErrNotFound = errors.New("adherence: not found")

// baseRepository carries the handles shared by the SQLite repositories.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{
		db:     db,
		logger: logger,
	}
}

func formatDate(date time.Time) string {
	return date.UTC().Format(dateFormat)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateFormat, s, time.UTC)
}
