package batch

import (
	"time"

	"github.com/aquasense/hydrolens/pkg/errors"
)

// Interval is the fixed bucket width batch summaries are grouped into.
type Interval string

const (
	IntervalHourly  Interval = "hourly"
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

// ParseInterval validates an interval name at the trust boundary.
func ParseInterval(name string) (Interval, error) {
	switch Interval(name) {
	case IntervalHourly, IntervalDaily, IntervalWeekly, IntervalMonthly:
		return Interval(name), nil
	default:
		return "", errors.WrapError(errors.ErrInvalidInterval, errors.ErrorTypeValidation,
			"UNKNOWN_INTERVAL", "unknown batch interval: "+name)
	}
}

// IntervalKey floors a timestamp to the start of its bucket, in UTC:
// hourly to the hour, daily to midnight, weekly to the most recent Sunday
// midnight, monthly to the first of the month.
func IntervalKey(t time.Time, interval Interval) time.Time {
	t = t.UTC()
	switch interval {
	case IntervalHourly:
		return t.Truncate(time.Hour)
	case IntervalDaily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case IntervalWeekly:
		midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return midnight.AddDate(0, 0, -int(midnight.Weekday()))
	case IntervalMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return t
	}
}

// PeriodEnd returns the exclusive end of the bucket starting at start.
// Monthly periods are calendar-aware: the same day next month, not a fixed
// 30 days.
func PeriodEnd(start time.Time, interval Interval) time.Time {
	switch interval {
	case IntervalHourly:
		return start.Add(time.Hour)
	case IntervalDaily:
		return start.AddDate(0, 0, 1)
	case IntervalWeekly:
		return start.AddDate(0, 0, 7)
	case IntervalMonthly:
		return start.AddDate(0, 1, 0)
	default:
		return start
	}
}

func bucketHours(start time.Time, interval Interval) float64 {
	return PeriodEnd(start, interval).Sub(start).Hours()
}
