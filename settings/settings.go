package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidWeekday   = errors.New("weekday must be in range 0..6")
	ErrInvalidSnooze    = errors.New("snooze duration must be positive")
)

// TimeOfDay is a wall-clock hour:minute value. The zero value is midnight.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	t := TimeOfDay{Hour: hour, Minute: minute}
	if !t.Valid() {
		return TimeOfDay{}, errors.Wrapf(ErrInvalidTimeOfDay, "%02d:%02d", hour, minute)
	}
	return t, nil
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return TimeOfDay{}, errors.Wrapf(ErrInvalidTimeOfDay, "%q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, errors.Wrapf(ErrInvalidTimeOfDay, "%q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, errors.Wrapf(ErrInvalidTimeOfDay, "%q", s)
	}
	return NewTimeOfDay(h, m)
}

func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// MinuteOfDay returns the value as minutes since midnight (0..1439).
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinuteOfDayToTime converts minutes since midnight back to a TimeOfDay.
func MinuteOfDayToTime(m int) TimeOfDay {
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// QuietHours is a daily window during which hourly check-ins are suppressed.
// Start > End (as minute-of-day) means the window spans midnight.
// Start == End means no quiet window.
type QuietHours struct {
	Enabled bool
	Start   TimeOfDay
	End     TimeOfDay
}

// NotificationSettings is the full notification preference set, passed by
// value into the scheduling engine on every pass.
type NotificationSettings struct {
	HourlyEnabled bool
	QuietHours    QuietHours

	MorningEnabled bool
	MorningTime    TimeOfDay
	EveningEnabled bool
	EveningTime    TimeOfDay

	WeeklyReviewEnabled bool
	WeeklyReviewDay     time.Weekday
	WeeklyReviewTime    TimeOfDay

	AllowSnooze           bool
	SnoozeDurationMinutes int
}

// Default returns the settings applied when the user has never configured
// notifications. The engine itself never consults this; the calling layer
// seeds the store with it before the first scheduling pass.
func Default() NotificationSettings {
	return NotificationSettings{
		HourlyEnabled: true,
		QuietHours: QuietHours{
			Enabled: true,
			Start:   TimeOfDay{Hour: 22},
			End:     TimeOfDay{Hour: 8},
		},
		MorningTime:           TimeOfDay{Hour: 9},
		EveningTime:           TimeOfDay{Hour: 21},
		WeeklyReviewEnabled:   true,
		WeeklyReviewDay:       time.Sunday,
		WeeklyReviewTime:      TimeOfDay{Hour: 19},
		AllowSnooze:           true,
		SnoozeDurationMinutes: 15,
	}
}

// Validate rejects settings the engine must never see. Out-of-range times are
// refused here, upstream of the scheduler.
func (s NotificationSettings) Validate() error {
	for _, t := range []TimeOfDay{
		s.QuietHours.Start, s.QuietHours.End,
		s.MorningTime, s.EveningTime, s.WeeklyReviewTime,
	} {
		if !t.Valid() {
			return errors.Wrapf(ErrInvalidTimeOfDay, "%02d:%02d", t.Hour, t.Minute)
		}
	}
	if s.WeeklyReviewDay < time.Sunday || s.WeeklyReviewDay > time.Saturday {
		return ErrInvalidWeekday
	}
	if s.SnoozeDurationMinutes <= 0 {
		return ErrInvalidSnooze
	}
	return nil
}
