package settings

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

/**
DB table:
- notification_settings:
	- user_id: bigint - settings owner, primary key
	- hourly_enabled: boolean
	- quiet_enabled: boolean
	- quiet_start: int4 - minutes since midnight
	- quiet_end: int4 - minutes since midnight
	- morning_enabled: boolean
	- morning_at: int4 - minutes since midnight
	- evening_enabled: boolean
	- evening_at: int4 - minutes since midnight
	- weekly_enabled: boolean
	- weekly_day: int2 - 0 (Sunday) .. 6 (Saturday)
	- weekly_at: int4 - minutes since midnight
	- allow_snooze: boolean
	- snooze_minutes: int4
*/

var (
	ErrNotConfigured = errors.New("notification settings never configured")
	errLoadSettings  = errors.New("failed to load notification settings")
	errSaveSettings  = errors.New("failed to save notification settings")
)

// Store persists one NotificationSettings value per user, replaced as a whole
// on every save.
type Store interface {
	Load(ctx context.Context) (NotificationSettings, error)
	Save(ctx context.Context, s NotificationSettings) error
}

// querier is the slice of the pgxpool API the store uses.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore keeps settings in Postgres, one row per user.
type PGStore struct {
	db   querier
	user int64
}

func NewPGStore(db *pgxpool.Pool, user int64) *PGStore {
	return &PGStore{db: db, user: user}
}

// NewPGStoreWithQuerier wires an arbitrary querier; tests pass a mock pool.
func NewPGStoreWithQuerier(db querier, user int64) *PGStore {
	return &PGStore{db: db, user: user}
}

// EnsureSchema creates the settings table when it doesn't exist yet.
func (st *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := st.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS notification_settings(
user_id bigint PRIMARY KEY,
hourly_enabled boolean NOT NULL,
quiet_enabled boolean NOT NULL,
quiet_start int4 NOT NULL,
quiet_end int4 NOT NULL,
morning_enabled boolean NOT NULL,
morning_at int4 NOT NULL,
evening_enabled boolean NOT NULL,
evening_at int4 NOT NULL,
weekly_enabled boolean NOT NULL,
weekly_day int2 NOT NULL,
weekly_at int4 NOT NULL,
allow_snooze boolean NOT NULL,
snooze_minutes int4 NOT NULL)`)
	return errors.Wrap(err, "failed to create notification_settings table")
}

func (st *PGStore) Load(ctx context.Context) (NotificationSettings, error) {
	var s NotificationSettings
	var quietStart, quietEnd, morningAt, eveningAt, weeklyAt, weeklyDay int

	err := st.db.QueryRow(ctx, `SELECT hourly_enabled, quiet_enabled, quiet_start, quiet_end,
morning_enabled, morning_at, evening_enabled, evening_at,
weekly_enabled, weekly_day, weekly_at, allow_snooze, snooze_minutes
FROM notification_settings
WHERE user_id=$1`, st.user).Scan(
		&s.HourlyEnabled, &s.QuietHours.Enabled, &quietStart, &quietEnd,
		&s.MorningEnabled, &morningAt, &s.EveningEnabled, &eveningAt,
		&s.WeeklyReviewEnabled, &weeklyDay, &weeklyAt,
		&s.AllowSnooze, &s.SnoozeDurationMinutes)
	switch {
	case err == pgx.ErrNoRows:
		return NotificationSettings{}, ErrNotConfigured
	case err != nil:
		return NotificationSettings{}, errors.Wrap(errLoadSettings, err.Error())
	}

	s.QuietHours.Start = MinuteOfDayToTime(quietStart)
	s.QuietHours.End = MinuteOfDayToTime(quietEnd)
	s.MorningTime = MinuteOfDayToTime(morningAt)
	s.EveningTime = MinuteOfDayToTime(eveningAt)
	s.WeeklyReviewTime = MinuteOfDayToTime(weeklyAt)
	s.WeeklyReviewDay = time.Weekday(weeklyDay)

	if err := s.Validate(); err != nil {
		return NotificationSettings{}, errors.Wrap(errLoadSettings, err.Error())
	}
	return s, nil
}

// Save validates and upserts the full settings row. Invalid values never
// reach the database or the scheduler.
func (st *PGStore) Save(ctx context.Context, s NotificationSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	_, err := st.db.Exec(ctx, `INSERT INTO notification_settings(user_id,
hourly_enabled, quiet_enabled, quiet_start, quiet_end,
morning_enabled, morning_at, evening_enabled, evening_at,
weekly_enabled, weekly_day, weekly_at, allow_snooze, snooze_minutes)
VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (user_id) DO UPDATE SET
hourly_enabled=$2, quiet_enabled=$3, quiet_start=$4, quiet_end=$5,
morning_enabled=$6, morning_at=$7, evening_enabled=$8, evening_at=$9,
weekly_enabled=$10, weekly_day=$11, weekly_at=$12, allow_snooze=$13, snooze_minutes=$14`,
		st.user,
		s.HourlyEnabled, s.QuietHours.Enabled,
		s.QuietHours.Start.MinuteOfDay(), s.QuietHours.End.MinuteOfDay(),
		s.MorningEnabled, s.MorningTime.MinuteOfDay(),
		s.EveningEnabled, s.EveningTime.MinuteOfDay(),
		s.WeeklyReviewEnabled, int(s.WeeklyReviewDay), s.WeeklyReviewTime.MinuteOfDay(),
		s.AllowSnooze, s.SnoozeDurationMinutes)
	if err != nil {
		return errors.Wrap(errSaveSettings, err.Error())
	}
	return nil
}
