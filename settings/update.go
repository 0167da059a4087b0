package settings

import "time"

// Update functions return a modified copy of the settings value. Settings are
// never mutated in place; every change produces a full replacement that is
// persisted and rescheduled as a unit.

func (s NotificationSettings) WithHourlyEnabled(v bool) NotificationSettings {
	s.HourlyEnabled = v
	return s
}

func (s NotificationSettings) WithQuietHours(q QuietHours) NotificationSettings {
	s.QuietHours = q
	return s
}

func (s NotificationSettings) WithMorning(enabled bool, at TimeOfDay) NotificationSettings {
	s.MorningEnabled = enabled
	s.MorningTime = at
	return s
}

func (s NotificationSettings) WithEvening(enabled bool, at TimeOfDay) NotificationSettings {
	s.EveningEnabled = enabled
	s.EveningTime = at
	return s
}

func (s NotificationSettings) WithWeeklyReview(enabled bool, day time.Weekday, at TimeOfDay) NotificationSettings {
	s.WeeklyReviewEnabled = enabled
	s.WeeklyReviewDay = day
	s.WeeklyReviewTime = at
	return s
}

func (s NotificationSettings) WithSnooze(allow bool, minutes int) NotificationSettings {
	s.AllowSnooze = allow
	s.SnoozeDurationMinutes = minutes
	return s
}
