// Package schedule converts notification settings into a concrete,
// conflict-free set of registered triggers and keeps that set consistent
// across settings changes. Building the desired set is pure; registration is
// driven sequentially so error attribution stays per-role.
package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	"microjournal/notify"
	"microjournal/settings"
	"microjournal/trigger"
)

// Client is the slice of the external trigger registry the policy drives.
type Client interface {
	Register(ctx context.Context, rule trigger.Rule, content notify.Content, payload string) (trigger.ID, error)
	Cancel(ctx context.Context, id trigger.ID) error
}

// Notification is one entry of the desired schedule: a logical role, its
// firing rule, and its text. Ephemeral; never persisted.
type Notification struct {
	Role    Role
	Rule    trigger.Rule
	Content notify.Content
}

// Policy builds the desired notification set from settings and reconciles the
// registry against it with a full cancel-and-rebuild pass.
type Policy struct {
	registry *Registry
	client   Client
	log      *zap.Logger
}

func NewPolicy(registry *Registry, client Client, log *zap.Logger) *Policy {
	return &Policy{registry: registry, client: client, log: log}
}

// BuildSchedule computes the notifications that should exist for the given
// settings. Pure: no registry calls, no clock reads.
//
// Hourly check-ins and the morning/evening pair are alternatives; when both
// are enabled, hourly wins. The weekly review is independent of either.
// Snoozes are not settings-driven and never appear here.
func BuildSchedule(s settings.NotificationSettings) []Notification {
	var out []Notification

	if s.HourlyEnabled {
		for hour := 0; hour < 24; hour++ {
			if InQuietHours(hour*60, s.QuietHours) {
				continue
			}
			out = append(out, Notification{
				Role:    HourlySlot(hour),
				Rule:    trigger.DailyAt(hour, 0),
				Content: ContentForHour(hour),
			})
		}
	} else {
		if s.MorningEnabled {
			out = append(out, Notification{
				Role:    MorningLogRole(),
				Rule:    trigger.DailyAt(s.MorningTime.Hour, s.MorningTime.Minute),
				Content: contentMorningLog(),
			})
		}
		if s.EveningEnabled {
			out = append(out, Notification{
				Role:    EveningLogRole(),
				Rule:    trigger.DailyAt(s.EveningTime.Hour, s.EveningTime.Minute),
				Content: contentEveningLog(),
			})
		}
	}

	if s.WeeklyReviewEnabled {
		out = append(out, Notification{
			Role:    WeeklyReviewRole(),
			Rule:    trigger.WeeklyAt(s.WeeklyReviewDay, s.WeeklyReviewTime.Hour, s.WeeklyReviewTime.Minute),
			Content: contentWeeklyReview(),
		})
	}

	return out
}

// Apply replaces the current generation with the one BuildSchedule derives
// from the settings: cancel everything, then register the new set one item at
// a time. Registration failures are logged and reported, never fatal; the
// returned slice holds the roles that could not be scheduled.
//
// Apply is idempotent in its end state: two passes with the same settings
// leave the same logical roles active, though the physical trigger IDs
// differ. Callers must serialize overlapping invocations; the coordinator
// does.
func (p *Policy) Apply(ctx context.Context, s settings.NotificationSettings) []Role {
	for _, id := range p.registry.CancelAll(ctx, p.client) {
		p.log.Warn("failed to cancel trigger, a stale notification may fire once",
			zap.Int64("id", int64(id)))
	}

	var failed []Role
	for _, n := range BuildSchedule(s) {
		id, err := p.client.Register(ctx, n.Rule, n.Content, n.Role.String())
		if err != nil {
			p.log.Error("failed to register notification",
				zap.Stringer("role", n.Role), zap.Error(err))
			failed = append(failed, n.Role)
			continue
		}
		p.registry.RecordActive(n.Role, id)
	}

	p.log.Info("schedule rebuilt",
		zap.Int("active", len(p.registry.ActiveRoles())),
		zap.Int("failed", len(failed)))
	return failed
}

// Snooze registers one extra one-shot reminder the given number of minutes
// from now. It is independent of the settings-driven generation: it is not
// recorded in the registry, so a later rebuild neither cancels nor dedups it,
// and several snoozes may be pending at once.
func (p *Policy) Snooze(ctx context.Context, minutes int) error {
	if minutes <= 0 {
		return settings.ErrInvalidSnooze
	}

	rule := trigger.OnceAfter(time.Duration(minutes) * time.Minute)
	_, err := p.client.Register(ctx, rule, contentSnoozed(), SnoozedRole().String())
	if err != nil {
		p.log.Error("failed to register snooze", zap.Error(err))
		return err
	}
	return nil
}
