// Package trigger is an in-process trigger registry: callers register
// repeating or one-shot firing rules and get back an opaque identifier they
// can later cancel. A ticker loop fires due triggers through a Notifier.
//
// This is the daemon-side realization of the host-platform capability the
// scheduling engine is written against; the engine itself only sees the
// register/cancel/enumerate contract.
package trigger

import (
	"time"

	"github.com/pkg/errors"
)

// ID identifies one registered trigger. Callers must treat it as opaque:
// store it and replay it to Cancel, nothing else.
type ID int64

type RuleKind int

const (
	// Daily fires every day at Hour:Minute local time.
	Daily RuleKind = iota
	// Weekly fires every week on Weekday at Hour:Minute local time.
	Weekly
	// Once fires a single time, After from the moment of registration.
	Once
)

// Rule describes when a trigger fires.
type Rule struct {
	Kind    RuleKind
	Hour    int
	Minute  int
	Weekday time.Weekday  // Weekly only
	After   time.Duration // Once only
}

var ErrInvalidRule = errors.New("invalid trigger rule")

func (r Rule) validate() error {
	switch r.Kind {
	case Daily, Weekly:
		if r.Hour < 0 || r.Hour > 23 || r.Minute < 0 || r.Minute > 59 {
			return errors.Wrapf(ErrInvalidRule, "time %02d:%02d", r.Hour, r.Minute)
		}
		if r.Kind == Weekly && (r.Weekday < time.Sunday || r.Weekday > time.Saturday) {
			return errors.Wrapf(ErrInvalidRule, "weekday %d", r.Weekday)
		}
	case Once:
		if r.After <= 0 {
			return errors.Wrapf(ErrInvalidRule, "delay %v", r.After)
		}
	default:
		return errors.Wrapf(ErrInvalidRule, "kind %d", r.Kind)
	}
	return nil
}

// DailyAt builds a daily rule.
func DailyAt(hour, minute int) Rule {
	return Rule{Kind: Daily, Hour: hour, Minute: minute}
}

// WeeklyAt builds a weekly rule.
func WeeklyAt(day time.Weekday, hour, minute int) Rule {
	return Rule{Kind: Weekly, Weekday: day, Hour: hour, Minute: minute}
}

// OnceAfter builds a one-shot rule.
func OnceAfter(d time.Duration) Rule {
	return Rule{Kind: Once, After: d}
}

// Activation is emitted after a trigger fires. Payload is whatever string the
// caller attached at registration; the registry never interprets it.
type Activation struct {
	ID      ID
	Payload string
}
