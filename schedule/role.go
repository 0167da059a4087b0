package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RoleKind classifies a logical notification independent of the opaque handle
// the trigger registry assigns to it.
type RoleKind int

const (
	RoleHourly RoleKind = iota
	RoleMorningLog
	RoleEveningLog
	RoleWeeklyReview
	RoleSnoozed
)

// Role is a stable identifier for "what kind of notification this is".
// Hour is meaningful for RoleHourly only.
type Role struct {
	Kind RoleKind
	Hour int
}

func HourlySlot(hour int) Role { return Role{Kind: RoleHourly, Hour: hour} }
func MorningLogRole() Role     { return Role{Kind: RoleMorningLog} }
func EveningLogRole() Role     { return Role{Kind: RoleEveningLog} }
func WeeklyReviewRole() Role   { return Role{Kind: RoleWeeklyReview} }
func SnoozedRole() Role        { return Role{Kind: RoleSnoozed} }

func (r Role) String() string {
	switch r.Kind {
	case RoleHourly:
		return fmt.Sprintf("hourly-%02d", r.Hour)
	case RoleMorningLog:
		return "morning-log"
	case RoleEveningLog:
		return "evening-log"
	case RoleWeeklyReview:
		return "weekly-review"
	case RoleSnoozed:
		return "snoozed"
	default:
		return fmt.Sprintf("unknown-%d", r.Kind)
	}
}

var ErrUnknownRole = errors.New("unknown notification role")

// ParseRole is the inverse of Role.String. It decodes the payload a trigger
// activation carries back into the engine.
func ParseRole(s string) (Role, error) {
	switch {
	case s == "morning-log":
		return MorningLogRole(), nil
	case s == "evening-log":
		return EveningLogRole(), nil
	case s == "weekly-review":
		return WeeklyReviewRole(), nil
	case s == "snoozed":
		return SnoozedRole(), nil
	case strings.HasPrefix(s, "hourly-"):
		hour, err := strconv.Atoi(strings.TrimPrefix(s, "hourly-"))
		if err != nil || hour < 0 || hour > 23 {
			return Role{}, errors.Wrapf(ErrUnknownRole, "%q", s)
		}
		return HourlySlot(hour), nil
	default:
		return Role{}, errors.Wrapf(ErrUnknownRole, "%q", s)
	}
}
