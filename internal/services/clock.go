package services

import (
	"time"

	"gym_backend/internal/models"
)

// Clock tells the services what time it is.
type Clock interface {
	Now() time.Time
}

type locationClock struct {
	loc *time.Location
}

// NewClock returns a clock reading the system time in loc.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return locationClock{loc: loc}
}

func (c locationClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// today is the calendar day of the clock in its own timezone.
func today(c Clock) models.Date {
	return models.NewDate(c.Now())
}

// MembershipRules holds the day counts driving overdue and reminder classification.
type MembershipRules struct {
	DiasLista        int // overdue list threshold
	DiasDashboard    int // dashboard overdue threshold
	DiasAnticipacion int // reminder lead before the due date
}

// DefaultMembershipRules are the thresholds the gym has always used.
func DefaultMembershipRules() MembershipRules {
	return MembershipRules{DiasLista: 7, DiasDashboard: 27, DiasAnticipacion: 3}
}
