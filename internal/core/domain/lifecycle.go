package domain

import (
	"fmt"
	"time"
)

// Status is a complaint lifecycle state
type Status string

const (
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// statusOrder ranks statuses along the intended monotonic path
var statusOrder = map[Status]int{
	StatusPending:    0,
	StatusAssigned:   1,
	StatusInProgress: 2,
	StatusResolved:   3,
	StatusClosed:     4,
}

// Statuses lists every status in lifecycle order
func Statuses() []Status {
	return []Status{StatusPending, StatusAssigned, StatusInProgress, StatusResolved, StatusClosed}
}

// ParseStatus rejects anything outside the five lifecycle states
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusOrder[st]; !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
	return st, nil
}

// IsOpen reports whether the complaint still awaits resolution
func (s Status) IsOpen() bool {
	return s != StatusResolved && s != StatusClosed
}

// Assign hands the complaint to an officer. Re-assignment replaces the
// officer. An in-progress complaint goes back to assigned so the new
// officer starts fresh; this is the only step back in the lifecycle and
// TransitionTo still rejects in_progress to assigned.
func (c *Complaint) Assign(officerID uint) error {
	if !c.Status.IsOpen() {
		return fmt.Errorf("%w: cannot assign a %s complaint", ErrInvalidState, c.Status)
	}
	c.AssignedOfficerID = &officerID
	c.Status = StatusAssigned
	return nil
}

// TransitionTo moves the complaint to next. Forward skips are allowed,
// backward moves are not. Reaching resolved stamps resolvedAt and, when
// proof is non-nil, replaces the resolution proof.
func (c *Complaint) TransitionTo(next Status, proof []MediaRef, now time.Time) error {
	if _, ok := statusOrder[next]; !ok {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}
	if statusOrder[next] < statusOrder[c.Status] {
		return fmt.Errorf("%w: cannot move from %s back to %s", ErrInvalidState, c.Status, next)
	}
	c.Status = next
	if next == StatusResolved {
		t := now
		c.ResolvedAt = &t
		if proof != nil {
			c.ResolutionProof = proof
		}
	}
	return nil
}
