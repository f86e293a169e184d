package domain

import (
	"github.com/juju/errors"
)

// Status is the moderation state shared by posts and comments.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusFlagged  Status = "flagged"
)

// Action is an admin moderation command.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionFlag    Action = "flag"
)

const (
	DefaultRejectionReason = "Content not suitable for the community"
	DefaultFlagReason      = "Flagged for review"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusRejected, StatusFlagged:
		return st, nil
	}
	return "", errors.NotValidf("status %q", s)
}

// ParseAction validates an action string.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionApprove, ActionReject, ActionFlag:
		return a, nil
	}
	return "", errors.NotValidf("moderation action %q", s)
}

type transition struct {
	to      Status
	changed bool
}

// transitions is the complete moderation table; pairs not listed are
// invalid.
var transitions = map[Action]map[Status]transition{
	ActionApprove: {
		StatusPending:  {StatusApproved, true},
		StatusFlagged:  {StatusApproved, true},
		StatusApproved: {StatusApproved, false},
	},
	ActionReject: {
		StatusPending:  {StatusRejected, true},
		StatusApproved: {StatusRejected, true},
		StatusFlagged:  {StatusRejected, true},
		StatusRejected: {StatusRejected, false},
	},
	ActionFlag: {
		StatusPending:  {StatusFlagged, true},
		StatusApproved: {StatusFlagged, true},
		StatusRejected: {StatusFlagged, true},
		StatusFlagged:  {StatusFlagged, true},
	},
}

// Transition returns the state reached by applying action to from.
// changed is false when the action is a no-op, e.g. approving content that
// is already approved.
func Transition(from Status, action Action) (to Status, changed bool, err error) {
	row, ok := transitions[action]
	if !ok {
		return from, false, errors.NotValidf("moderation action %q", action)
	}
	t, ok := row[from]
	if !ok {
		return from, false, errors.BadRequestf("cannot %s content in status %q", action, from)
	}
	return t.to, t.changed, nil
}

// IsVisible reports whether content in this status is shown publicly.
func (s Status) IsVisible() bool {
	return s == StatusApproved
}
