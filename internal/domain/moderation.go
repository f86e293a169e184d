package domain

import (
	"time"

	"github.com/juju/errors"

	"healthcommunity/internal/models"
)

// Moderate applies action to content currently in status and stamps the
// moderation record. It returns the new status and whether it changed; a
// no-op approve or reject leaves the stamp untouched.
func Moderate(stamp *models.ModerationStamp, status string, action Action, actor, reason string, now time.Time) (Status, bool, error) {
	from, err := ParseStatus(status)
	if err != nil {
		return "", false, errors.Annotate(err, "current status")
	}

	to, changed, err := Transition(from, action)
	if err != nil {
		return from, false, err
	}
	if !changed {
		return to, false, nil
	}

	switch action {
	case ActionApprove:
		stamp.ModeratedBy = &actor
		stamp.ModeratedAt = &now
		stamp.RejectionReason = nil
	case ActionReject:
		if reason == "" {
			reason = DefaultRejectionReason
		}
		stamp.ModeratedBy = &actor
		stamp.ModeratedAt = &now
		stamp.RejectionReason = &reason
	case ActionFlag:
		if reason == "" {
			reason = DefaultFlagReason
		}
		stamp.FlaggedBy = &actor
		stamp.FlaggedAt = &now
		stamp.FlagReason = &reason
	}
	return to, true, nil
}
