package domain

import (
	"bytes"
	"encoding/json"

	"github.com/juju/errors"
)

// VoteType is a voter's choice; VoteNone retracts any previous vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
	VoteNone VoteType = ""
)

// ParseVoteType decodes the raw JSON voteType field. Only "up", "down" and
// an explicit null are accepted; a missing field is invalid.
func ParseVoteType(raw json.RawMessage) (VoteType, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return VoteNone, errors.BadRequestf("voteType is required (only up, down or null)")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return VoteNone, nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return VoteNone, errors.NotValidf("vote type %s (only up, down or null)", trimmed)
	}
	switch VoteType(s) {
	case VoteUp, VoteDown:
		return VoteType(s), nil
	}
	return VoteNone, errors.NotValidf("vote type %q (only up, down or null)", s)
}

// VoteSet holds the voter ids for one post or comment.
type VoteSet struct {
	Up   []string
	Down []string
}

// VoteStats is the derived score of a VoteSet.
type VoteStats struct {
	Upvotes      int `json:"upvotes"`
	Downvotes    int `json:"downvotes"`
	RawTotal     int `json:"rawTotal"`
	DisplayTotal int `json:"displayTotal"`
}

// Cast records voter's vote. The voter is first removed from both sets so
// that a voter holds at most one vote; re-voting is last-write-wins.
func (v *VoteSet) Cast(voter string, t VoteType) error {
	switch t {
	case VoteUp, VoteDown, VoteNone:
	default:
		return errors.NotValidf("vote type %q", t)
	}

	v.Up = without(v.Up, voter)
	v.Down = without(v.Down, voter)

	switch t {
	case VoteUp:
		v.Up = append(v.Up, voter)
	case VoteDown:
		v.Down = append(v.Down, voter)
	}
	return nil
}

func (v VoteSet) Stats() VoteStats {
	up, down := len(v.Up), len(v.Down)
	return VoteStats{
		Upvotes:      up,
		Downvotes:    down,
		RawTotal:     up - down,
		DisplayTotal: DisplayScore(up, down),
	}
}

// UserVote reports the current vote of voter.
func (v VoteSet) UserVote(voter string) VoteType {
	if voter == "" {
		return VoteNone
	}
	for _, id := range v.Up {
		if id == voter {
			return VoteUp
		}
	}
	for _, id := range v.Down {
		if id == voter {
			return VoteDown
		}
	}
	return VoteNone
}

// DisplayScore floors the public score at zero.
func DisplayScore(up, down int) int {
	if up-down < 0 {
		return 0
	}
	return up - down
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
