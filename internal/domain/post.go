package domain

import (
	"time"

	"healthcommunity/internal/models"
)

// AnonymousName replaces the author of anonymous posts for other viewers.
const AnonymousName = "Anonymous"

// PostView is a post annotated for display.
type PostView struct {
	models.Post
	Author       models.AccountSummary `json:"author"`
	VoteStats    VoteStats             `json:"voteStats"`
	UserVote     *string               `json:"userVote,omitempty"`
	Comments     []*CommentNode        `json:"comments,omitempty"`
	CommentCount int                   `json:"commentCount"`
}

// AnnotatePost builds the display view of p for viewer, who may be empty.
// Anonymous posts hide their author from everyone but the author.
func AnnotatePost(p models.Post, viewer string) *PostView {
	votes := VoteSet{Up: p.VoteUp, Down: p.VoteDown}

	view := &PostView{
		Post:         p,
		VoteStats:    votes.Stats(),
		CommentCount: p.AnswerCount,
		Author: models.AccountSummary{
			AccountID: p.AccountID,
			Name:      p.AuthorName,
			Role:      p.AuthorRole,
		},
	}
	if p.IsAnonymous && viewer != p.AccountID {
		view.Author = models.AccountSummary{Name: AnonymousName}
		view.Post.AccountID = ""
	}
	if uv := string(votes.UserVote(viewer)); uv != "" {
		view.UserVote = &uv
	}
	return view
}

// WithinEditWindow reports whether content created at created may still be
// edited at now.
func WithinEditWindow(created, now time.Time, window time.Duration) bool {
	return now.Sub(created) <= window
}
