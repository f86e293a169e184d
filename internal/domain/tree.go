package domain

import (
	"sort"

	"healthcommunity/internal/models"
)

// CommentNode is a comment annotated for display, with its replies.
type CommentNode struct {
	models.Comment
	Author           models.AccountSummary `json:"author"`
	VoteCount        int                   `json:"voteCount"`
	DisplayVoteCount int                   `json:"displayVoteCount"`
	IsExpertComment  bool                  `json:"isExpertComment"`
	UserVote         *string               `json:"userVote,omitempty"`
	Replies          []*CommentNode        `json:"replies"`
}

// IsExpert reports whether an author role makes a comment an expert answer.
func IsExpert(role string) bool {
	return role == models.RoleCounselor
}

// AnnotateComment builds a leaf node for c. viewer may be empty.
func AnnotateComment(c models.Comment, viewer string) *CommentNode {
	votes := VoteSet{Up: c.VoteUp, Down: c.VoteDown}
	stats := votes.Stats()

	node := &CommentNode{
		Comment: c,
		Author: models.AccountSummary{
			AccountID: c.AccountID,
			Name:      c.AuthorName,
			Image:     c.AuthorImage,
			Role:      c.AuthorRole,
		},
		VoteCount:        stats.RawTotal,
		DisplayVoteCount: stats.DisplayTotal,
		IsExpertComment:  IsExpert(c.AuthorRole),
		Replies:          []*CommentNode{},
	}
	if uv := string(votes.UserVote(viewer)); uv != "" {
		node.UserVote = &uv
	}
	return node
}

// BuildCommentTree nests comments under their parents. Siblings are ordered
// by creation time at every level. Replies whose parent is not in comments
// are dropped along with their descendants.
func BuildCommentTree(comments []models.Comment, viewer string) []*CommentNode {
	ordered := make([]models.Comment, len(comments))
	copy(ordered, comments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	var roots []models.Comment
	children := make(map[string][]models.Comment)
	for _, c := range ordered {
		if c.ParentCommentID == nil || *c.ParentCommentID == "" {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentCommentID] = append(children[*c.ParentCommentID], c)
	}

	var build func(c models.Comment) *CommentNode
	build = func(c models.Comment) *CommentNode {
		node := AnnotateComment(c, viewer)
		for _, child := range children[c.CommentID] {
			node.Replies = append(node.Replies, build(child))
		}
		return node
	}

	tree := make([]*CommentNode, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, build(r))
	}
	return tree
}

// PaginateRoots returns one page of root nodes; subtrees are never split.
func PaginateRoots(tree []*CommentNode, page, limit int) []*CommentNode {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return []*CommentNode{}
	}
	start := (page - 1) * limit
	if start >= len(tree) {
		return []*CommentNode{}
	}
	end := start + limit
	if end > len(tree) {
		end = len(tree)
	}
	return tree[start:end]
}

// CountNodes counts every node in the forest.
func CountNodes(tree []*CommentNode) int {
	n := 0
	for _, node := range tree {
		n += 1 + CountNodes(node.Replies)
	}
	return n
}
