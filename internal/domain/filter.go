// Package domain holds the forum, cycle and scheduling rules that do not
// touch the database.
package domain

import "strings"

// WordFilter flags free text containing any configured banned word.
// Matching is a case-insensitive substring test without tokenization.
type WordFilter struct {
	words []string
}

func NewWordFilter(words []string) *WordFilter {
	f := &WordFilter{}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			f.words = append(f.words, w)
		}
	}
	return f
}

// Contains reports whether text contains a banned word. Empty text is never
// flagged.
func (f *WordFilter) Contains(text string) bool {
	if f == nil || text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range f.words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// AnyContains reports whether any of texts contains a banned word.
func (f *WordFilter) AnyContains(texts ...string) bool {
	for _, t := range texts {
		if f.Contains(t) {
			return true
		}
	}
	return false
}

// InitialStatus is the moderation status new content starts in.
func (f *WordFilter) InitialStatus(texts ...string) Status {
	if f.AnyContains(texts...) {
		return StatusPending
	}
	return StatusApproved
}
