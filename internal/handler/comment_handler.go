package handlers

import (
	"net/http"

	"healthcommunity/internal/domain"
	"healthcommunity/internal/models"
)

type CommentMessageResponse struct {
	Message string          `json:"message"`
	Comment *models.Comment `json:"comment"`
}

type CommentVoteResponse struct {
	Comment   *models.Comment  `json:"comment"`
	VoteStats domain.VoteStats `json:"voteStats"`
}

func commentCreatedMessage(c *models.Comment) string {
	if c.Status == string(domain.StatusPending) {
		return "Comment submitted for review"
	}
	return "Comment added"
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommentRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	req.PostID = pathVar(r, "postId")

	comment, err := h.CommentService.AddComment(r.Context(), IdentityFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, CommentMessageResponse{Message: commentCreatedMessage(comment), Comment: comment}, http.StatusCreated)
}

func (h *Handlers) AddReply(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommentRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	comment, err := h.CommentService.AddReply(r.Context(), IdentityFromContext(r.Context()), pathVar(r, "commentId"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, CommentMessageResponse{Message: commentCreatedMessage(comment), Comment: comment}, http.StatusCreated)
}

func (h *Handlers) GetReplies(w http.ResponseWriter, r *http.Request) {
	replies, err := h.CommentService.ListReplies(r.Context(), IdentityFromContext(r.Context()), pathVar(r, "commentId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, replies, http.StatusOK)
}

func (h *Handlers) VoteComment(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	comment, stats, err := h.CommentService.VoteComment(r.Context(), IdentityFromContext(r.Context()), pathVar(r, "commentId"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, CommentVoteResponse{Comment: comment, VoteStats: stats}, http.StatusOK)
}
