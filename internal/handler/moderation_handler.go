package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/juju/errors"

	"healthcommunity/internal/domain"
	"healthcommunity/internal/models"
)

type PendingPostsResponse struct {
	Posts      []models.Post      `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}

type PendingCommentsResponse struct {
	Comments   []models.Comment   `json:"comments"`
	Pagination PaginationResponse `json:"pagination"`
}

// moderationInput reads the action from the path and the optional reason
// from the body. An empty body is allowed.
func (h *Handlers) moderationInput(r *http.Request) (domain.Action, string, error) {
	action, err := domain.ParseAction(pathVar(r, "action"))
	if err != nil {
		return "", "", err
	}

	var req models.ModerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return "", "", errors.BadRequestf("invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return "", "", validationError(err)
	}
	return action, req.Reason, nil
}

func (h *Handlers) ModeratePost(w http.ResponseWriter, r *http.Request) {
	action, reason, err := h.moderationInput(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	post, err := h.ModerationService.ModeratePost(r.Context(), IdentityFromContext(r.Context()), pathVar(r, "postId"), action, reason)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) ModerateComment(w http.ResponseWriter, r *http.Request) {
	action, reason, err := h.moderationInput(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	comment, err := h.ModerationService.ModerateComment(r.Context(), IdentityFromContext(r.Context()), pathVar(r, "commentId"), action, reason)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, comment, http.StatusOK)
}

// statusFromPath reads {status}, defaulting to pending for the /pending
// routes.
func statusFromPath(r *http.Request) (domain.Status, error) {
	s := pathVar(r, "status")
	if s == "" {
		return domain.StatusPending, nil
	}
	return domain.ParseStatus(s)
}

func (h *Handlers) PostsByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := statusFromPath(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	page, limit := queryInt(r, "page", 1), queryInt(r, "limit", 20)

	posts, total, err := h.ModerationService.PostsByStatus(r.Context(), status, page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, PendingPostsResponse{Posts: posts, Pagination: newPagination(page, limit, total)}, http.StatusOK)
}

func (h *Handlers) CommentsByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := statusFromPath(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	page, limit := queryInt(r, "page", 1), queryInt(r, "limit", 20)

	comments, total, err := h.ModerationService.CommentsByStatus(r.Context(), status, page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, PendingCommentsResponse{Comments: comments, Pagination: newPagination(page, limit, total)}, http.StatusOK)
}

func (h *Handlers) ModerationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ModerationService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, stats, http.StatusOK)
}
