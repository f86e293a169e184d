package handlers

import (
	"net/http"

	"healthcommunity/internal/domain"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type PostsGetResponse struct {
	Posts      []*domain.PostView `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}

type CommentsGetResponse struct {
	Comments   []*domain.CommentNode `json:"comments"`
	Pagination PaginationResponse    `json:"pagination"`
}

type PostVoteResponse struct {
	Post      *domain.PostView `json:"post"`
	VoteStats domain.VoteStats `json:"voteStats"`
}

type PostMessageResponse struct {
	Message string           `json:"message"`
	Post    *domain.PostView `json:"post"`
}

// postView annotates a written post for the caller, so anonymous authors
// stay hidden from everyone else.
func postView(r *http.Request, post *models.Post) *domain.PostView {
	viewer := ""
	if caller := IdentityFromContext(r.Context()); caller != nil {
		viewer = caller.AccountID
	}
	return domain.AnnotatePost(*post, viewer)
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.PostFilter{
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", 10),
		Category:  q.Get("category"),
		Tag:       q.Get("tag"),
		Search:    q.Get("search"),
		Sort:      q.Get("sort"),
		Type:      q.Get("type"),
		AccountID: q.Get("accountId"),
	}

	posts, total, err := h.PostService.ListPosts(r.Context(), IdentityFromContext(r.Context()), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, PostsGetResponse{
		Posts:      posts,
		Pagination: newPagination(filter.Page, filter.Limit, total),
	}, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetPost(r.Context(), IdentityFromContext(r.Context()), pathVar(r, "postId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), IdentityFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	message := "Post created"
	if post.Status == string(domain.StatusPending) {
		message = "Post submitted for review"
	}
	writeSuccess(w, PostMessageResponse{Message: message, Post: postView(r, post)}, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePostRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	req.PostID = pathVar(r, "postId")

	post, err := h.PostService.UpdatePost(r.Context(), IdentityFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, postView(r, post), http.StatusOK)
}

// EditPost is the author's short-lived correction window.
func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	var req models.EditPostRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	req.PostID = pathVar(r, "postId")

	post, err := h.PostService.EditPost(r.Context(), IdentityFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, PostMessageResponse{Message: "Post edited", Post: postView(r, post)}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.PostService.DeletePost(r.Context(), IdentityFromContext(r.Context()), pathVar(r, "postId")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Post deleted"}, http.StatusOK)
}

func (h *Handlers) VotePost(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	post, stats, err := h.PostService.VotePost(r.Context(), IdentityFromContext(r.Context()), pathVar(r, "postId"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, PostVoteResponse{Post: postView(r, post), VoteStats: stats}, http.StatusOK)
}

func (h *Handlers) RecordView(w http.ResponseWriter, r *http.Request) {
	views, err := h.PostService.RecordView(r.Context(), pathVar(r, "postId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, map[string]int{"viewCount": views}, http.StatusOK)
}

func (h *Handlers) GetPostComments(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	comments, total, err := h.PostService.ListComments(r.Context(), IdentityFromContext(r.Context()), pathVar(r, "postId"), page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, CommentsGetResponse{
		Comments:   comments,
		Pagination: newPagination(page, limit, total),
	}, http.StatusOK)
}
