package service

import (
	"context"
	"strings"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/lib/pq"

	"healthcommunity/internal/config"
	"healthcommunity/internal/domain"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type PostService interface {
	CreatePost(ctx context.Context, caller *models.Identity, req models.CreatePostRequest) (*models.Post, error)
	ListPosts(ctx context.Context, caller *models.Identity, filter repository.PostFilter) ([]*domain.PostView, int, error)
	GetPost(ctx context.Context, caller *models.Identity, postID string) (*domain.PostView, error)
	UpdatePost(ctx context.Context, caller *models.Identity, req models.UpdatePostRequest) (*models.Post, error)
	EditPost(ctx context.Context, caller *models.Identity, req models.EditPostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, caller *models.Identity, postID string) error
	VotePost(ctx context.Context, caller *models.Identity, postID string, req models.VoteRequest) (*models.Post, domain.VoteStats, error)
	RecordView(ctx context.Context, postID string) (int, error)
	ListComments(ctx context.Context, caller *models.Identity, postID string, page, limit int) ([]*domain.CommentNode, int, error)
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	accountRepo repository.AccountRepository
	filter      *domain.WordFilter
	cfg         *config.Config
	clock       clock.Clock
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	accountRepo repository.AccountRepository,
	filter *domain.WordFilter,
	cfg *config.Config,
	clk clock.Clock,
) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		accountRepo: accountRepo,
		filter:      filter,
		cfg:         cfg,
		clock:       clk,
	}
}

func (p *postService) CreatePost(ctx context.Context, caller *models.Identity, req models.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, errors.BadRequestf("title and content are required")
	}

	authorID, err := resolveActor(caller, req.AccountID)
	if err != nil {
		return nil, err
	}
	author, err := p.accountRepo.GetAccountByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AccountID:   author.AccountID,
		Title:       title,
		Content:     content,
		Category:    req.Category,
		Tags:        pq.StringArray(normalizeTags(req.Tags)),
		IsAnonymous: req.IsAnonymous,
		Status:      string(p.filter.InitialStatus(title, content)),
		CreatedAt:   p.clock.Now(),
		AuthorName:  author.Name,
		AuthorRole:  author.Role,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if post.Status == string(domain.StatusPending) {
		logger.Infof("post %s held for review", post.PostID)
	}
	return post, nil
}

func (p *postService) ListPosts(ctx context.Context, caller *models.Identity, filter repository.PostFilter) ([]*domain.PostView, int, error) {
	filter.Page, filter.Limit = pageLimit(filter.Page, filter.Limit, 10)
	if filter.Type == "myPosts" || filter.Type == "following" {
		if filter.AccountID == "" {
			filter.AccountID = viewerID(caller)
		}
		if filter.AccountID == "" {
			return nil, 0, errors.BadRequestf("accountId is required for %s", filter.Type)
		}
	}
	// myPosts includes pending and anonymous posts, so only the author or
	// an admin may list them.
	if filter.Type == "myPosts" && !canManage(caller, filter.AccountID) {
		return nil, 0, errors.Forbiddenf("cannot list another account's posts")
	}

	posts, total, err := p.postRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	viewer := viewerID(caller)
	views := make([]*domain.PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, domain.AnnotatePost(post, viewer))
	}
	return views, total, nil
}

// GetPost returns the post with its approved comment tree. It is also the
// point where the cached answer counters are reconciled with the comments
// table.
func (p *postService) GetPost(ctx context.Context, caller *models.Identity, postID string) (*domain.PostView, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !domain.Status(post.Status).IsVisible() && !canManage(caller, post.AccountID) {
		return nil, errors.NotFoundf("post %s", postID)
	}

	if err := p.reconcileCounters(ctx, post); err != nil {
		logger.Warningf("reconciling counters of post %s: %v", postID, err)
	}

	comments, err := p.commentRepo.ListByPost(ctx, postID, string(domain.StatusApproved))
	if err != nil {
		return nil, err
	}

	viewer := viewerID(caller)
	view := domain.AnnotatePost(*post, viewer)
	view.Comments = domain.BuildCommentTree(comments, viewer)
	return view, nil
}

func (p *postService) reconcileCounters(ctx context.Context, post *models.Post) error {
	answers, expert, err := p.commentRepo.AnswerCounters(ctx, post.PostID)
	if err != nil {
		return err
	}
	if answers == post.AnswerCount && expert == post.HasExpertAnswer {
		return nil
	}

	logger.Debugf("post %s counters drifted: answers %d->%d expert %t->%t",
		post.PostID, post.AnswerCount, answers, post.HasExpertAnswer, expert)

	if err := p.postRepo.SetAnswerCounters(ctx, post.PostID, answers, expert); err != nil {
		return err
	}
	post.AnswerCount = answers
	post.HasExpertAnswer = expert
	return nil
}

func (p *postService) UpdatePost(ctx context.Context, caller *models.Identity, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if !canManage(caller, post.AccountID) {
		return nil, errors.Forbiddenf("only the author or an admin can update this post")
	}

	textChanged := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errors.BadRequestf("title cannot be empty")
		}
		textChanged = textChanged || title != post.Title
		post.Title = title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, errors.BadRequestf("content cannot be empty")
		}
		textChanged = textChanged || content != post.Content
		post.Content = content
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Tags != nil {
		post.Tags = pq.StringArray(normalizeTags(*req.Tags))
	}
	if req.IsAnonymous != nil {
		post.IsAnonymous = *req.IsAnonymous
	}
	if textChanged && p.filter.AnyContains(post.Title, post.Content) {
		post.Status = string(domain.StatusPending)
	}
	post.UpdatedAt = p.clock.Now()

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost lets the author change title or content within the edit window
// after creation.
func (p *postService) EditPost(ctx context.Context, caller *models.Identity, req models.EditPostRequest) (*models.Post, error) {
	editorID, err := resolveActor(caller, req.AccountID)
	if err != nil {
		return nil, err
	}

	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post.AccountID != editorID {
		return nil, errors.Forbiddenf("only the author can edit this post")
	}

	now := p.clock.Now()
	if !domain.WithinEditWindow(post.CreatedAt, now, p.cfg.PostEditWindow) {
		return nil, errors.Forbiddenf("posts can only be edited within %s of creation", p.cfg.PostEditWindow)
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		post.Title = title
	}
	if content := strings.TrimSpace(req.Content); content != "" {
		post.Content = content
	}
	if p.filter.AnyContains(post.Title, post.Content) {
		post.Status = string(domain.StatusPending)
	}
	post.EditedAt = &now
	post.UpdatedAt = now

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, caller *models.Identity, postID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !canManage(caller, post.AccountID) {
		return errors.Forbiddenf("only the author or an admin can delete this post")
	}

	return p.postRepo.Delete(ctx, postID)
}

func (p *postService) VotePost(ctx context.Context, caller *models.Identity, postID string, req models.VoteRequest) (*models.Post, domain.VoteStats, error) {
	voteType, err := domain.ParseVoteType(req.VoteType)
	if err != nil {
		return nil, domain.VoteStats{}, err
	}
	voterID, err := resolveActor(caller, req.AccountID)
	if err != nil {
		return nil, domain.VoteStats{}, err
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, domain.VoteStats{}, err
	}

	votes := domain.VoteSet{Up: post.VoteUp, Down: post.VoteDown}
	if err := votes.Cast(voterID, voteType); err != nil {
		return nil, domain.VoteStats{}, err
	}

	if err := p.postRepo.UpdateVotes(ctx, postID, votes.Up, votes.Down); err != nil {
		return nil, domain.VoteStats{}, err
	}

	post.VoteUp = pq.StringArray(votes.Up)
	post.VoteDown = pq.StringArray(votes.Down)
	return post, votes.Stats(), nil
}

func (p *postService) RecordView(ctx context.Context, postID string) (int, error) {
	return p.postRepo.IncrementViewCount(ctx, postID)
}

// ListComments pages through a post's approved comment tree by root comment.
// The total is the number of root comments.
func (p *postService) ListComments(ctx context.Context, caller *models.Identity, postID string, page, limit int) ([]*domain.CommentNode, int, error) {
	if _, err := p.postRepo.GetByID(ctx, postID); err != nil {
		return nil, 0, err
	}

	comments, err := p.commentRepo.ListByPost(ctx, postID, string(domain.StatusApproved))
	if err != nil {
		return nil, 0, err
	}

	page, limit = pageLimit(page, limit, 10)
	tree := domain.BuildCommentTree(comments, viewerID(caller))
	return domain.PaginateRoots(tree, page, limit), len(tree), nil
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
