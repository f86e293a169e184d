package service

import (
	"context"
	"strings"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/lib/pq"

	"healthcommunity/internal/domain"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type CommentService interface {
	AddComment(ctx context.Context, caller *models.Identity, req models.CreateCommentRequest) (*models.Comment, error)
	AddReply(ctx context.Context, caller *models.Identity, parentCommentID string, req models.CreateCommentRequest) (*models.Comment, error)
	ListReplies(ctx context.Context, caller *models.Identity, commentID string) ([]*domain.CommentNode, error)
	VoteComment(ctx context.Context, caller *models.Identity, commentID string, req models.VoteRequest) (*models.Comment, domain.VoteStats, error)
	ApplyApproval(ctx context.Context, comment *models.Comment) error
	RecountAnswers(ctx context.Context, postID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	accountRepo repository.AccountRepository
	filter      *domain.WordFilter
	clock       clock.Clock
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	accountRepo repository.AccountRepository,
	filter *domain.WordFilter,
	clk clock.Clock,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		accountRepo: accountRepo,
		filter:      filter,
		clock:       clk,
	}
}

// AddComment creates a root comment, or a reply when parentCommentId is set.
func (s *commentService) AddComment(ctx context.Context, caller *models.Identity, req models.CreateCommentRequest) (*models.Comment, error) {
	if req.ParentCommentID != nil && *req.ParentCommentID != "" {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != req.PostID {
			return nil, errors.NotFoundf("parent comment %s on post %s", parent.CommentID, req.PostID)
		}
		return s.create(ctx, caller, parent.PostID, &parent.CommentID, req)
	}

	return s.create(ctx, caller, req.PostID, nil, req)
}

// AddReply answers an existing comment; the reply joins the parent's post.
func (s *commentService) AddReply(ctx context.Context, caller *models.Identity, parentCommentID string, req models.CreateCommentRequest) (*models.Comment, error) {
	parent, err := s.commentRepo.GetByID(ctx, parentCommentID)
	if err != nil {
		return nil, err
	}

	return s.create(ctx, caller, parent.PostID, &parent.CommentID, req)
}

func (s *commentService) create(ctx context.Context, caller *models.Identity, postID string, parentID *string, req models.CreateCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errors.BadRequestf("content is required")
	}

	authorID, err := resolveActor(caller, req.AccountID)
	if err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	author, err := s.accountRepo.GetAccountByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:          postID,
		ParentCommentID: parentID,
		AccountID:       author.AccountID,
		Content:         content,
		Status:          string(s.filter.InitialStatus(content)),
		CreatedAt:       s.clock.Now(),
		AuthorName:      author.Name,
		AuthorRole:      author.Role,
		AuthorImage:     author.Image,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if comment.Status == string(domain.StatusApproved) {
		if err := s.ApplyApproval(ctx, comment); err != nil {
			return nil, errors.Annotatef(err, "counting comment %s", comment.CommentID)
		}
	} else {
		logger.Infof("comment %s on post %s held for review", comment.CommentID, postID)
	}

	return comment, nil
}

// ApplyApproval is the single place a newly approved comment updates its
// post: answerCount goes up by one and a counselor author marks the post as
// having an expert answer. Callers invoke it only on a transition into
// approved.
func (s *commentService) ApplyApproval(ctx context.Context, comment *models.Comment) error {
	role := comment.AuthorRole
	if role == "" {
		author, err := s.accountRepo.GetAccountByID(ctx, comment.AccountID)
		if err != nil {
			return errors.Annotate(err, "looking up comment author")
		}
		role = author.Role
	}

	return s.postRepo.IncrementAnswerCount(ctx, comment.PostID, domain.IsExpert(role))
}

// RecountAnswers rebuilds a post's answerCount and hasExpertAnswer from its
// approved comments. Moderation calls it whenever a comment enters or leaves
// approved.
func (s *commentService) RecountAnswers(ctx context.Context, postID string) error {
	answers, expert, err := s.commentRepo.AnswerCounters(ctx, postID)
	if err != nil {
		return err
	}
	return s.postRepo.SetAnswerCounters(ctx, postID, answers, expert)
}

// ListReplies returns the approved reply subtree below a comment, loading
// it one level at a time.
func (s *commentService) ListReplies(ctx context.Context, caller *models.Identity, commentID string) ([]*domain.CommentNode, error) {
	parent, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	// The parent is the tree root so its subtree is kept even if the parent
	// itself is not approved.
	root := *parent
	root.ParentCommentID = nil
	nodes := []models.Comment{root}

	level := []string{parent.CommentID}
	for len(level) > 0 {
		var next []string
		for _, id := range level {
			replies, err := s.commentRepo.ListReplies(ctx, id, string(domain.StatusApproved))
			if err != nil {
				return nil, err
			}
			for _, reply := range replies {
				nodes = append(nodes, reply)
				next = append(next, reply.CommentID)
			}
		}
		level = next
	}

	for _, node := range domain.BuildCommentTree(nodes, viewerID(caller)) {
		if node.CommentID == parent.CommentID {
			return node.Replies, nil
		}
	}
	return []*domain.CommentNode{}, nil
}

func (s *commentService) VoteComment(ctx context.Context, caller *models.Identity, commentID string, req models.VoteRequest) (*models.Comment, domain.VoteStats, error) {
	voteType, err := domain.ParseVoteType(req.VoteType)
	if err != nil {
		return nil, domain.VoteStats{}, err
	}
	voterID, err := resolveActor(caller, req.AccountID)
	if err != nil {
		return nil, domain.VoteStats{}, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, domain.VoteStats{}, err
	}

	votes := domain.VoteSet{Up: comment.VoteUp, Down: comment.VoteDown}
	if err := votes.Cast(voterID, voteType); err != nil {
		return nil, domain.VoteStats{}, err
	}

	if err := s.commentRepo.UpdateVotes(ctx, commentID, votes.Up, votes.Down); err != nil {
		return nil, domain.VoteStats{}, err
	}

	comment.VoteUp = pq.StringArray(votes.Up)
	comment.VoteDown = pq.StringArray(votes.Down)
	return comment, votes.Stats(), nil
}
