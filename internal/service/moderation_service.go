package service

import (
	"context"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"healthcommunity/internal/domain"
	"healthcommunity/internal/metrics"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type ModerationService interface {
	ModeratePost(ctx context.Context, moderator *models.Identity, postID string, action domain.Action, reason string) (*models.Post, error)
	ModerateComment(ctx context.Context, moderator *models.Identity, commentID string, action domain.Action, reason string) (*models.Comment, error)
	PostsByStatus(ctx context.Context, status domain.Status, page, limit int) ([]models.Post, int, error)
	CommentsByStatus(ctx context.Context, status domain.Status, page, limit int) ([]models.Comment, int, error)
	Stats(ctx context.Context) (*models.ModerationStats, error)
}

type moderationService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	comments    CommentService
	metrics     *metrics.Collector
	clock       clock.Clock
}

func NewModerationService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	comments CommentService,
	collector *metrics.Collector,
	clk clock.Clock,
) ModerationService {
	return &moderationService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		comments:    comments,
		metrics:     collector,
		clock:       clk,
	}
}

func moderatorID(moderator *models.Identity) (string, error) {
	if moderator == nil || moderator.AccountID == "" {
		return "", errors.Unauthorizedf("moderator identity is required")
	}
	return moderator.AccountID, nil
}

func (s *moderationService) ModeratePost(ctx context.Context, moderator *models.Identity, postID string, action domain.Action, reason string) (*models.Post, error) {
	actor, err := moderatorID(moderator)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	to, changed, err := domain.Moderate(&post.ModerationStamp, post.Status, action, actor, reason, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return post, nil
	}

	post.Status = string(to)
	post.UpdatedAt = s.clock.Now()
	if err := s.postRepo.UpdateModeration(ctx, post); err != nil {
		return nil, err
	}

	s.metrics.ModerationTransition("post", string(action))
	logger.Infof("post %s %s by %s", postID, to, actor)
	return post, nil
}

// ModerateComment moves a comment through the moderation table. The post's
// answer counters are rebuilt whenever the comment enters or leaves approved.
func (s *moderationService) ModerateComment(ctx context.Context, moderator *models.Identity, commentID string, action domain.Action, reason string) (*models.Comment, error) {
	actor, err := moderatorID(moderator)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(comment.Status)
	to, changed, err := domain.Moderate(&comment.ModerationStamp, comment.Status, action, actor, reason, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return comment, nil
	}

	comment.Status = string(to)
	comment.UpdatedAt = s.clock.Now()
	if err := s.commentRepo.UpdateModeration(ctx, comment); err != nil {
		return nil, err
	}

	if from == domain.StatusApproved || to == domain.StatusApproved {
		if err := s.comments.RecountAnswers(ctx, comment.PostID); err != nil {
			return nil, errors.Annotatef(err, "recounting answers for comment %s", commentID)
		}
	}

	s.metrics.ModerationTransition("comment", string(action))
	logger.Infof("comment %s %s by %s", commentID, to, actor)
	return comment, nil
}

func (s *moderationService) PostsByStatus(ctx context.Context, status domain.Status, page, limit int) ([]models.Post, int, error) {
	page, limit = pageLimit(page, limit, 20)
	return s.postRepo.ListByStatus(ctx, string(status), limit, (page-1)*limit)
}

func (s *moderationService) CommentsByStatus(ctx context.Context, status domain.Status, page, limit int) ([]models.Comment, int, error) {
	page, limit = pageLimit(page, limit, 20)
	return s.commentRepo.ListByStatus(ctx, string(status), limit, (page-1)*limit)
}

func (s *moderationService) Stats(ctx context.Context) (*models.ModerationStats, error) {
	posts, err := s.postRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &models.ModerationStats{
		Posts:    models.StatusCounts(posts),
		Comments: models.StatusCounts(comments),
	}, nil
}
