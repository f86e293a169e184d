package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
	"github.com/lib/pq"

	"healthcommunity/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

const commentSelect = `
	SELECT c.*, a.name AS author_name, a.role AS author_role, a.image AS author_image
	FROM comments c
	JOIN accounts a ON a.account_id = c.account_id
`

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments
		(comment_id, post_id, parent_comment_id, account_id, content, vote_up, vote_down, status, created_at, updated_at)
		VALUES
		(:comment_id, :post_id, :parent_comment_id, :account_id, :content, :vote_up, :vote_down, :status, :created_at, :updated_at)
	`

	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	comment.UpdatedAt = comment.CreatedAt
	if comment.VoteUp == nil {
		comment.VoteUp = pq.StringArray{}
	}
	if comment.VoteDown == nil {
		comment.VoteDown = pq.StringArray{}
	}

	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return errors.Annotate(err, "creating comment")
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment

	if err := r.db.GetContext(ctx, &comment, commentSelect+` WHERE c.comment_id = $1`, commentID); err != nil {
		if isNoRows(err) {
			return nil, errors.NotFoundf("comment %s", commentID)
		}
		return nil, errors.Annotate(err, "getting comment")
	}

	return &comment, nil
}

// ListByPost returns every comment of a post in creation order. An empty
// status returns comments in any status.
func (r *commentRepository) ListByPost(ctx context.Context, postID, status string) ([]models.Comment, error) {
	comments := []models.Comment{}

	query := commentSelect + ` WHERE c.post_id = $1 AND ($2::text = '' OR c.status = $2) ORDER BY c.created_at`

	if err := r.db.SelectContext(ctx, &comments, query, postID, status); err != nil {
		return nil, errors.Annotate(err, "listing post comments")
	}

	return comments, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, parentCommentID, status string) ([]models.Comment, error) {
	comments := []models.Comment{}

	query := commentSelect + ` WHERE c.parent_comment_id = $1 AND ($2::text = '' OR c.status = $2) ORDER BY c.created_at`

	if err := r.db.SelectContext(ctx, &comments, query, parentCommentID, status); err != nil {
		return nil, errors.Annotate(err, "listing replies")
	}

	return comments, nil
}

func (r *commentRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Comment, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM comments WHERE status = $1`, status); err != nil {
		return nil, 0, errors.Annotate(err, "counting comments by status")
	}

	comments := []models.Comment{}
	query := commentSelect + ` WHERE c.status = $1 ORDER BY c.created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &comments, query, status, limit, offset); err != nil {
		return nil, 0, errors.Annotate(err, "listing comments by status")
	}

	return comments, total, nil
}

func (r *commentRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countByStatus(ctx, r.db, "comments")
}

func (r *commentRepository) UpdateVotes(ctx context.Context, commentID string, up, down []string) error {
	query := `UPDATE comments SET vote_up = $1, vote_down = $2 WHERE comment_id = $3`

	result, err := r.db.ExecContext(ctx, query, pq.StringArray(up), pq.StringArray(down), commentID)
	if err != nil {
		return errors.Annotate(err, "updating comment votes")
	}

	return expectAffected(result, "comment %s", commentID)
}

func (r *commentRepository) UpdateModeration(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments SET
			status = :status,
			moderated_by = :moderated_by,
			moderated_at = :moderated_at,
			rejection_reason = :rejection_reason,
			flagged_by = :flagged_by,
			flagged_at = :flagged_at,
			flag_reason = :flag_reason,
			updated_at = :updated_at
		WHERE comment_id = :comment_id
	`

	result, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return errors.Annotate(err, "updating comment moderation")
	}

	return expectAffected(result, "comment %s", comment.CommentID)
}

// AnswerCounters recomputes a post's approved comment count and whether any
// approved comment comes from a counselor.
func (r *commentRepository) AnswerCounters(ctx context.Context, postID string) (int, bool, error) {
	var row struct {
		Answers int  `db:"answers"`
		Expert  bool `db:"expert"`
	}

	query := `
		SELECT COUNT(*) AS answers, COALESCE(BOOL_OR(a.role = 'Counselor'), FALSE) AS expert
		FROM comments c
		JOIN accounts a ON a.account_id = c.account_id
		WHERE c.post_id = $1 AND c.status = 'approved'
	`

	if err := r.db.GetContext(ctx, &row, query, postID); err != nil {
		return 0, false, errors.Annotate(err, "computing answer counters")
	}

	return row.Answers, row.Expert, nil
}
