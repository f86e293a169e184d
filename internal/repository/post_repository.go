package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
	"github.com/lib/pq"

	"healthcommunity/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

// PostFilter carries the forum listing query parameters.
type PostFilter struct {
	Page     int
	Limit    int
	Category string
	Tag      string
	Search   string
	// Sort is newest, popular or votes.
	Sort string
	// Type is all, questions, expert, following or myPosts.
	Type      string
	AccountID string
}

const postSelect = `
	SELECT p.*, a.name AS author_name, a.role AS author_role
	FROM posts p
	JOIN accounts a ON a.account_id = p.account_id
`

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(post_id, account_id, title, content, category, tags, vote_up, vote_down, is_anonymous, status, created_at, updated_at)
		VALUES
		(:post_id, :account_id, :title, :content, :category, :tags, :vote_up, :vote_down, :is_anonymous, :status, :created_at, :updated_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = post.CreatedAt
	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}
	if post.VoteUp == nil {
		post.VoteUp = pq.StringArray{}
	}
	if post.VoteDown == nil {
		post.VoteDown = pq.StringArray{}
	}

	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return errors.Annotate(err, "creating post")
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	if err := r.db.GetContext(ctx, &post, postSelect+` WHERE p.post_id = $1`, postID); err != nil {
		if isNoRows(err) {
			return nil, errors.NotFoundf("post %s", postID)
		}
		return nil, errors.Annotate(err, "getting post")
	}

	return &post, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, filter PostFilter) ([]models.Post, int, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Type == "myPosts" && filter.AccountID != "" {
		where = append(where, "p.account_id = "+arg(filter.AccountID), "p.status IN ('approved', 'pending')")
	} else {
		where = append(where, "p.status = 'approved'")
	}
	if filter.Category != "" {
		where = append(where, "p.category = "+arg(filter.Category))
	}
	if filter.Tag != "" {
		where = append(where, arg(filter.Tag)+" = ANY(p.tags)")
	}
	if filter.Search != "" {
		where = append(where, "p.title ILIKE "+arg("%"+filter.Search+"%"))
	}
	switch filter.Type {
	case "questions":
		where = append(where, "p.has_expert_answer = FALSE")
	case "expert":
		where = append(where, "p.has_expert_answer = TRUE")
	case "following":
		if filter.AccountID != "" {
			where = append(where, arg(filter.AccountID)+" = ANY(p.vote_up)")
		}
	}

	clause := " WHERE " + strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM posts p` + clause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, errors.Annotate(err, "counting posts")
	}

	order := " ORDER BY p.created_at DESC"
	switch filter.Sort {
	case "popular":
		order = " ORDER BY p.view_count DESC, p.created_at DESC"
	case "votes":
		order = " ORDER BY cardinality(p.vote_up) - cardinality(p.vote_down) DESC, p.created_at DESC"
	}

	query := postSelect + clause + order +
		fmt.Sprintf(" LIMIT %s OFFSET %s", arg(filter.Limit), arg(offset(filter.Page, filter.Limit)))

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, 0, errors.Annotate(err, "listing posts")
	}

	return posts, total, nil
}

func (r *PostRepositoryImpl) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Post, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts WHERE status = $1`, status); err != nil {
		return nil, 0, errors.Annotate(err, "counting posts by status")
	}

	posts := []models.Post{}
	query := postSelect + ` WHERE p.status = $1 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &posts, query, status, limit, offset); err != nil {
		return nil, 0, errors.Annotate(err, "listing posts by status")
	}

	return posts, total, nil
}

type statusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

func (r *PostRepositoryImpl) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countByStatus(ctx, r.db, "posts")
}

func countByStatus(ctx context.Context, db *sqlx.DB, table string) (map[string]int, error) {
	var rows []statusCount
	query := `SELECT status, COUNT(*) AS count FROM ` + table + ` GROUP BY status`
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Annotatef(err, "counting %s by status", table)
	}

	counts := map[string]int{"pending": 0, "approved": 0, "rejected": 0, "flagged": 0}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			category = :category,
			tags = :tags,
			is_anonymous = :is_anonymous,
			status = :status,
			edited_at = :edited_at,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = time.Now()
	}
	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return errors.Annotate(err, "updating post")
	}

	return expectAffected(result, "post %s", post.PostID)
}

func (r *PostRepositoryImpl) UpdateVotes(ctx context.Context, postID string, up, down []string) error {
	query := `UPDATE posts SET vote_up = $1, vote_down = $2 WHERE post_id = $3`

	result, err := r.db.ExecContext(ctx, query, pq.StringArray(up), pq.StringArray(down), postID)
	if err != nil {
		return errors.Annotate(err, "updating post votes")
	}

	return expectAffected(result, "post %s", postID)
}

func (r *PostRepositoryImpl) UpdateModeration(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			status = :status,
			moderated_by = :moderated_by,
			moderated_at = :moderated_at,
			rejection_reason = :rejection_reason,
			flagged_by = :flagged_by,
			flagged_at = :flagged_at,
			flag_reason = :flag_reason,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return errors.Annotate(err, "updating post moderation")
	}

	return expectAffected(result, "post %s", post.PostID)
}

func (r *PostRepositoryImpl) IncrementViewCount(ctx context.Context, postID string) (int, error) {
	var views int

	query := `UPDATE posts SET view_count = view_count + 1 WHERE post_id = $1 RETURNING view_count`

	if err := r.db.GetContext(ctx, &views, query, postID); err != nil {
		if isNoRows(err) {
			return 0, errors.NotFoundf("post %s", postID)
		}
		return 0, errors.Annotate(err, "incrementing view count")
	}

	return views, nil
}

// IncrementAnswerCount records one newly approved comment; expert marks the
// post as having an expert answer.
func (r *PostRepositoryImpl) IncrementAnswerCount(ctx context.Context, postID string, expert bool) error {
	query := `
		UPDATE posts SET
			answer_count = answer_count + 1,
			has_expert_answer = has_expert_answer OR $1::boolean
		WHERE post_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, expert, postID)
	if err != nil {
		return errors.Annotate(err, "incrementing answer count")
	}

	return expectAffected(result, "post %s", postID)
}

func (r *PostRepositoryImpl) SetAnswerCounters(ctx context.Context, postID string, answerCount int, hasExpertAnswer bool) error {
	query := `UPDATE posts SET answer_count = $1, has_expert_answer = $2 WHERE post_id = $3`

	if _, err := r.db.ExecContext(ctx, query, answerCount, hasExpertAnswer, postID); err != nil {
		return errors.Annotate(err, "setting answer counters")
	}

	return nil
}

// Delete removes the post together with all of its comments.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "starting transaction")
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return errors.Annotate(err, "deleting post comments")
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return errors.Annotate(err, "deleting post")
	}
	if err := expectAffected(result, "post %s", postID); err != nil {
		return err
	}

	return errors.Annotate(tx.Commit(), "committing post delete")
}
