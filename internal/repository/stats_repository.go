package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"

	"healthcommunity/internal/models"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

// CountTables reports the number of tables in the public schema; the health
// endpoint uses it to confirm migrations ran.
func (r *statsRepository) CountTables(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
	`)
	if err != nil {
		return 0, errors.Annotate(err, "counting database tables")
	}

	return count, nil
}

func (r *statsRepository) CommunityStats(ctx context.Context, trendingLimit int) (*models.CommunityStats, error) {
	stats := &models.CommunityStats{TrendingTopics: []models.TrendingTopic{}}

	activeQuery := `
		SELECT COUNT(*) FROM accounts a
		WHERE EXISTS (SELECT 1 FROM posts p WHERE p.account_id = a.account_id)
		OR EXISTS (SELECT 1 FROM comments c WHERE c.account_id = a.account_id)
	`
	if err := r.db.GetContext(ctx, &stats.ActiveMembers, activeQuery); err != nil {
		return nil, errors.Annotate(err, "counting active members")
	}

	if err := r.db.GetContext(ctx, &stats.Discussions, `SELECT COUNT(*) FROM posts WHERE status = 'approved'`); err != nil {
		return nil, errors.Annotate(err, "counting discussions")
	}

	expertQuery := `
		SELECT COUNT(*) FROM comments c
		JOIN accounts a ON a.account_id = c.account_id
		WHERE c.status = 'approved' AND a.role IN ('Counselor', 'Doctor')
	`
	if err := r.db.GetContext(ctx, &stats.ExpertAnswers, expertQuery); err != nil {
		return nil, errors.Annotate(err, "counting expert answers")
	}

	var totalTags int
	tagsQuery := `SELECT COALESCE(SUM(cardinality(tags)), 0) FROM posts WHERE status = 'approved'`
	if err := r.db.GetContext(ctx, &totalTags, tagsQuery); err != nil {
		return nil, errors.Annotate(err, "counting tags")
	}

	trendingQuery := `
		SELECT tag AS name, COUNT(*) AS posts
		FROM posts, unnest(tags) AS tag
		WHERE status = 'approved'
		GROUP BY tag
		ORDER BY posts DESC, tag
		LIMIT $1
	`
	if err := r.db.SelectContext(ctx, &stats.TrendingTopics, trendingQuery, trendingLimit); err != nil {
		return nil, errors.Annotate(err, "listing trending tags")
	}

	for i := range stats.TrendingTopics {
		stats.TrendingTopics[i].Trend = trendShare(stats.TrendingTopics[i].Posts, totalTags)
	}

	return stats, nil
}

// trendShare formats a tag's share of all tag usages, e.g. "+12.5%".
func trendShare(posts, total int) string {
	if total == 0 {
		return "+0%"
	}
	share := math.Round(float64(posts)/float64(total)*1000) / 10
	return fmt.Sprintf("+%g%%", share)
}
