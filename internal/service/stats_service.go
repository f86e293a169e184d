package service

import (
	"context"

	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

const trendingTopicsLimit = 5

type StatsService interface {
	Community(ctx context.Context) (*models.CommunityStats, error)
	CountTables(ctx context.Context) (int, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Community(ctx context.Context) (*models.CommunityStats, error) {
	return s.statsRepo.CommunityStats(ctx, trendingTopicsLimit)
}

// CountTables is used by the health check to confirm the schema is in place.
func (s *statsService) CountTables(ctx context.Context) (int, error) {
	return s.statsRepo.CountTables(ctx)
}
