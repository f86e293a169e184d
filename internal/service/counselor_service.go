package service

import (
	"context"

	"github.com/juju/errors"

	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type CounselorService interface {
	CreateCounselor(ctx context.Context, req models.CreateCounselorRequest) (*models.Counselor, error)
	ListCounselors(ctx context.Context) ([]models.Counselor, error)
}

type counselorService struct {
	counselorRepo repository.CounselorRepository
	accountRepo   repository.AccountRepository
}

func NewCounselorService(counselorRepo repository.CounselorRepository, accountRepo repository.AccountRepository) CounselorService {
	return &counselorService{counselorRepo: counselorRepo, accountRepo: accountRepo}
}

// CreateCounselor attaches a provider profile to an account holding the
// Counselor role.
func (s *counselorService) CreateCounselor(ctx context.Context, req models.CreateCounselorRequest) (*models.Counselor, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Role != models.RoleCounselor {
		return nil, errors.BadRequestf("account %s does not have the %s role", account.AccountID, models.RoleCounselor)
	}

	counselor := &models.Counselor{
		AccountID:       account.AccountID,
		Specialty:       req.Specialty,
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
		Account:         account,
	}

	if err := s.counselorRepo.Create(ctx, counselor); err != nil {
		return nil, err
	}
	return counselor, nil
}

func (s *counselorService) ListCounselors(ctx context.Context) ([]models.Counselor, error) {
	return s.counselorRepo.List(ctx)
}
