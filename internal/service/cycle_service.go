package service

import (
	"context"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"healthcommunity/internal/domain"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type CycleService interface {
	CreateCycle(ctx context.Context, req models.CreateCycleRequest) (*models.Cycle, []models.Reminder, error)
	GetCycle(ctx context.Context, cycleID string) (*models.Cycle, error)
	ListCycles(ctx context.Context, customerID string) ([]models.Cycle, error)
	UpdateCycle(ctx context.Context, cycleID string, req models.UpdateCycleRequest) (*models.Cycle, error)
	DeleteCycle(ctx context.Context, cycleID string) error
}

type cycleService struct {
	cycleRepo repository.CycleRepository
	clock     clock.Clock
}

func NewCycleService(cycleRepo repository.CycleRepository, clk clock.Clock) CycleService {
	return &cycleService{cycleRepo: cycleRepo, clock: clk}
}

// CreateCycle stores the cycle with its derived fields and its pill and
// ovulation reminders in one transaction.
func (s *cycleService) CreateCycle(ctx context.Context, req models.CreateCycleRequest) (*models.Cycle, []models.Reminder, error) {
	if req.CustomerID == "" {
		return nil, nil, errors.BadRequestf("customerId is required")
	}

	cycle := &models.Cycle{
		CustomerID: req.CustomerID,
		PeriodDays: req.PeriodDays,
		Notes:      req.Notes,
		CreatedAt:  s.clock.Now(),
	}
	if req.IsPredicted != nil {
		cycle.IsPredicted = *req.IsPredicted
	}

	if err := domain.ApplyPrediction(cycle); err != nil {
		return nil, nil, err
	}

	reminders := domain.CycleReminders(cycle)
	if err := s.cycleRepo.CreateWithReminders(ctx, cycle, reminders); err != nil {
		return nil, nil, err
	}

	return cycle, reminders, nil
}

func (s *cycleService) GetCycle(ctx context.Context, cycleID string) (*models.Cycle, error) {
	return s.cycleRepo.GetByID(ctx, cycleID)
}

func (s *cycleService) ListCycles(ctx context.Context, customerID string) ([]models.Cycle, error) {
	return s.cycleRepo.ListByCustomer(ctx, customerID)
}

// UpdateCycle replaces periodDays wholesale when given and recomputes the
// derived fields; otherwise only notes and isPredicted change.
func (s *cycleService) UpdateCycle(ctx context.Context, cycleID string, req models.UpdateCycleRequest) (*models.Cycle, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	if req.PeriodDays != nil {
		cycle.PeriodDays = *req.PeriodDays
		if err := domain.ApplyPrediction(cycle); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		cycle.Notes = *req.Notes
	}
	if req.IsPredicted != nil {
		cycle.IsPredicted = *req.IsPredicted
	}
	cycle.UpdatedAt = s.clock.Now()

	if err := s.cycleRepo.Update(ctx, cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

func (s *cycleService) DeleteCycle(ctx context.Context, cycleID string) error {
	return s.cycleRepo.Delete(ctx, cycleID)
}
