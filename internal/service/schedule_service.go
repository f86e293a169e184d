package service

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"healthcommunity/internal/config"
	"healthcommunity/internal/domain"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type ScheduleService interface {
	AvailableCounselors(ctx context.Context, date, startTime, endTime string) ([]models.Counselor, error)
	ListSchedules(ctx context.Context) ([]models.ConsultationSchedule, error)
	FilterSchedules(ctx context.Context, counselorID, date string) ([]models.ConsultationSchedule, error)
	SchedulesByAccount(ctx context.Context, accountID string) ([]models.ConsultationSchedule, error)
	CreateSchedule(ctx context.Context, req models.CreateScheduleRequest) (*models.ConsultationSchedule, error)
	UpdateSchedule(ctx context.Context, scheduleID string, req models.UpdateScheduleRequest) (*models.ConsultationSchedule, error)
	DeleteSchedule(ctx context.Context, scheduleID string) error
	GenerateSchedules(ctx context.Context, plan domain.SlotPlan, dryRun bool) ([]models.ConsultationSchedule, error)
}

type scheduleService struct {
	scheduleRepo  repository.ScheduleRepository
	counselorRepo repository.CounselorRepository
	location      *time.Location
	clock         clock.Clock
}

func NewScheduleService(
	scheduleRepo repository.ScheduleRepository,
	counselorRepo repository.CounselorRepository,
	cfg *config.Config,
	clk clock.Clock,
) ScheduleService {
	return &scheduleService{
		scheduleRepo:  scheduleRepo,
		counselorRepo: counselorRepo,
		location:      cfg.Location(),
		clock:         clk,
	}
}

// AvailableCounselors lists each counselor with at least one available slot
// starting inside the local time range on date.
func (s *scheduleService) AvailableCounselors(ctx context.Context, date, startTime, endTime string) ([]models.Counselor, error) {
	start, end, err := domain.SlotWindow(s.location, date, startTime, endTime)
	if err != nil {
		return nil, err
	}

	slots, err := s.scheduleRepo.FindAvailableBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return domain.UniqueCounselors(slots), nil
}

func (s *scheduleService) ListSchedules(ctx context.Context) ([]models.ConsultationSchedule, error) {
	return s.scheduleRepo.List(ctx)
}

// FilterSchedules lists a counselor's schedules, restricted to one local day
// when date is given.
func (s *scheduleService) FilterSchedules(ctx context.Context, counselorID, date string) ([]models.ConsultationSchedule, error) {
	if counselorID == "" {
		return nil, errors.BadRequestf("counselorId is required")
	}

	if date == "" {
		return s.scheduleRepo.ListByCounselor(ctx, counselorID, nil, nil)
	}

	from, to, err := domain.DayWindow(s.location, date)
	if err != nil {
		return nil, err
	}
	return s.scheduleRepo.ListByCounselor(ctx, counselorID, &from, &to)
}

func (s *scheduleService) SchedulesByAccount(ctx context.Context, accountID string) ([]models.ConsultationSchedule, error) {
	counselor, err := s.counselorRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return s.scheduleRepo.ListByCounselor(ctx, counselor.CounselorID, nil, nil)
}

func (s *scheduleService) CreateSchedule(ctx context.Context, req models.CreateScheduleRequest) (*models.ConsultationSchedule, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, errors.BadRequestf("endTime must be after startTime")
	}
	if _, err := s.counselorRepo.GetByID(ctx, req.CounselorID); err != nil {
		return nil, err
	}

	schedule := &models.ConsultationSchedule{
		CounselorID: req.CounselorID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      models.ScheduleAvailable,
		Note:        req.Note,
		Price:       req.Price,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, scheduleID string, req models.UpdateScheduleRequest) (*models.ConsultationSchedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		schedule.Status = *req.Status
	}
	if req.Note != nil {
		schedule.Note = *req.Note
	}
	if req.Price != nil {
		schedule.Price = *req.Price
	}
	schedule.UpdatedAt = s.clock.Now()

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if schedule.Status == models.ScheduleBooked {
		return errors.BadRequestf("schedule %s is booked", scheduleID)
	}

	return s.scheduleRepo.Delete(ctx, scheduleID)
}

// GenerateSchedules expands plan into available slots for every counselor
// and stores them in one batch unless dryRun is set.
func (s *scheduleService) GenerateSchedules(ctx context.Context, plan domain.SlotPlan, dryRun bool) ([]models.ConsultationSchedule, error) {
	if len(plan.CounselorIDs) == 0 {
		counselors, err := s.counselorRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range counselors {
			plan.CounselorIDs = append(plan.CounselorIDs, c.CounselorID)
		}
	} else {
		for _, id := range plan.CounselorIDs {
			if _, err := s.counselorRepo.GetByID(ctx, id); err != nil {
				return nil, err
			}
		}
	}
	if plan.Location == nil {
		plan.Location = s.location
	}

	schedules, err := domain.GenerateSlots(plan)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return schedules, nil
	}

	if err := s.scheduleRepo.CreateBatch(ctx, schedules); err != nil {
		return nil, err
	}
	logger.Infof("generated %d schedules for %d counselors", len(schedules), len(plan.CounselorIDs))
	return schedules, nil
}
