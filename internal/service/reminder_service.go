package service

import (
	"context"

	"github.com/juju/clock"

	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type ReminderService interface {
	CreateReminder(ctx context.Context, req models.CreateReminderRequest) (*models.Reminder, error)
	GetReminder(ctx context.Context, reminderID string) (*models.Reminder, error)
	ListReminders(ctx context.Context, customerID string) ([]models.Reminder, error)
	UpdateReminder(ctx context.Context, reminderID string, req models.UpdateReminderRequest) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, reminderID string) error
}

type reminderService struct {
	reminderRepo repository.ReminderRepository
	clock        clock.Clock
}

func NewReminderService(reminderRepo repository.ReminderRepository, clk clock.Clock) ReminderService {
	return &reminderService{reminderRepo: reminderRepo, clock: clk}
}

func (s *reminderService) CreateReminder(ctx context.Context, req models.CreateReminderRequest) (*models.Reminder, error) {
	reminder := &models.Reminder{
		CustomerID: req.CustomerID,
		Type:       req.Type,
		Date:       req.Date,
		Message:    req.Message,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *reminderService) GetReminder(ctx context.Context, reminderID string) (*models.Reminder, error) {
	return s.reminderRepo.GetByID(ctx, reminderID)
}

func (s *reminderService) ListReminders(ctx context.Context, customerID string) ([]models.Reminder, error) {
	return s.reminderRepo.ListByCustomer(ctx, customerID)
}

func (s *reminderService) UpdateReminder(ctx context.Context, reminderID string, req models.UpdateReminderRequest) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		reminder.Type = *req.Type
	}
	if req.Date != nil {
		reminder.Date = *req.Date
	}
	if req.Message != nil {
		reminder.Message = *req.Message
	}
	if req.IsSent != nil {
		reminder.IsSent = *req.IsSent
	}
	reminder.UpdatedAt = s.clock.Now()

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *reminderService) DeleteReminder(ctx context.Context, reminderID string) error {
	return s.reminderRepo.Delete(ctx, reminderID)
}
