package service

import (
	"context"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"healthcommunity/internal/domain"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type BookingService interface {
	CreateBooking(ctx context.Context, caller *models.Identity, req models.CreateBookingRequest) (*models.ConsultationBooking, error)
	GetBooking(ctx context.Context, caller *models.Identity, bookingID string) (*models.ConsultationBooking, error)
	ListBookings(ctx context.Context) ([]models.ConsultationBooking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.ConsultationBooking, error)
	ListByCounselorAccount(ctx context.Context, accountID string) ([]models.ConsultationBooking, error)
	UpdateBooking(ctx context.Context, caller *models.Identity, bookingID string, req models.UpdateBookingRequest) (*models.ConsultationBooking, error)
	DeleteBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	bookingRepo   repository.BookingRepository
	scheduleRepo  repository.ScheduleRepository
	counselorRepo repository.CounselorRepository
	clock         clock.Clock
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	scheduleRepo repository.ScheduleRepository,
	counselorRepo repository.CounselorRepository,
	clk clock.Clock,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		counselorRepo: counselorRepo,
		clock:         clk,
	}
}

// isSlotCounselor reports whether caller is the counselor holding the
// booking's slot.
func (s *bookingService) isSlotCounselor(ctx context.Context, caller *models.Identity, booking *models.ConsultationBooking) (bool, error) {
	if caller == nil || caller.Role != models.RoleCounselor || booking.Schedule == nil {
		return false, nil
	}
	counselor, err := s.counselorRepo.GetByAccountID(ctx, caller.AccountID)
	if errors.Is(err, errors.NotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return counselor.CounselorID == booking.Schedule.CounselorID, nil
}

// CreateBooking reserves an available future slot for the customer. The
// repository re-checks availability under a row lock.
func (s *bookingService) CreateBooking(ctx context.Context, caller *models.Identity, req models.CreateBookingRequest) (*models.ConsultationBooking, error) {
	customerID, err := resolveActor(caller, req.CustomerID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.Status != models.ScheduleAvailable {
		return nil, errors.AlreadyExistsf("booking for schedule %s", schedule.ScheduleID)
	}

	now := s.clock.Now()
	if !schedule.StartTime.After(now) {
		return nil, errors.BadRequestf("schedule %s has already started", schedule.ScheduleID)
	}

	booking := &models.ConsultationBooking{
		CustomerID:  customerID,
		ScheduleID:  schedule.ScheduleID,
		BookingDate: now,
		Note:        req.Note,
		Status:      models.BookingPending,
		CreatedAt:   now,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	schedule.Status = models.ScheduleBooked
	booking.Schedule = schedule
	return booking, nil
}

// GetBooking is visible to the booking customer, the slot's counselor and
// admins.
func (s *bookingService) GetBooking(ctx context.Context, caller *models.Identity, bookingID string) (*models.ConsultationBooking, error) {
	if caller == nil {
		return nil, errors.Unauthorizedf("authentication required")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if canManage(caller, booking.CustomerID) {
		return booking, nil
	}

	ok, err := s.isSlotCounselor(ctx, caller, booking)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Forbiddenf("booking %s belongs to another account", bookingID)
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]models.ConsultationBooking, error) {
	return s.bookingRepo.List(ctx)
}

func (s *bookingService) ListByCustomer(ctx context.Context, customerID string) ([]models.ConsultationBooking, error) {
	return s.bookingRepo.ListByCustomer(ctx, customerID)
}

func (s *bookingService) ListByCounselorAccount(ctx context.Context, accountID string) ([]models.ConsultationBooking, error) {
	return s.bookingRepo.ListByCounselorAccount(ctx, accountID)
}

// UpdateBooking moves a booking through its lifecycle and keeps the slot in
// step: cancelling frees it, completing closes it. The slot is only written
// when the status actually changes. Rating and feedback are accepted only
// once the consultation is completed. Admins and the slot's counselor may
// update a booking.
func (s *bookingService) UpdateBooking(ctx context.Context, caller *models.Identity, bookingID string, req models.UpdateBookingRequest) (*models.ConsultationBooking, error) {
	if caller == nil {
		return nil, errors.Unauthorizedf("authentication required")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		ok, err := s.isSlotCounselor(ctx, caller, booking)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Forbiddenf("booking %s is not on your schedule", bookingID)
		}
	}

	status := booking.Status
	if req.Status != nil {
		if err := domain.NextBookingStatus(booking.Status, *req.Status); err != nil {
			return nil, err
		}
		status = *req.Status
	}

	if err := domain.ValidateRating(status, req.Rating); err != nil {
		return nil, err
	}
	if req.Feedback != nil && status != models.BookingCompleted {
		return nil, errors.BadRequestf("feedback is only allowed after the consultation is completed")
	}

	var scheduleStatus string
	if status != booking.Status {
		scheduleStatus = domain.ScheduleStatusFor(status)
	}

	booking.Status = status
	if req.Note != nil {
		booking.Note = *req.Note
	}
	if req.Result != nil {
		booking.Result = *req.Result
	}
	if req.Rating != nil {
		booking.Rating = req.Rating
	}
	if req.Feedback != nil {
		booking.Feedback = *req.Feedback
	}
	booking.UpdatedAt = s.clock.Now()

	if err := s.bookingRepo.Update(ctx, booking, scheduleStatus); err != nil {
		return nil, err
	}
	if scheduleStatus != "" && booking.Schedule != nil {
		booking.Schedule.Status = scheduleStatus
	}
	return booking, nil
}

// DeleteBooking removes a booking and frees its slot if the booking was
// still holding it.
func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return err
	}

	if booking.Status != models.BookingPending && booking.Status != models.BookingConfirmed {
		return nil
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, booking.ScheduleID)
	if err != nil {
		return errors.Annotatef(err, "freeing schedule of booking %s", bookingID)
	}
	schedule.Status = models.ScheduleAvailable
	schedule.UpdatedAt = s.clock.Now()
	return s.scheduleRepo.Update(ctx, schedule)
}
