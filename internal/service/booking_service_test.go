package service

import (
	"context"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"healthcommunity/internal/models"
)

type bookingFixture struct {
	bookings   *MockBookingRepository
	schedules  *MockScheduleRepository
	counselors *MockCounselorRepository
	service    BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings:   new(MockBookingRepository),
		schedules:  new(MockScheduleRepository),
		counselors: new(MockCounselorRepository),
	}
	f.service = NewBookingService(f.bookings, f.schedules, f.counselors, testclock.NewClock(testNow))
	return f
}

func TestBookingService_CreateBooking(t *testing.T) {
	customer := &models.Identity{AccountID: "cust-1", Role: models.RoleCustomer}

	tests := []struct {
		name     string
		schedule *models.ConsultationSchedule
		wantErr  errors.ConstError
	}{
		{
			name:     "available future slot",
			schedule: &models.ConsultationSchedule{ScheduleID: "s-1", Status: models.ScheduleAvailable, StartTime: testNow.Add(24 * time.Hour)},
		},
		{
			name:     "slot already booked",
			schedule: &models.ConsultationSchedule{ScheduleID: "s-1", Status: models.ScheduleBooked, StartTime: testNow.Add(24 * time.Hour)},
			wantErr:  errors.AlreadyExists,
		},
		{
			name:     "slot in the past",
			schedule: &models.ConsultationSchedule{ScheduleID: "s-1", Status: models.ScheduleAvailable, StartTime: testNow.Add(-time.Hour)},
			wantErr:  errors.BadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			f.schedules.On("GetByID", mock.Anything, "s-1").Return(tt.schedule, nil)
			f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*models.ConsultationBooking")).Return(nil).Maybe()

			booking, err := f.service.CreateBooking(context.Background(), customer, models.CreateBookingRequest{ScheduleID: "s-1"})

			if tt.wantErr != "" {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "cust-1", booking.CustomerID)
			assert.Equal(t, models.BookingPending, booking.Status)
			assert.Equal(t, models.ScheduleBooked, booking.Schedule.Status)
		})
	}
}

func TestBookingService_CreateBookingForAnotherCustomer(t *testing.T) {
	f := newBookingFixture()
	caller := &models.Identity{AccountID: "cust-1", Role: models.RoleCustomer}

	_, err := f.service.CreateBooking(context.Background(), caller, models.CreateBookingRequest{CustomerID: "cust-2", ScheduleID: "s-1"})

	assert.True(t, errors.Is(err, errors.Forbidden))
}

func TestBookingService_UpdateBooking(t *testing.T) {
	rating := func(v int) *int { return &v }
	str := func(s string) *string { return &s }

	tests := []struct {
		name         string
		from         string
		req          models.UpdateBookingRequest
		wantErr      errors.ConstError
		wantSchedule string
	}{
		{"confirm", models.BookingPending, models.UpdateBookingRequest{Status: str(models.BookingConfirmed)}, "", models.ScheduleBooked},
		{"cancel frees slot", models.BookingConfirmed, models.UpdateBookingRequest{Status: str(models.BookingCancelled)}, "", models.ScheduleAvailable},
		{"complete with rating", models.BookingConfirmed, models.UpdateBookingRequest{Status: str(models.BookingCompleted), Rating: rating(5), Feedback: str("helpful")}, "", models.ScheduleCompleted},
		{"rating before completion", models.BookingConfirmed, models.UpdateBookingRequest{Rating: rating(4)}, errors.BadRequest, ""},
		{"feedback before completion", models.BookingPending, models.UpdateBookingRequest{Feedback: str("great")}, errors.BadRequest, ""},
		{"rating out of range", models.BookingCompleted, models.UpdateBookingRequest{Rating: rating(6)}, errors.NotValid, ""},
		{"pending cannot complete", models.BookingPending, models.UpdateBookingRequest{Status: str(models.BookingCompleted)}, errors.BadRequest, ""},
		{"cancelled is final", models.BookingCancelled, models.UpdateBookingRequest{Status: str(models.BookingConfirmed)}, errors.BadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			booking := &models.ConsultationBooking{
				BookingID: "b-1",
				Status:    tt.from,
				Schedule:  &models.ConsultationSchedule{ScheduleID: "s-1", Status: models.ScheduleBooked},
			}
			f.bookings.On("GetByID", mock.Anything, "b-1").Return(booking, nil)
			f.bookings.On("Update", mock.Anything, booking, tt.wantSchedule).Return(nil).Maybe()

			updated, err := f.service.UpdateBooking(context.Background(), admin, "b-1", tt.req)

			if tt.wantErr != "" {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSchedule, updated.Schedule.Status)
			f.bookings.AssertExpectations(t)
		})
	}
}

func TestBookingService_UpdateNoteOnCancelledBookingLeavesSlot(t *testing.T) {
	f := newBookingFixture()
	note := "customer asked for a refund"
	booking := &models.ConsultationBooking{
		BookingID:  "b-1",
		ScheduleID: "s-1",
		Status:     models.BookingCancelled,
		// the slot was rebooked by someone else after the cancellation
		Schedule: &models.ConsultationSchedule{ScheduleID: "s-1", Status: models.ScheduleBooked},
	}
	f.bookings.On("GetByID", mock.Anything, "b-1").Return(booking, nil)
	f.bookings.On("Update", mock.Anything, booking, "").Return(nil).Once()

	updated, err := f.service.UpdateBooking(context.Background(), admin, "b-1", models.UpdateBookingRequest{Note: &note})

	require.NoError(t, err)
	assert.Equal(t, note, updated.Note)
	assert.Equal(t, models.ScheduleBooked, updated.Schedule.Status)
	f.bookings.AssertExpectations(t)
}

func TestBookingService_Access(t *testing.T) {
	owner := &models.Identity{AccountID: "cust-1", Role: models.RoleCustomer}
	stranger := &models.Identity{AccountID: "cust-2", Role: models.RoleCustomer}
	slotCounselor := &models.Identity{AccountID: "acc-co-1", Role: models.RoleCounselor}
	otherCounselor := &models.Identity{AccountID: "acc-co-2", Role: models.RoleCounselor}
	confirmed := models.BookingConfirmed

	tests := []struct {
		name      string
		caller    *models.Identity
		update    bool
		wantErr   errors.ConstError
		counselor string
	}{
		{name: "owner reads", caller: owner},
		{name: "admin reads", caller: admin},
		{name: "slot counselor reads", caller: slotCounselor, counselor: "co-1"},
		{name: "stranger cannot read", caller: stranger, wantErr: errors.Forbidden},
		{name: "other counselor cannot read", caller: otherCounselor, counselor: "co-2", wantErr: errors.Forbidden},
		{name: "anonymous cannot read", caller: nil, wantErr: errors.Unauthorized},
		{name: "slot counselor updates", caller: slotCounselor, counselor: "co-1", update: true},
		{name: "owner cannot update", caller: owner, update: true, wantErr: errors.Forbidden},
		{name: "other counselor cannot update", caller: otherCounselor, counselor: "co-2", update: true, wantErr: errors.Forbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			booking := &models.ConsultationBooking{
				BookingID:  "b-1",
				CustomerID: "cust-1",
				ScheduleID: "s-1",
				Status:     models.BookingPending,
				Schedule:   &models.ConsultationSchedule{ScheduleID: "s-1", CounselorID: "co-1", Status: models.ScheduleBooked},
			}
			f.bookings.On("GetByID", mock.Anything, "b-1").Return(booking, nil).Maybe()
			if tt.counselor != "" {
				f.counselors.On("GetByAccountID", mock.Anything, tt.caller.AccountID).
					Return(&models.Counselor{CounselorID: tt.counselor, AccountID: tt.caller.AccountID}, nil)
			}
			f.bookings.On("Update", mock.Anything, booking, models.ScheduleBooked).Return(nil).Maybe()

			var err error
			if tt.update {
				_, err = f.service.UpdateBooking(context.Background(), tt.caller, "b-1", models.UpdateBookingRequest{Status: &confirmed})
			} else {
				_, err = f.service.GetBooking(context.Background(), tt.caller, "b-1")
			}

			if tt.wantErr != "" {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBookingService_DeleteBooking(t *testing.T) {
	t.Run("active booking frees slot", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("GetByID", mock.Anything, "b-1").
			Return(&models.ConsultationBooking{BookingID: "b-1", ScheduleID: "s-1", Status: models.BookingConfirmed}, nil)
		f.bookings.On("Delete", mock.Anything, "b-1").Return(nil)
		f.schedules.On("GetByID", mock.Anything, "s-1").
			Return(&models.ConsultationSchedule{ScheduleID: "s-1", Status: models.ScheduleBooked}, nil)
		f.schedules.On("Update", mock.Anything, mock.MatchedBy(func(s *models.ConsultationSchedule) bool {
			return s.Status == models.ScheduleAvailable
		})).Return(nil)

		require.NoError(t, f.service.DeleteBooking(context.Background(), "b-1"))
		f.schedules.AssertExpectations(t)
	})

	t.Run("completed booking leaves slot", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("GetByID", mock.Anything, "b-1").
			Return(&models.ConsultationBooking{BookingID: "b-1", ScheduleID: "s-1", Status: models.BookingCompleted}, nil)
		f.bookings.On("Delete", mock.Anything, "b-1").Return(nil)

		require.NoError(t, f.service.DeleteBooking(context.Background(), "b-1"))
		f.schedules.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
