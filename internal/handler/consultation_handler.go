package handlers

import (
	"net/http"

	"healthcommunity/internal/models"
)

func (h *Handlers) CreateCounselor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCounselorRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	counselor, err := h.CounselorService.CreateCounselor(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, counselor, http.StatusCreated)
}

func (h *Handlers) GetCounselors(w http.ResponseWriter, r *http.Request) {
	counselors, err := h.CounselorService.ListCounselors(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, counselors, http.StatusOK)
}

// GetAvailableCounselors lists counselors with a free slot starting in the
// requested local time range.
func (h *Handlers) GetAvailableCounselors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	counselors, err := h.ScheduleService.AvailableCounselors(r.Context(), q.Get("date"), q.Get("startTime"), q.Get("endTime"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, counselors, http.StatusOK)
}

func (h *Handlers) GetSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.ScheduleService.ListSchedules(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, schedules, http.StatusOK)
}

func (h *Handlers) FilterSchedules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	schedules, err := h.ScheduleService.FilterSchedules(r.Context(), q.Get("counselorId"), q.Get("date"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, schedules, http.StatusOK)
}

func (h *Handlers) GetSchedulesByAccount(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.ScheduleService.SchedulesByAccount(r.Context(), pathVar(r, "accountId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, schedules, http.StatusOK)
}

func (h *Handlers) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req models.CreateScheduleRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	schedule, err := h.ScheduleService.CreateSchedule(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, schedule, http.StatusCreated)
}

func (h *Handlers) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateScheduleRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	schedule, err := h.ScheduleService.UpdateSchedule(r.Context(), pathVar(r, "scheduleId"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, schedule, http.StatusOK)
}

func (h *Handlers) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.ScheduleService.DeleteSchedule(r.Context(), pathVar(r, "scheduleId")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Schedule deleted"}, http.StatusOK)
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	booking, err := h.BookingService.CreateBooking(r.Context(), IdentityFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, booking, http.StatusCreated)
}

func (h *Handlers) GetBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.BookingService.ListBookings(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, bookings, http.StatusOK)
}

func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.BookingService.GetBooking(r.Context(), IdentityFromContext(r.Context()), pathVar(r, "bookingId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, booking, http.StatusOK)
}

func (h *Handlers) GetBookingsByCustomer(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.BookingService.ListByCustomer(r.Context(), pathVar(r, "accountId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, bookings, http.StatusOK)
}

func (h *Handlers) GetBookingsByCounselor(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.BookingService.ListByCounselorAccount(r.Context(), pathVar(r, "accountId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, bookings, http.StatusOK)
}

func (h *Handlers) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBookingRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	booking, err := h.BookingService.UpdateBooking(r.Context(), IdentityFromContext(r.Context()), pathVar(r, "bookingId"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, booking, http.StatusOK)
}

func (h *Handlers) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.BookingService.DeleteBooking(r.Context(), pathVar(r, "bookingId")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Booking deleted"}, http.StatusOK)
}
