package handlers

import (
	"net/http"

	"healthcommunity/internal/models"
)

type CycleCreatedResponse struct {
	*models.Cycle
	Reminders []models.Reminder `json:"reminders"`
}

func (h *Handlers) CreateCycle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCycleRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	cycle, reminders, err := h.CycleService.CreateCycle(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, CycleCreatedResponse{Cycle: cycle, Reminders: reminders}, http.StatusCreated)
}

func (h *Handlers) GetCyclesByCustomer(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.CycleService.ListCycles(r.Context(), pathVar(r, "customerId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, cycles, http.StatusOK)
}

func (h *Handlers) GetCycle(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.CycleService.GetCycle(r.Context(), pathVar(r, "cycleId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, cycle, http.StatusOK)
}

func (h *Handlers) UpdateCycle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCycleRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	cycle, err := h.CycleService.UpdateCycle(r.Context(), pathVar(r, "cycleId"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, cycle, http.StatusOK)
}

func (h *Handlers) DeleteCycle(w http.ResponseWriter, r *http.Request) {
	if err := h.CycleService.DeleteCycle(r.Context(), pathVar(r, "cycleId")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Cycle deleted"}, http.StatusOK)
}

func (h *Handlers) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReminderRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	reminder, err := h.ReminderService.CreateReminder(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, reminder, http.StatusCreated)
}

func (h *Handlers) GetRemindersByCustomer(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.ReminderService.ListReminders(r.Context(), pathVar(r, "customerId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, reminders, http.StatusOK)
}

func (h *Handlers) GetReminder(w http.ResponseWriter, r *http.Request) {
	reminder, err := h.ReminderService.GetReminder(r.Context(), pathVar(r, "reminderId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, reminder, http.StatusOK)
}

func (h *Handlers) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateReminderRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	reminder, err := h.ReminderService.UpdateReminder(r.Context(), pathVar(r, "reminderId"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, reminder, http.StatusOK)
}

func (h *Handlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := h.ReminderService.DeleteReminder(r.Context(), pathVar(r, "reminderId")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Reminder deleted"}, http.StatusOK)
}
