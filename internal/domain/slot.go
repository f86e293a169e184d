package domain

import (
	"fmt"
	"time"

	"github.com/juju/errors"

	"healthcommunity/internal/models"
)

// SlotWindow converts a local date and HH:MM range into absolute instants
// [start, end) in loc.
func SlotWindow(loc *time.Location, date, startTime, endTime string) (time.Time, time.Time, error) {
	if date == "" || startTime == "" || endTime == "" {
		return time.Time{}, time.Time{}, errors.BadRequestf("missing date, startTime or endTime")
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+startTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NotValidf("date/startTime %q %q", date, startTime)
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", date+" "+endTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NotValidf("date/endTime %q %q", date, endTime)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.BadRequestf("endTime must be after startTime")
	}
	return start, end, nil
}

// DayWindow returns the local day containing date as [start, end).
func DayWindow(loc *time.Location, date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NotValidf("date %q", date)
	}
	return day, day.AddDate(0, 0, 1), nil
}

// UniqueCounselors collapses matching slots to one entry per counselor,
// keeping the first occurrence.
func UniqueCounselors(slots []models.AvailableSlot) []models.Counselor {
	seen := make(map[string]bool, len(slots))
	counselors := make([]models.Counselor, 0, len(slots))
	for _, s := range slots {
		if seen[s.CounselorID] {
			continue
		}
		seen[s.CounselorID] = true
		counselors = append(counselors, models.Counselor{
			CounselorID:     s.CounselorID,
			AccountID:       s.AccountID,
			Specialty:       s.Specialty,
			Bio:             s.Bio,
			ExperienceYears: s.ExperienceYears,
			CreatedAt:       s.CounselorCreated,
			Account: &models.Account{
				AccountID:  s.AccountID,
				Name:       s.AccountName,
				Email:      s.AccountEmail,
				Image:      s.AccountImage,
				Gender:     s.AccountGender,
				Phone:      s.AccountPhone,
				Role:       models.RoleCounselor,
				IsVerified: s.AccountVerified,
				IsActive:   true,
			},
		})
	}
	return counselors
}

// SlotTime is a local HH:MM range within a day.
type SlotTime struct {
	Start string
	End   string
}

// DefaultSlotTimes are the daily consultation slots.
var DefaultSlotTimes = []SlotTime{
	{"09:00", "10:00"},
	{"10:00", "11:00"},
	{"11:00", "12:00"},
	{"14:00", "15:00"},
	{"15:00", "16:00"},
	{"16:00", "17:00"},
}

// SlotPlan describes a bulk slot generation run.
type SlotPlan struct {
	CounselorIDs []string
	From         time.Time
	Days         int
	Times        []SlotTime
	Price        float64
	Location     *time.Location
}

// GenerateSlots expands a plan into available schedules, one per counselor,
// day and slot time.
func GenerateSlots(plan SlotPlan) ([]models.ConsultationSchedule, error) {
	if len(plan.CounselorIDs) == 0 {
		return nil, errors.BadRequestf("no counselors given")
	}
	if plan.Days < 1 {
		return nil, errors.NotValidf("days %d", plan.Days)
	}
	times := plan.Times
	if len(times) == 0 {
		times = DefaultSlotTimes
	}
	loc := plan.Location
	if loc == nil {
		loc = time.UTC
	}

	var slots []models.ConsultationSchedule
	for _, counselorID := range plan.CounselorIDs {
		for d := 0; d < plan.Days; d++ {
			day := plan.From.AddDate(0, 0, d).Format("2006-01-02")
			for _, st := range times {
				start, end, err := SlotWindow(loc, day, st.Start, st.End)
				if err != nil {
					return nil, errors.Annotatef(err, "slot %s-%s", st.Start, st.End)
				}
				slots = append(slots, models.ConsultationSchedule{
					CounselorID: counselorID,
					StartTime:   start,
					EndTime:     end,
					Status:      models.ScheduleAvailable,
					Note:        fmt.Sprintf("Auto generated %s", start.Format("02/01/2006")),
					Price:       plan.Price,
				})
			}
		}
	}
	return slots, nil
}
