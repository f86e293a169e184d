package domain

import (
	"time"

	"github.com/juju/errors"

	"healthcommunity/internal/models"
)

const (
	FertileWindowDays   = 12
	OvulationOffsetDays = 14

	ReminderTypePill      = "Pill"
	ReminderTypeOvulation = "Ovulation"
)

// CyclePrediction holds the fields derived from a cycle's period days.
type CyclePrediction struct {
	OvulationDate time.Time
	FertileWindow []time.Time
}

// PredictCycle derives the ovulation date (first period day + 14 days) and
// the 12-day fertile window starting the day after the last period day.
func PredictCycle(periodDays []time.Time) (CyclePrediction, error) {
	if len(periodDays) == 0 {
		return CyclePrediction{}, errors.BadRequestf("periodDays is required and must be a non-empty array")
	}

	first := periodDays[0]
	last := periodDays[len(periodDays)-1]

	window := make([]time.Time, FertileWindowDays)
	for i := range window {
		window[i] = last.AddDate(0, 0, i+1)
	}

	return CyclePrediction{
		OvulationDate: first.AddDate(0, 0, OvulationOffsetDays),
		FertileWindow: window,
	}, nil
}

// ApplyPrediction recomputes every derived field of c from c.PeriodDays.
func ApplyPrediction(c *models.Cycle) error {
	p, err := PredictCycle(c.PeriodDays)
	if err != nil {
		return err
	}
	c.OvulationDate = p.OvulationDate
	c.FertileWindow = models.DateList(p.FertileWindow)
	return nil
}

// CycleReminders returns the pill and ovulation reminders created with a
// cycle.
func CycleReminders(c *models.Cycle) []models.Reminder {
	if len(c.PeriodDays) == 0 {
		return nil
	}
	return []models.Reminder{
		{
			CustomerID: c.CustomerID,
			Type:       ReminderTypePill,
			Date:       c.PeriodDays[0],
			Message:    "Today you start taking your contraceptive pill!",
		},
		{
			CustomerID: c.CustomerID,
			Type:       ReminderTypeOvulation,
			Date:       c.OvulationDate,
			Message:    "Today is your ovulation day, the most fertile day of your cycle!",
		},
	}
}
