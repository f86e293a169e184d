package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"

	"healthcommunity/internal/models"
)

type scheduleRepository struct {
	db *sqlx.DB
}

const insertScheduleQuery = `
	INSERT INTO consultation_schedules (schedule_id, counselor_id, start_time, end_time, status, note, price, created_at, updated_at)
	VALUES (:schedule_id, :counselor_id, :start_time, :end_time, :status, :note, :price, :created_at, :updated_at)
`

func NewScheduleRepository(db *sqlx.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func prepareSchedule(s *models.ConsultationSchedule, now time.Time) {
	if s.ScheduleID == "" {
		s.ScheduleID = uuid.New().String()
	}
	if s.Status == "" {
		s.Status = models.ScheduleAvailable
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = s.CreatedAt
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *models.ConsultationSchedule) error {
	prepareSchedule(schedule, time.Now())

	if _, err := r.db.NamedExecContext(ctx, insertScheduleQuery, schedule); err != nil {
		return errors.Annotate(err, "creating schedule")
	}

	return nil
}

// CreateBatch inserts all schedules in one transaction.
func (r *scheduleRepository) CreateBatch(ctx context.Context, schedules []models.ConsultationSchedule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "starting transaction")
	}
	defer rollback(tx)

	now := time.Now()
	for i := range schedules {
		prepareSchedule(&schedules[i], now)
		if _, err := tx.NamedExecContext(ctx, insertScheduleQuery, &schedules[i]); err != nil {
			return errors.Annotatef(err, "creating schedule %d of %d", i+1, len(schedules))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Annotate(err, "committing schedules")
	}
	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, scheduleID string) (*models.ConsultationSchedule, error) {
	var schedule models.ConsultationSchedule

	query := `SELECT * FROM consultation_schedules WHERE schedule_id = $1`

	if err := r.db.GetContext(ctx, &schedule, query, scheduleID); err != nil {
		if isNoRows(err) {
			return nil, errors.NotFoundf("schedule %s", scheduleID)
		}
		return nil, errors.Annotate(err, "getting schedule")
	}

	return &schedule, nil
}

func (r *scheduleRepository) List(ctx context.Context) ([]models.ConsultationSchedule, error) {
	schedules := []models.ConsultationSchedule{}

	if err := r.db.SelectContext(ctx, &schedules, `SELECT * FROM consultation_schedules ORDER BY start_time`); err != nil {
		return nil, errors.Annotate(err, "listing schedules")
	}

	return schedules, nil
}

// ListByCounselor returns a counselor's schedules, optionally restricted to
// start times in [from, to).
func (r *scheduleRepository) ListByCounselor(ctx context.Context, counselorID string, from, to *time.Time) ([]models.ConsultationSchedule, error) {
	query := `SELECT * FROM consultation_schedules WHERE counselor_id = $1`
	args := []interface{}{counselorID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND start_time >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND start_time < $%d", len(args))
	}
	query += " ORDER BY start_time"

	schedules := []models.ConsultationSchedule{}
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, errors.Annotate(err, "listing counselor schedules")
	}

	return schedules, nil
}

// FindAvailableBetween returns available slots starting in [start, end),
// joined to their counselor and the counselor's account.
func (r *scheduleRepository) FindAvailableBetween(ctx context.Context, start, end time.Time) ([]models.AvailableSlot, error) {
	query := `
		SELECT s.schedule_id, s.start_time,
			c.counselor_id, c.specialty, c.bio, c.experience_years, c.created_at AS counselor_created_at,
			a.account_id, a.name AS account_name, a.email AS account_email, a.image AS account_image,
			a.gender AS account_gender, a.phone AS account_phone, a.is_verified AS account_verified
		FROM consultation_schedules s
		JOIN counselors c ON c.counselor_id = s.counselor_id
		JOIN accounts a ON a.account_id = c.account_id
		WHERE s.status = 'available' AND s.start_time >= $1 AND s.start_time < $2
		ORDER BY s.start_time
	`

	slots := []models.AvailableSlot{}
	if err := r.db.SelectContext(ctx, &slots, query, start, end); err != nil {
		return nil, errors.Annotate(err, "finding available slots")
	}

	return slots, nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *models.ConsultationSchedule) error {
	query := `
		UPDATE consultation_schedules SET
			start_time = :start_time,
			end_time = :end_time,
			status = :status,
			note = :note,
			price = :price,
			updated_at = :updated_at
		WHERE schedule_id = :schedule_id
	`

	if schedule.UpdatedAt.IsZero() {
		schedule.UpdatedAt = time.Now()
	}

	result, err := r.db.NamedExecContext(ctx, query, schedule)
	if err != nil {
		return errors.Annotate(err, "updating schedule")
	}

	return expectAffected(result, "schedule %s", schedule.ScheduleID)
}

func (r *scheduleRepository) Delete(ctx context.Context, scheduleID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM consultation_schedules WHERE schedule_id = $1`, scheduleID)
	if err != nil {
		return errors.Annotate(err, "deleting schedule")
	}

	return expectAffected(result, "schedule %s", scheduleID)
}
