package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"

	"healthcommunity/internal/models"
)

type reminderRepository struct {
	db *sqlx.DB
}

func NewReminderRepository(db *sqlx.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	if reminder.ReminderID == "" {
		reminder.ReminderID = uuid.New().String()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}
	reminder.UpdatedAt = reminder.CreatedAt

	if _, err := r.db.NamedExecContext(ctx, insertReminderQuery, reminder); err != nil {
		return errors.Annotate(err, "creating reminder")
	}

	return nil
}

func (r *reminderRepository) GetByID(ctx context.Context, reminderID string) (*models.Reminder, error) {
	var reminder models.Reminder

	if err := r.db.GetContext(ctx, &reminder, `SELECT * FROM reminders WHERE reminder_id = $1`, reminderID); err != nil {
		if isNoRows(err) {
			return nil, errors.NotFoundf("reminder %s", reminderID)
		}
		return nil, errors.Annotate(err, "getting reminder")
	}

	return &reminder, nil
}

func (r *reminderRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Reminder, error) {
	reminders := []models.Reminder{}

	query := `SELECT * FROM reminders WHERE customer_id = $1 ORDER BY date`

	if err := r.db.SelectContext(ctx, &reminders, query, customerID); err != nil {
		return nil, errors.Annotate(err, "listing reminders")
	}

	return reminders, nil
}

func (r *reminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	query := `
		UPDATE reminders SET
			type = :type,
			date = :date,
			message = :message,
			is_sent = :is_sent,
			updated_at = :updated_at
		WHERE reminder_id = :reminder_id
	`

	if reminder.UpdatedAt.IsZero() {
		reminder.UpdatedAt = time.Now()
	}

	result, err := r.db.NamedExecContext(ctx, query, reminder)
	if err != nil {
		return errors.Annotate(err, "updating reminder")
	}

	return expectAffected(result, "reminder %s", reminder.ReminderID)
}

func (r *reminderRepository) Delete(ctx context.Context, reminderID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE reminder_id = $1`, reminderID)
	if err != nil {
		return errors.Annotate(err, "deleting reminder")
	}

	return expectAffected(result, "reminder %s", reminderID)
}
