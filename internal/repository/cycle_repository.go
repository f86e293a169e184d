package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"

	"healthcommunity/internal/models"
)

type cycleRepository struct {
	db *sqlx.DB
}

const insertReminderQuery = `
	INSERT INTO reminders (reminder_id, customer_id, type, date, message, is_sent, created_at, updated_at)
	VALUES (:reminder_id, :customer_id, :type, :date, :message, :is_sent, :created_at, :updated_at)
`

func NewCycleRepository(db *sqlx.DB) CycleRepository {
	return &cycleRepository{db: db}
}

// CreateWithReminders stores a cycle and its reminders atomically; on any
// failure nothing is persisted.
func (r *cycleRepository) CreateWithReminders(ctx context.Context, cycle *models.Cycle, reminders []models.Reminder) error {
	if cycle.CycleID == "" {
		cycle.CycleID = uuid.New().String()
	}
	if cycle.CreatedAt.IsZero() {
		cycle.CreatedAt = time.Now()
	}
	cycle.UpdatedAt = cycle.CreatedAt

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "starting transaction")
	}
	defer rollback(tx)

	query := `
		INSERT INTO cycles (cycle_id, customer_id, period_days, notes, fertile_window, ovulation_date, is_predicted, created_at, updated_at)
		VALUES (:cycle_id, :customer_id, :period_days, :notes, :fertile_window, :ovulation_date, :is_predicted, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, cycle); err != nil {
		return errors.Annotate(err, "creating cycle")
	}

	for i := range reminders {
		rem := &reminders[i]
		if rem.ReminderID == "" {
			rem.ReminderID = uuid.New().String()
		}
		rem.CreatedAt = cycle.CreatedAt
		rem.UpdatedAt = cycle.CreatedAt
		if _, err := tx.NamedExecContext(ctx, insertReminderQuery, rem); err != nil {
			return errors.Annotatef(err, "creating %s reminder", rem.Type)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Annotate(err, "committing cycle")
	}
	return nil
}

func (r *cycleRepository) GetByID(ctx context.Context, cycleID string) (*models.Cycle, error) {
	var cycle models.Cycle

	if err := r.db.GetContext(ctx, &cycle, `SELECT * FROM cycles WHERE cycle_id = $1`, cycleID); err != nil {
		if isNoRows(err) {
			return nil, errors.NotFoundf("cycle %s", cycleID)
		}
		return nil, errors.Annotate(err, "getting cycle")
	}

	return &cycle, nil
}

func (r *cycleRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Cycle, error) {
	cycles := []models.Cycle{}

	query := `SELECT * FROM cycles WHERE customer_id = $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &cycles, query, customerID); err != nil {
		return nil, errors.Annotate(err, "listing cycles")
	}

	return cycles, nil
}

func (r *cycleRepository) Update(ctx context.Context, cycle *models.Cycle) error {
	query := `
		UPDATE cycles SET
			period_days = :period_days,
			notes = :notes,
			fertile_window = :fertile_window,
			ovulation_date = :ovulation_date,
			is_predicted = :is_predicted,
			updated_at = :updated_at
		WHERE cycle_id = :cycle_id
	`

	if cycle.UpdatedAt.IsZero() {
		cycle.UpdatedAt = time.Now()
	}

	result, err := r.db.NamedExecContext(ctx, query, cycle)
	if err != nil {
		return errors.Annotate(err, "updating cycle")
	}

	return expectAffected(result, "cycle %s", cycle.CycleID)
}

func (r *cycleRepository) Delete(ctx context.Context, cycleID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cycles WHERE cycle_id = $1`, cycleID)
	if err != nil {
		return errors.Annotate(err, "deleting cycle")
	}

	return expectAffected(result, "cycle %s", cycleID)
}
