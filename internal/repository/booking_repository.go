package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"

	"healthcommunity/internal/models"
)

type bookingRepository struct {
	db *sqlx.DB
}

// bookingRow is a booking joined to its schedule slot.
type bookingRow struct {
	models.ConsultationBooking
	SlotCounselorID string    `db:"slot_counselor_id"`
	SlotStartTime   time.Time `db:"slot_start_time"`
	SlotEndTime     time.Time `db:"slot_end_time"`
	SlotStatus      string    `db:"slot_status"`
	SlotNote        string    `db:"slot_note"`
	SlotPrice       float64   `db:"slot_price"`
}

func (row bookingRow) toModel() models.ConsultationBooking {
	b := row.ConsultationBooking
	b.Schedule = &models.ConsultationSchedule{
		ScheduleID:  b.ScheduleID,
		CounselorID: row.SlotCounselorID,
		StartTime:   row.SlotStartTime,
		EndTime:     row.SlotEndTime,
		Status:      row.SlotStatus,
		Note:        row.SlotNote,
		Price:       row.SlotPrice,
	}
	return b
}

const bookingSelect = `
	SELECT b.*,
		s.counselor_id AS slot_counselor_id, s.start_time AS slot_start_time, s.end_time AS slot_end_time,
		s.status AS slot_status, s.note AS slot_note, s.price AS slot_price
	FROM consultation_bookings b
	JOIN consultation_schedules s ON s.schedule_id = b.schedule_id
`

func NewBookingRepository(db *sqlx.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create books an available slot. The slot row is locked so two customers
// cannot book it concurrently.
func (r *bookingRepository) Create(ctx context.Context, booking *models.ConsultationBooking) error {
	if booking.BookingID == "" {
		booking.BookingID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	if booking.BookingDate.IsZero() {
		booking.BookingDate = booking.CreatedAt
	}
	booking.UpdatedAt = booking.CreatedAt
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "starting transaction")
	}
	defer rollback(tx)

	var slotStatus string
	err = tx.GetContext(ctx, &slotStatus,
		`SELECT status FROM consultation_schedules WHERE schedule_id = $1 FOR UPDATE`, booking.ScheduleID)
	if err != nil {
		if isNoRows(err) {
			return errors.NotFoundf("schedule %s", booking.ScheduleID)
		}
		return errors.Annotate(err, "locking schedule")
	}
	if slotStatus != models.ScheduleAvailable {
		return errors.AlreadyExistsf("booking for schedule %s", booking.ScheduleID)
	}

	query := `
		INSERT INTO consultation_bookings
		(booking_id, customer_id, schedule_id, booking_date, note, status, result, rating, feedback, created_at, updated_at)
		VALUES
		(:booking_id, :customer_id, :schedule_id, :booking_date, :note, :status, :result, :rating, :feedback, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, booking); err != nil {
		return errors.Annotate(err, "creating booking")
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE consultation_schedules SET status = $1, updated_at = $2 WHERE schedule_id = $3`,
		models.ScheduleBooked, booking.CreatedAt, booking.ScheduleID); err != nil {
		return errors.Annotate(err, "marking schedule booked")
	}

	if err := tx.Commit(); err != nil {
		return errors.Annotate(err, "committing booking")
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, bookingID string) (*models.ConsultationBooking, error) {
	var row bookingRow

	if err := r.db.GetContext(ctx, &row, bookingSelect+` WHERE b.booking_id = $1`, bookingID); err != nil {
		if isNoRows(err) {
			return nil, errors.NotFoundf("booking %s", bookingID)
		}
		return nil, errors.Annotate(err, "getting booking")
	}

	b := row.toModel()
	return &b, nil
}

func (r *bookingRepository) selectBookings(ctx context.Context, query string, args ...interface{}) ([]models.ConsultationBooking, error) {
	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Annotate(err, "listing bookings")
	}

	bookings := make([]models.ConsultationBooking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, row.toModel())
	}
	return bookings, nil
}

func (r *bookingRepository) List(ctx context.Context) ([]models.ConsultationBooking, error) {
	return r.selectBookings(ctx, bookingSelect+` ORDER BY b.created_at DESC`)
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.ConsultationBooking, error) {
	return r.selectBookings(ctx, bookingSelect+` WHERE b.customer_id = $1 ORDER BY s.start_time DESC`, customerID)
}

func (r *bookingRepository) ListByCounselorAccount(ctx context.Context, accountID string) ([]models.ConsultationBooking, error) {
	query := bookingSelect + `
		JOIN counselors c ON c.counselor_id = s.counselor_id
		WHERE c.account_id = $1
		ORDER BY s.start_time DESC
	`
	return r.selectBookings(ctx, query, accountID)
}

// Update saves the booking and moves its slot to scheduleStatus in one
// transaction. An empty scheduleStatus leaves the slot untouched.
func (r *bookingRepository) Update(ctx context.Context, booking *models.ConsultationBooking, scheduleStatus string) error {
	if booking.UpdatedAt.IsZero() {
		booking.UpdatedAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "starting transaction")
	}
	defer rollback(tx)

	query := `
		UPDATE consultation_bookings SET
			note = :note,
			status = :status,
			result = :result,
			rating = :rating,
			feedback = :feedback,
			updated_at = :updated_at
		WHERE booking_id = :booking_id
	`
	result, err := tx.NamedExecContext(ctx, query, booking)
	if err != nil {
		return errors.Annotate(err, "updating booking")
	}
	if err := expectAffected(result, "booking %s", booking.BookingID); err != nil {
		return err
	}

	if scheduleStatus != "" {
		if _, err := tx.ExecContext(ctx,
			`UPDATE consultation_schedules SET status = $1, updated_at = $2 WHERE schedule_id = $3`,
			scheduleStatus, booking.UpdatedAt, booking.ScheduleID); err != nil {
			return errors.Annotate(err, "updating schedule status")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Annotate(err, "committing booking update")
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, bookingID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM consultation_bookings WHERE booking_id = $1`, bookingID)
	if err != nil {
		return errors.Annotate(err, "deleting booking")
	}

	return expectAffected(result, "booking %s", bookingID)
}
