package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"

	"healthcommunity/internal/models"
)

type counselorRepository struct {
	db *sqlx.DB
}

// counselorRow is a counselor joined to its account.
type counselorRow struct {
	models.Counselor
	AccountName     string `db:"account_name"`
	AccountEmail    string `db:"account_email"`
	AccountImage    string `db:"account_image"`
	AccountGender   string `db:"account_gender"`
	AccountPhone    string `db:"account_phone"`
	AccountVerified bool   `db:"account_verified"`
	AccountActive   bool   `db:"account_active"`
}

func (row counselorRow) toModel() models.Counselor {
	c := row.Counselor
	c.Account = &models.Account{
		AccountID:  c.AccountID,
		Name:       row.AccountName,
		Email:      row.AccountEmail,
		Image:      row.AccountImage,
		Gender:     row.AccountGender,
		Phone:      row.AccountPhone,
		Role:       models.RoleCounselor,
		IsVerified: row.AccountVerified,
		IsActive:   row.AccountActive,
	}
	return c
}

const counselorSelect = `
	SELECT c.counselor_id, c.account_id, c.specialty, c.bio, c.experience_years, c.created_at,
		a.name AS account_name, a.email AS account_email, a.image AS account_image,
		a.gender AS account_gender, a.phone AS account_phone,
		a.is_verified AS account_verified, a.is_active AS account_active
	FROM counselors c
	JOIN accounts a ON a.account_id = c.account_id
`

func NewCounselorRepository(db *sqlx.DB) CounselorRepository {
	return &counselorRepository{db: db}
}

func (r *counselorRepository) Create(ctx context.Context, counselor *models.Counselor) error {
	if counselor.CounselorID == "" {
		counselor.CounselorID = uuid.New().String()
	}
	if counselor.CreatedAt.IsZero() {
		counselor.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO counselors (counselor_id, account_id, specialty, bio, experience_years, created_at)
		VALUES (:counselor_id, :account_id, :specialty, :bio, :experience_years, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, counselor); err != nil {
		if isUniqueViolation(err) {
			return errors.AlreadyExistsf("counselor profile for account %s", counselor.AccountID)
		}
		return errors.Annotate(err, "creating counselor")
	}

	return nil
}

func (r *counselorRepository) GetByID(ctx context.Context, counselorID string) (*models.Counselor, error) {
	var row counselorRow

	if err := r.db.GetContext(ctx, &row, counselorSelect+` WHERE c.counselor_id = $1`, counselorID); err != nil {
		if isNoRows(err) {
			return nil, errors.NotFoundf("counselor %s", counselorID)
		}
		return nil, errors.Annotate(err, "getting counselor")
	}

	c := row.toModel()
	return &c, nil
}

func (r *counselorRepository) GetByAccountID(ctx context.Context, accountID string) (*models.Counselor, error) {
	var row counselorRow

	if err := r.db.GetContext(ctx, &row, counselorSelect+` WHERE c.account_id = $1`, accountID); err != nil {
		if isNoRows(err) {
			return nil, errors.NotFoundf("counselor for account %s", accountID)
		}
		return nil, errors.Annotate(err, "getting counselor by account")
	}

	c := row.toModel()
	return &c, nil
}

func (r *counselorRepository) List(ctx context.Context) ([]models.Counselor, error) {
	var rows []counselorRow

	if err := r.db.SelectContext(ctx, &rows, counselorSelect+` ORDER BY a.name`); err != nil {
		return nil, errors.Annotate(err, "listing counselors")
	}

	counselors := make([]models.Counselor, 0, len(rows))
	for _, row := range rows {
		counselors = append(counselors, row.toModel())
	}
	return counselors, nil
}
