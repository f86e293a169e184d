package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"golang.org/x/crypto/bcrypt"

	"healthcommunity/internal/models"
)

var logger = loggo.GetLogger("healthcommunity.repository")

type accountRepository struct {
	db *sqlx.DB
}

// AccountFilter narrows the admin account listing.
type AccountFilter struct {
	Search string
	Role   string
	// Status is "active", "inactive" or empty for both.
	Status string
	Page   int
	Limit  int
}

// AccountCounts holds the raw account aggregates. Recent counts
// registrations since recentFrom, Previous those in [previousFrom, recentFrom).
type AccountCounts struct {
	Total    int `db:"total"`
	Active   int `db:"active"`
	Recent   int `db:"recent"`
	Previous int `db:"previous"`
	ByRole   map[string]int
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(ctx context.Context, account *models.Account, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Annotate(err, "hashing password")
	}

	if account.AccountID == "" {
		account.AccountID = uuid.New().String()
	}
	account.PasswordHash = string(hashedPassword)
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	account.UpdatedAt = account.CreatedAt

	query := `
		INSERT INTO accounts (account_id, name, email, password_hash, role, image, gender, phone,
			is_verified, is_active, refresh_token, refresh_token_expiry_time, created_at, updated_at)
		VALUES (:account_id, :name, :email, :password_hash, :role, :image, :gender, :phone,
			:is_verified, :is_active, :refresh_token, :refresh_token_expiry_time, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, account); err != nil {
		if isUniqueViolation(err) {
			return errors.AlreadyExistsf("account with email %s", account.Email)
		}
		return errors.Annotate(err, "creating account")
	}

	return nil
}

func (r *accountRepository) GetAccountByID(ctx context.Context, accountID string) (*models.Account, error) {
	var account models.Account

	query := `SELECT * FROM accounts WHERE account_id = $1`

	if err := r.db.GetContext(ctx, &account, query, accountID); err != nil {
		if isNoRows(err) {
			return nil, errors.NotFoundf("account %s", accountID)
		}
		return nil, errors.Annotate(err, "getting account")
	}

	return &account, nil
}

func (r *accountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account

	query := `SELECT * FROM accounts WHERE email = $1`

	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		if isNoRows(err) {
			return nil, errors.NotFoundf("account with email %s", email)
		}
		return nil, errors.Annotate(err, "getting account by email")
	}

	return &account, nil
}

func (r *accountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`

	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, errors.Annotate(err, "checking email")
	}

	return exists, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context, filter AccountFilter) ([]models.Account, int, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR email ILIKE %s)", p, p))
	}
	if filter.Role != "" {
		where = append(where, "role = "+arg(filter.Role))
	}
	switch filter.Status {
	case "active":
		where = append(where, "is_active = TRUE")
	case "inactive":
		where = append(where, "is_active = FALSE")
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM accounts`+clause, args...); err != nil {
		return nil, 0, errors.Annotate(err, "counting accounts")
	}

	query := `SELECT * FROM accounts` + clause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %s OFFSET %s", arg(filter.Limit), arg(offset(filter.Page, filter.Limit)))

	accounts := []models.Account{}
	if err := r.db.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, 0, errors.Annotate(err, "listing accounts")
	}

	return accounts, total, nil
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = :name, email = :email, role = :role, image = :image, gender = :gender, phone = :phone,
			is_verified = :is_verified, is_active = :is_active, updated_at = :updated_at
		WHERE account_id = :account_id
	`

	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = time.Now()
	}

	result, err := r.db.NamedExecContext(ctx, query, account)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.AlreadyExistsf("account with email %s", account.Email)
		}
		return errors.Annotate(err, "updating account")
	}

	return expectAffected(result, "account %s", account.AccountID)
}

// UpdatePassword stores a fresh bcrypt hash; callers only invoke it when the
// password actually changes.
func (r *accountRepository) UpdatePassword(ctx context.Context, accountID, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Annotate(err, "hashing password")
	}

	query := `UPDATE accounts SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE account_id = $2`

	result, err := r.db.ExecContext(ctx, query, string(hashedPassword), accountID)
	if err != nil {
		return errors.Annotate(err, "updating password")
	}

	return expectAffected(result, "account %s", accountID)
}

func (r *accountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	query := `DELETE FROM accounts WHERE account_id = $1`

	result, err := r.db.ExecContext(ctx, query, accountID)
	if err != nil {
		return errors.Annotate(err, "deleting account")
	}

	return expectAffected(result, "account %s", accountID)
}

func (r *accountRepository) VerifyPassword(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := r.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, errors.Unauthorizedf("invalid email or password")
		}
		return nil, errors.Trace(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorizedf("invalid email or password")
	}

	return account, nil
}

func (r *accountRepository) UpdateRefreshToken(ctx context.Context, accountID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE accounts
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE account_id = $3
	`

	if _, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, accountID); err != nil {
		return errors.Annotate(err, "updating refresh token")
	}

	return nil
}

func (r *accountRepository) GetAccountByRefreshToken(ctx context.Context, refreshToken string) (*models.Account, error) {
	var account models.Account

	query := `
		SELECT * FROM accounts
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`

	if err := r.db.GetContext(ctx, &account, query, refreshToken); err != nil {
		if isNoRows(err) {
			return nil, errors.Unauthorizedf("invalid or expired refresh token")
		}
		return nil, errors.Annotate(err, "getting account by refresh token")
	}

	return &account, nil
}

func (r *accountRepository) TouchLastLogin(ctx context.Context, accountID string, at time.Time) error {
	query := `UPDATE accounts SET last_login = $1 WHERE account_id = $2`

	if _, err := r.db.ExecContext(ctx, query, at, accountID); err != nil {
		return errors.Annotate(err, "updating last login")
	}

	return nil
}

func (r *accountRepository) CountAccounts(ctx context.Context, recentFrom, previousFrom time.Time) (*AccountCounts, error) {
	var counts AccountCounts

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_active) AS active,
			COUNT(*) FILTER (WHERE created_at >= $1) AS recent,
			COUNT(*) FILTER (WHERE created_at >= $2 AND created_at < $1) AS previous
		FROM accounts
	`
	if err := r.db.GetContext(ctx, &counts, query, recentFrom, previousFrom); err != nil {
		return nil, errors.Annotate(err, "counting accounts")
	}

	var roles []struct {
		Role  string `db:"role"`
		Count int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &roles, `SELECT role, COUNT(*) AS count FROM accounts GROUP BY role`); err != nil {
		return nil, errors.Annotate(err, "counting accounts by role")
	}

	counts.ByRole = make(map[string]int, len(roles))
	for _, row := range roles {
		counts.ByRole[row.Role] = row.Count
	}
	return &counts, nil
}
