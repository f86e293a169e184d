package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"healthcommunity/internal/models"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return sqlxDB, mock
}

var accountColumns = []string{
	"account_id", "name", "email", "password_hash", "role", "image", "gender", "phone",
	"is_verified", "is_active", "refresh_token", "refresh_token_expiry_time", "created_at", "updated_at",
}

func accountRow(id, email, hash, role string) []driver.Value {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return []driver.Value{id, "Lan", email, hash, role, "", "female", "0900000000", false, true, "", now, now, now}
}

func TestAccountRepository_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account with hashed password", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAccountRepository(db)

		account := &models.Account{Name: "Lan", Email: "lan@example.com", Role: models.RoleCustomer, IsActive: true}

		mock.ExpectExec(`INSERT INTO accounts`).
			WithArgs(
				sqlmock.AnyArg(), "Lan", "lan@example.com", sqlmock.AnyArg(), models.RoleCustomer,
				"", "", "", false, true, "", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateAccount(ctx, account, "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, account.AccountID)
		assert.NotEqual(t, "password123", account.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("password123")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email is AlreadyExists", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAccountRepository(db)

		mock.ExpectExec(`INSERT INTO accounts`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.CreateAccount(ctx, &models.Account{Email: "lan@example.com"}, "password123")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.AlreadyExists))
	})
}

func TestAccountRepository_GetAccountByID(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT * FROM accounts WHERE account_id = $1`)

	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAccountRepository(db)

		mock.ExpectQuery(query).
			WithArgs("acc-1").
			WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(accountRow("acc-1", "lan@example.com", "hash", models.RoleCustomer)...))

		account, err := repo.GetAccountByID(ctx, "acc-1")

		require.NoError(t, err)
		assert.Equal(t, "acc-1", account.AccountID)
		assert.Equal(t, "lan@example.com", account.Email)
		assert.True(t, account.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAccountRepository(db)

		mock.ExpectQuery(query).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		account, err := repo.GetAccountByID(ctx, "missing")

		assert.Nil(t, account)
		assert.True(t, errors.Is(err, errors.NotFound))
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAccountRepository(db)

		mock.ExpectQuery(query).WithArgs("acc-1").WillReturnError(errors.New("connection failed"))

		_, err := repo.GetAccountByID(ctx, "acc-1")

		require.Error(t, err)
		assert.False(t, errors.Is(err, errors.NotFound))
		assert.Contains(t, err.Error(), "getting account")
	})
}

func TestAccountRepository_VerifyPassword(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	query := regexp.QuoteMeta(`SELECT * FROM accounts WHERE email = $1`)

	tests := []struct {
		name         string
		password     string
		setupMock    func(mock sqlmock.Sqlmock)
		unauthorized bool
	}{
		{
			name:     "correct password",
			password: "secret",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("lan@example.com").
					WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(accountRow("acc-1", "lan@example.com", string(hash), models.RoleCustomer)...))
			},
		},
		{
			name:     "wrong password",
			password: "nope",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("lan@example.com").
					WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(accountRow("acc-1", "lan@example.com", string(hash), models.RoleCustomer)...))
			},
			unauthorized: true,
		},
		{
			name:     "unknown email",
			password: "secret",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("lan@example.com").WillReturnError(sql.ErrNoRows)
			},
			unauthorized: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewAccountRepository(db)
			tt.setupMock(mock)

			account, err := repo.VerifyPassword(ctx, "lan@example.com", tt.password)

			if tt.unauthorized {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.Unauthorized))
				assert.Nil(t, account)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "acc-1", account.AccountID)
		})
	}
}

func TestAccountRepository_ListAccounts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM accounts WHERE (name ILIKE $1 OR email ILIKE $1) AND role = $2 AND is_active = TRUE`)).
		WithArgs("%lan%", models.RoleCustomer).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC LIMIT $3 OFFSET $4`)).
		WithArgs("%lan%", models.RoleCustomer, 10, 10).
		WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(accountRow("acc-11", "lan11@example.com", "hash", models.RoleCustomer)...))

	accounts, total, err := repo.ListAccounts(context.Background(), AccountFilter{
		Search: "lan",
		Role:   models.RoleCustomer,
		Status: "active",
		Page:   2,
		Limit:  10,
	})

	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, accounts, 1)
	assert.Equal(t, "acc-11", accounts[0].AccountID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_DeleteAccount(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)
	query := regexp.QuoteMeta(`DELETE FROM accounts WHERE account_id = $1`)

	mock.ExpectExec(query).WithArgs("acc-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteAccount(context.Background(), "acc-1"))
	assert.True(t, errors.Is(repo.DeleteAccount(context.Background(), "missing"), errors.NotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_CountAccounts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)
	recentFrom := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	previousFrom := recentFrom.AddDate(0, 0, -30)

	mock.ExpectQuery(regexp.QuoteMeta(`COUNT(*) FILTER (WHERE is_active) AS active`)).
		WithArgs(recentFrom, previousFrom).
		WillReturnRows(sqlmock.NewRows([]string{"total", "active", "recent", "previous"}).AddRow(12, 9, 6, 4))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT role, COUNT(*) AS count FROM accounts GROUP BY role`)).
		WillReturnRows(sqlmock.NewRows([]string{"role", "count"}).
			AddRow(models.RoleCustomer, 10).
			AddRow(models.RoleAdmin, 2))

	counts, err := repo.CountAccounts(context.Background(), recentFrom, previousFrom)

	require.NoError(t, err)
	assert.Equal(t, 12, counts.Total)
	assert.Equal(t, 4, counts.Previous)
	assert.Equal(t, map[string]int{models.RoleCustomer: 10, models.RoleAdmin: 2}, counts.ByRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}
