package service

import (
	"context"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/juju/clock"
	"github.com/juju/errors"

	"healthcommunity/internal/config"
	"healthcommunity/internal/domain"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
	"healthcommunity/internal/storage"
)

type AccountService interface {
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	ListAccounts(ctx context.Context, filter repository.AccountFilter) ([]models.Account, int, error)
	UpdateAccount(ctx context.Context, caller *models.Identity, req models.UpdateAccountRequest) (*models.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
	SetActive(ctx context.Context, accountID string, active bool) (*models.Account, error)
	SetRole(ctx context.Context, accountID, role string) (*models.Account, error)
	UploadAvatar(ctx context.Context, accountID, fileName string, file io.Reader, size int64) (*models.Account, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
	UserStats(ctx context.Context) (*models.UserStats, error)
}

type accountService struct {
	accountRepo repository.AccountRepository
	storage     storage.Storage
	cfg         *config.Config
	clock       clock.Clock
}

func NewAccountService(accountRepo repository.AccountRepository, storage storage.Storage, cfg *config.Config, clk clock.Clock) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		storage:     storage,
		cfg:         cfg,
		clock:       clk,
	}
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	return s.accountRepo.GetAccountByID(ctx, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, filter repository.AccountFilter) ([]models.Account, int, error) {
	return s.accountRepo.ListAccounts(ctx, filter)
}

// UpdateAccount applies a partial profile update. Only the owner or an admin
// may update an account, and the password is re-hashed only when it changes.
func (s *accountService) UpdateAccount(ctx context.Context, caller *models.Identity, req models.UpdateAccountRequest) (*models.Account, error) {
	if caller == nil || (caller.AccountID != req.AccountID && !caller.IsAdmin()) {
		return nil, errors.Forbiddenf("you can only update your own account")
	}

	account, err := s.accountRepo.GetAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != account.Email {
		exists, err := s.accountRepo.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if exists {
			return nil, errors.AlreadyExistsf("account with email %s", req.Email)
		}
		account.Email = req.Email
	}
	if req.Name != "" {
		account.Name = req.Name
	}
	if req.Gender != "" {
		account.Gender = req.Gender
	}
	if req.Phone != "" {
		account.Phone = req.Phone
	}
	account.UpdatedAt = s.clock.Now()

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}

	if req.Password != "" {
		if err := s.accountRepo.UpdatePassword(ctx, account.AccountID, req.Password); err != nil {
			return nil, err
		}
	}

	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return err
	}

	s.removeAvatar(ctx, account.Image)
	return nil
}

func (s *accountService) SetActive(ctx context.Context, accountID string, active bool) (*models.Account, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account.IsActive = active
	account.UpdatedAt = s.clock.Now()

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *accountService) SetRole(ctx context.Context, accountID, role string) (*models.Account, error) {
	if !validRole(role) {
		return nil, errors.NotValidf("role %q", role)
	}

	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account.Role = role
	if role == models.RoleCounselor {
		account.IsVerified = true
	}
	account.UpdatedAt = s.clock.Now()

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// UploadAvatar stores a new avatar and removes the previous one. If saving
// the account fails the new object is deleted again.
func (s *accountService) UploadAvatar(ctx context.Context, accountID, fileName string, file io.Reader, size int64) (*models.Account, error) {
	if size > s.cfg.MaxUploadSize {
		return nil, errors.BadRequestf("image is %s, the limit is %s",
			humanize.Bytes(uint64(size)), humanize.Bytes(uint64(s.cfg.MaxUploadSize)))
	}

	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	objectName, imageURL, err := s.storage.UploadAvatar(ctx, accountID, fileName, file, size)
	if err != nil {
		return nil, errors.Annotate(err, "uploading avatar")
	}

	previous := account.Image
	account.Image = imageURL
	account.UpdatedAt = s.clock.Now()

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		if delErr := s.storage.DeleteObject(ctx, objectName); delErr != nil {
			logger.Warningf("removing orphaned avatar %s: %v", objectName, delErr)
		}
		return nil, err
	}

	s.removeAvatar(ctx, previous)
	return account, nil
}

func (s *accountService) removeAvatar(ctx context.Context, imageURL string) {
	objectName := storage.ObjectNameFromURL(imageURL, s.cfg.MinIO.BucketName)
	if objectName == "" {
		return
	}
	if err := s.storage.DeleteObject(ctx, objectName); err != nil {
		logger.Warningf("removing avatar %s: %v", objectName, err)
	}
}

func (s *accountService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	exists, err := s.accountRepo.EmailExists(ctx, email)
	if err != nil {
		return false, errors.Trace(err)
	}
	return !exists, nil
}

func validRole(role string) bool {
	for _, r := range models.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserStats compares registrations in the last 30 days with the 30 days
// before that.
func (s *accountService) UserStats(ctx context.Context) (*models.UserStats, error) {
	now := s.clock.Now()
	recentFrom := now.AddDate(0, 0, -30)

	counts, err := s.accountRepo.CountAccounts(ctx, recentFrom, recentFrom.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &models.UserStats{
		TotalUsers:          counts.Total,
		ActiveUsers:         counts.Active,
		InactiveUsers:       counts.Total - counts.Active,
		UsersByRole:         counts.ByRole,
		RecentRegistrations: counts.Recent,
		GrowthRate:          domain.GrowthRate(counts.Recent, counts.Previous),
	}, nil
}
