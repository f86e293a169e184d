package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account *models.Account, password string) error {
	args := m.Called(ctx, account, password)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccountByID(ctx context.Context, accountID string) (*models.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter repository.AccountFilter) ([]models.Account, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Account), args.Int(1), args.Error(2)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, accountID, password string) error {
	args := m.Called(ctx, accountID, password)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) VerifyPassword(ctx context.Context, email, password string) (*models.Account, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateRefreshToken(ctx context.Context, accountID, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, accountID, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccountByRefreshToken(ctx context.Context, refreshToken string) (*models.Account, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) TouchLastLogin(ctx context.Context, accountID string, at time.Time) error {
	args := m.Called(ctx, accountID, at)
	return args.Error(0)
}

func (m *MockAccountRepository) CountAccounts(ctx context.Context, recentFrom, previousFrom time.Time) (*repository.AccountCounts, error) {
	args := m.Called(ctx, recentFrom, previousFrom)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.AccountCounts), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filter repository.PostFilter) ([]models.Post, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Int(1), args.Error(2)
}

func (m *MockPostRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Post, int, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Int(1), args.Error(2)
}

func (m *MockPostRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) UpdateVotes(ctx context.Context, postID string, up, down []string) error {
	args := m.Called(ctx, postID, up, down)
	return args.Error(0)
}

func (m *MockPostRepository) UpdateModeration(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementViewCount(ctx context.Context, postID string) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) IncrementAnswerCount(ctx context.Context, postID string, expert bool) error {
	args := m.Called(ctx, postID, expert)
	return args.Error(0)
}

func (m *MockPostRepository) SetAnswerCounters(ctx context.Context, postID string, answerCount int, hasExpertAnswer bool) error {
	args := m.Called(ctx, postID, answerCount, hasExpertAnswer)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID, status string) ([]models.Comment, error) {
	args := m.Called(ctx, postID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListReplies(ctx context.Context, parentCommentID, status string) ([]models.Comment, error) {
	args := m.Called(ctx, parentCommentID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Comment, int, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Int(1), args.Error(2)
}

func (m *MockCommentRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockCommentRepository) UpdateVotes(ctx context.Context, commentID string, up, down []string) error {
	args := m.Called(ctx, commentID, up, down)
	return args.Error(0)
}

func (m *MockCommentRepository) UpdateModeration(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) AnswerCounters(ctx context.Context, postID string) (int, bool, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

type MockCycleRepository struct {
	mock.Mock
}

func (m *MockCycleRepository) CreateWithReminders(ctx context.Context, cycle *models.Cycle, reminders []models.Reminder) error {
	args := m.Called(ctx, cycle, reminders)
	return args.Error(0)
}

func (m *MockCycleRepository) GetByID(ctx context.Context, cycleID string) (*models.Cycle, error) {
	args := m.Called(ctx, cycleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cycle), args.Error(1)
}

func (m *MockCycleRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Cycle, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Cycle), args.Error(1)
}

func (m *MockCycleRepository) Update(ctx context.Context, cycle *models.Cycle) error {
	args := m.Called(ctx, cycle)
	return args.Error(0)
}

func (m *MockCycleRepository) Delete(ctx context.Context, cycleID string) error {
	args := m.Called(ctx, cycleID)
	return args.Error(0)
}

type MockCounselorRepository struct {
	mock.Mock
}

func (m *MockCounselorRepository) Create(ctx context.Context, counselor *models.Counselor) error {
	args := m.Called(ctx, counselor)
	return args.Error(0)
}

func (m *MockCounselorRepository) GetByID(ctx context.Context, counselorID string) (*models.Counselor, error) {
	args := m.Called(ctx, counselorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Counselor), args.Error(1)
}

func (m *MockCounselorRepository) GetByAccountID(ctx context.Context, accountID string) (*models.Counselor, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Counselor), args.Error(1)
}

func (m *MockCounselorRepository) List(ctx context.Context) ([]models.Counselor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Counselor), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *models.ConsultationSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) CreateBatch(ctx context.Context, schedules []models.ConsultationSchedule) error {
	args := m.Called(ctx, schedules)
	return args.Error(0)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, scheduleID string) (*models.ConsultationSchedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsultationSchedule), args.Error(1)
}

func (m *MockScheduleRepository) List(ctx context.Context) ([]models.ConsultationSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationSchedule), args.Error(1)
}

func (m *MockScheduleRepository) ListByCounselor(ctx context.Context, counselorID string, from, to *time.Time) ([]models.ConsultationSchedule, error) {
	args := m.Called(ctx, counselorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationSchedule), args.Error(1)
}

func (m *MockScheduleRepository) FindAvailableBetween(ctx context.Context, start, end time.Time) ([]models.AvailableSlot, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AvailableSlot), args.Error(1)
}

func (m *MockScheduleRepository) Update(ctx context.Context, schedule *models.ConsultationSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) Delete(ctx context.Context, scheduleID string) error {
	args := m.Called(ctx, scheduleID)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.ConsultationBooking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, bookingID string) (*models.ConsultationBooking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsultationBooking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context) ([]models.ConsultationBooking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationBooking), args.Error(1)
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.ConsultationBooking, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationBooking), args.Error(1)
}

func (m *MockBookingRepository) ListByCounselorAccount(ctx context.Context, accountID string) ([]models.ConsultationBooking, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationBooking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *models.ConsultationBooking, scheduleStatus string) error {
	args := m.Called(ctx, booking, scheduleStatus)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadAvatar(ctx context.Context, accountID string, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, accountID, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteObject(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStorage) ObjectURL(ctx context.Context, objectName string) (string, error) {
	args := m.Called(ctx, objectName)
	return args.String(0), args.Error(1)
}

type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) GetByID(ctx context.Context, reminderID string) (*models.Reminder, error) {
	args := m.Called(ctx, reminderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reminder), args.Error(1)
}

func (m *MockReminderRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Reminder, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) Delete(ctx context.Context, reminderID string) error {
	args := m.Called(ctx, reminderID)
	return args.Error(0)
}
