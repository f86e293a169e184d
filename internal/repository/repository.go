package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"healthcommunity/internal/models"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, account *models.Account, password string) error
	GetAccountByID(ctx context.Context, accountID string) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListAccounts(ctx context.Context, filter AccountFilter) ([]models.Account, int, error)
	UpdateAccount(ctx context.Context, account *models.Account) error
	UpdatePassword(ctx context.Context, accountID, password string) error
	DeleteAccount(ctx context.Context, accountID string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.Account, error)
	UpdateRefreshToken(ctx context.Context, accountID, refreshToken string, expiryTime time.Time) error
	GetAccountByRefreshToken(ctx context.Context, refreshToken string) (*models.Account, error)
	TouchLastLogin(ctx context.Context, accountID string, at time.Time) error
	CountAccounts(ctx context.Context, recentFrom, previousFrom time.Time) (*AccountCounts, error)
}

type CounselorRepository interface {
	Create(ctx context.Context, counselor *models.Counselor) error
	GetByID(ctx context.Context, counselorID string) (*models.Counselor, error)
	GetByAccountID(ctx context.Context, accountID string) (*models.Counselor, error)
	List(ctx context.Context) ([]models.Counselor, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Post, int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateVotes(ctx context.Context, postID string, up, down []string) error
	UpdateModeration(ctx context.Context, post *models.Post) error
	IncrementViewCount(ctx context.Context, postID string) (int, error)
	IncrementAnswerCount(ctx context.Context, postID string, expert bool) error
	SetAnswerCounters(ctx context.Context, postID string, answerCount int, hasExpertAnswer bool) error
	Delete(ctx context.Context, postID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID, status string) ([]models.Comment, error)
	ListReplies(ctx context.Context, parentCommentID, status string) ([]models.Comment, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Comment, int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
	UpdateVotes(ctx context.Context, commentID string, up, down []string) error
	UpdateModeration(ctx context.Context, comment *models.Comment) error
	AnswerCounters(ctx context.Context, postID string) (int, bool, error)
}

type CycleRepository interface {
	CreateWithReminders(ctx context.Context, cycle *models.Cycle, reminders []models.Reminder) error
	GetByID(ctx context.Context, cycleID string) (*models.Cycle, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Cycle, error)
	Update(ctx context.Context, cycle *models.Cycle) error
	Delete(ctx context.Context, cycleID string) error
}

type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	GetByID(ctx context.Context, reminderID string) (*models.Reminder, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, reminderID string) error
}

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.ConsultationSchedule) error
	CreateBatch(ctx context.Context, schedules []models.ConsultationSchedule) error
	GetByID(ctx context.Context, scheduleID string) (*models.ConsultationSchedule, error)
	List(ctx context.Context) ([]models.ConsultationSchedule, error)
	ListByCounselor(ctx context.Context, counselorID string, from, to *time.Time) ([]models.ConsultationSchedule, error)
	FindAvailableBetween(ctx context.Context, start, end time.Time) ([]models.AvailableSlot, error)
	Update(ctx context.Context, schedule *models.ConsultationSchedule) error
	Delete(ctx context.Context, scheduleID string) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.ConsultationBooking) error
	GetByID(ctx context.Context, bookingID string) (*models.ConsultationBooking, error)
	List(ctx context.Context) ([]models.ConsultationBooking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.ConsultationBooking, error)
	ListByCounselorAccount(ctx context.Context, accountID string) ([]models.ConsultationBooking, error)
	Update(ctx context.Context, booking *models.ConsultationBooking, scheduleStatus string) error
	Delete(ctx context.Context, bookingID string) error
}

type StatsRepository interface {
	CountTables(ctx context.Context) (int, error)
	CommunityStats(ctx context.Context, trendingLimit int) (*models.CommunityStats, error)
}

type Repository struct {
	Account   AccountRepository
	Counselor CounselorRepository
	Post      PostRepository
	Comment   CommentRepository
	Cycle     CycleRepository
	Reminder  ReminderRepository
	Schedule  ScheduleRepository
	Booking   BookingRepository
	Stats     StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Account:   NewAccountRepository(db),
		Counselor: NewCounselorRepository(db),
		Post:      NewPostRepository(db),
		Comment:   NewCommentRepository(db),
		Cycle:     NewCycleRepository(db),
		Reminder:  NewReminderRepository(db),
		Schedule:  NewScheduleRepository(db),
		Booking:   NewBookingRepository(db),
		Stats:     NewStatsRepository(db),
	}
}
