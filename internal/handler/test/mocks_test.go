package test

import (
	"context"
	"io"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"healthcommunity/internal/domain"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.Account, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.Account), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.Account, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.Account), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) IdentityFromToken(tokenString string) (*models.Identity, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, filter repository.AccountFilter) ([]models.Account, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Account), args.Int(1), args.Error(2)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, caller *models.Identity, req models.UpdateAccountRequest) (*models.Account, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountService) SetActive(ctx context.Context, accountID string, active bool) (*models.Account, error) {
	args := m.Called(ctx, accountID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) SetRole(ctx context.Context, accountID, role string) (*models.Account, error) {
	args := m.Called(ctx, accountID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) UploadAvatar(ctx context.Context, accountID, fileName string, file io.Reader, size int64) (*models.Account, error) {
	args := m.Called(ctx, accountID, fileName, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountService) UserStats(ctx context.Context) (*models.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, caller *models.Identity, req models.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context, caller *models.Identity, filter repository.PostFilter) ([]*domain.PostView, int, error) {
	args := m.Called(ctx, caller, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.PostView), args.Int(1), args.Error(2)
}

func (m *MockPostService) GetPost(ctx context.Context, caller *models.Identity, postID string) (*domain.PostView, error) {
	args := m.Called(ctx, caller, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostView), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, caller *models.Identity, req models.UpdatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) EditPost(ctx context.Context, caller *models.Identity, req models.EditPostRequest) (*models.Post, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, caller *models.Identity, postID string) error {
	args := m.Called(ctx, caller, postID)
	return args.Error(0)
}

func (m *MockPostService) VotePost(ctx context.Context, caller *models.Identity, postID string, req models.VoteRequest) (*models.Post, domain.VoteStats, error) {
	args := m.Called(ctx, caller, postID, req)
	if args.Get(0) == nil {
		return nil, domain.VoteStats{}, args.Error(2)
	}
	return args.Get(0).(*models.Post), args.Get(1).(domain.VoteStats), args.Error(2)
}

func (m *MockPostService) RecordView(ctx context.Context, postID string) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostService) ListComments(ctx context.Context, caller *models.Identity, postID string, page, limit int) ([]*domain.CommentNode, int, error) {
	args := m.Called(ctx, caller, postID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.CommentNode), args.Int(1), args.Error(2)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, caller *models.Identity, req models.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) AddReply(ctx context.Context, caller *models.Identity, parentCommentID string, req models.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, caller, parentCommentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) ListReplies(ctx context.Context, caller *models.Identity, commentID string) ([]*domain.CommentNode, error) {
	args := m.Called(ctx, caller, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CommentNode), args.Error(1)
}

func (m *MockCommentService) VoteComment(ctx context.Context, caller *models.Identity, commentID string, req models.VoteRequest) (*models.Comment, domain.VoteStats, error) {
	args := m.Called(ctx, caller, commentID, req)
	if args.Get(0) == nil {
		return nil, domain.VoteStats{}, args.Error(2)
	}
	return args.Get(0).(*models.Comment), args.Get(1).(domain.VoteStats), args.Error(2)
}

func (m *MockCommentService) ApplyApproval(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentService) RecountAnswers(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) ModeratePost(ctx context.Context, moderator *models.Identity, postID string, action domain.Action, reason string) (*models.Post, error) {
	args := m.Called(ctx, moderator, postID, action, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockModerationService) ModerateComment(ctx context.Context, moderator *models.Identity, commentID string, action domain.Action, reason string) (*models.Comment, error) {
	args := m.Called(ctx, moderator, commentID, action, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockModerationService) PostsByStatus(ctx context.Context, status domain.Status, page, limit int) ([]models.Post, int, error) {
	args := m.Called(ctx, status, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Int(1), args.Error(2)
}

func (m *MockModerationService) CommentsByStatus(ctx context.Context, status domain.Status, page, limit int) ([]models.Comment, int, error) {
	args := m.Called(ctx, status, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Int(1), args.Error(2)
}

func (m *MockModerationService) Stats(ctx context.Context) (*models.ModerationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModerationStats), args.Error(1)
}

type MockCycleService struct {
	mock.Mock
}

func (m *MockCycleService) CreateCycle(ctx context.Context, req models.CreateCycleRequest) (*models.Cycle, []models.Reminder, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Cycle), args.Get(1).([]models.Reminder), args.Error(2)
}

func (m *MockCycleService) GetCycle(ctx context.Context, cycleID string) (*models.Cycle, error) {
	args := m.Called(ctx, cycleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cycle), args.Error(1)
}

func (m *MockCycleService) ListCycles(ctx context.Context, customerID string) ([]models.Cycle, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Cycle), args.Error(1)
}

func (m *MockCycleService) UpdateCycle(ctx context.Context, cycleID string, req models.UpdateCycleRequest) (*models.Cycle, error) {
	args := m.Called(ctx, cycleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cycle), args.Error(1)
}

func (m *MockCycleService) DeleteCycle(ctx context.Context, cycleID string) error {
	args := m.Called(ctx, cycleID)
	return args.Error(0)
}

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) AvailableCounselors(ctx context.Context, date, startTime, endTime string) ([]models.Counselor, error) {
	args := m.Called(ctx, date, startTime, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Counselor), args.Error(1)
}

func (m *MockScheduleService) ListSchedules(ctx context.Context) ([]models.ConsultationSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationSchedule), args.Error(1)
}

func (m *MockScheduleService) FilterSchedules(ctx context.Context, counselorID, date string) ([]models.ConsultationSchedule, error) {
	args := m.Called(ctx, counselorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationSchedule), args.Error(1)
}

func (m *MockScheduleService) SchedulesByAccount(ctx context.Context, accountID string) ([]models.ConsultationSchedule, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationSchedule), args.Error(1)
}

func (m *MockScheduleService) CreateSchedule(ctx context.Context, req models.CreateScheduleRequest) (*models.ConsultationSchedule, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsultationSchedule), args.Error(1)
}

func (m *MockScheduleService) UpdateSchedule(ctx context.Context, scheduleID string, req models.UpdateScheduleRequest) (*models.ConsultationSchedule, error) {
	args := m.Called(ctx, scheduleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsultationSchedule), args.Error(1)
}

func (m *MockScheduleService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	args := m.Called(ctx, scheduleID)
	return args.Error(0)
}

func (m *MockScheduleService) GenerateSchedules(ctx context.Context, plan domain.SlotPlan, dryRun bool) ([]models.ConsultationSchedule, error) {
	args := m.Called(ctx, plan, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationSchedule), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, caller *models.Identity, req models.CreateBookingRequest) (*models.ConsultationBooking, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsultationBooking), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, caller *models.Identity, bookingID string) (*models.ConsultationBooking, error) {
	args := m.Called(ctx, caller, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsultationBooking), args.Error(1)
}

func (m *MockBookingService) ListBookings(ctx context.Context) ([]models.ConsultationBooking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationBooking), args.Error(1)
}

func (m *MockBookingService) ListByCustomer(ctx context.Context, customerID string) ([]models.ConsultationBooking, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationBooking), args.Error(1)
}

func (m *MockBookingService) ListByCounselorAccount(ctx context.Context, accountID string) ([]models.ConsultationBooking, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsultationBooking), args.Error(1)
}

func (m *MockBookingService) UpdateBooking(ctx context.Context, caller *models.Identity, bookingID string, req models.UpdateBookingRequest) (*models.ConsultationBooking, error) {
	args := m.Called(ctx, caller, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsultationBooking), args.Error(1)
}

func (m *MockBookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Community(ctx context.Context) (*models.CommunityStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommunityStats), args.Error(1)
}

func (m *MockStatsService) CountTables(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
