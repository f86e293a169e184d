package service

import (
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"healthcommunity/internal/config"
	"healthcommunity/internal/domain"
	"healthcommunity/internal/metrics"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
	"healthcommunity/internal/storage"
)

var logger = loggo.GetLogger("healthcommunity.service")

type Service struct {
	Auth       AuthService
	Account    AccountService
	Post       PostService
	Comment    CommentService
	Moderation ModerationService
	Cycle      CycleService
	Reminder   ReminderService
	Counselor  CounselorService
	Schedule   ScheduleService
	Booking    BookingService
	Stats      StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, collector *metrics.Collector) *Service {
	clk := clock.WallClock
	filter := domain.NewWordFilter(cfg.BannedWords)
	comments := NewCommentService(rep.Comment, rep.Post, rep.Account, filter, clk)

	return &Service{
		Auth:       NewAuthService(rep.Account, cfg, clk),
		Account:    NewAccountService(rep.Account, storage, cfg, clk),
		Post:       NewPostService(rep.Post, rep.Comment, rep.Account, filter, cfg, clk),
		Comment:    comments,
		Moderation: NewModerationService(rep.Post, rep.Comment, comments, collector, clk),
		Cycle:      NewCycleService(rep.Cycle, clk),
		Reminder:   NewReminderService(rep.Reminder, clk),
		Counselor:  NewCounselorService(rep.Counselor, rep.Account),
		Schedule:   NewScheduleService(rep.Schedule, rep.Counselor, cfg, clk),
		Booking:    NewBookingService(rep.Booking, rep.Schedule, rep.Counselor, clk),
		Stats:      NewStatsService(rep.Stats),
	}
}

// resolveActor picks the account acting on a request. A body accountId is
// honoured only when it matches the caller or the caller is an admin.
func resolveActor(caller *models.Identity, bodyAccountID string) (string, error) {
	if caller == nil {
		return "", errors.Unauthorizedf("authentication required")
	}
	if bodyAccountID == "" || bodyAccountID == caller.AccountID {
		return caller.AccountID, nil
	}
	if caller.IsAdmin() {
		return bodyAccountID, nil
	}
	return "", errors.Forbiddenf("cannot act on behalf of another account")
}

// canManage reports whether caller owns ownerID or is an admin.
func canManage(caller *models.Identity, ownerID string) bool {
	return caller != nil && (caller.AccountID == ownerID || caller.IsAdmin())
}

func viewerID(caller *models.Identity) string {
	if caller == nil {
		return ""
	}
	return caller.AccountID
}

func pageLimit(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
