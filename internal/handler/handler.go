package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"healthcommunity/internal/config"
	"healthcommunity/internal/service"
)

var logger = loggo.GetLogger("healthcommunity.handler")

// HealthChecker is satisfied by *database.DB.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	AuthService       service.AuthService
	AccountService    service.AccountService
	PostService       service.PostService
	CommentService    service.CommentService
	ModerationService service.ModerationService
	CycleService      service.CycleService
	ReminderService   service.ReminderService
	CounselorService  service.CounselorService
	ScheduleService   service.ScheduleService
	BookingService    service.BookingService
	StatsService      service.StatsService
	DB                HealthChecker
	Cfg               *config.Config
	Validate          *validator.Validate
}

func NewHandlers(service *service.Service, db HealthChecker, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:       service.Auth,
		AccountService:    service.Account,
		PostService:       service.Post,
		CommentService:    service.Comment,
		ModerationService: service.Moderation,
		CycleService:      service.Cycle,
		ReminderService:   service.Reminder,
		CounselorService:  service.Counselor,
		ScheduleService:   service.Schedule,
		BookingService:    service.Booking,
		StatsService:      service.Stats,
		DB:                db,
		Cfg:               config,
		Validate:          NewValidator(),
	}
}

// NewValidator reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func newPagination(page, limit, total int) PaginationResponse {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
func (h *Handlers) decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.BadRequestf("invalid request body")
	}
	if err := h.Validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return v
}
