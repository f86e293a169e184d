package models

import (
	"encoding/json"
	"time"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=Customer Counselor Doctor Manager Admin"`
	Gender   string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateAccountRequest is a partial update; empty fields are left unchanged.
type UpdateAccountRequest struct {
	AccountID string `json:"-"`
	Name      string `json:"name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"omitempty,min=6"`
	Gender    string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Customer Counselor Doctor Manager Admin"`
}

type CreatePostRequest struct {
	AccountID   string   `json:"accountId"`
	Title       string   `json:"title" validate:"required,max=200"`
	Content     string   `json:"content" validate:"required"`
	Category    string   `json:"category" validate:"omitempty,max=50"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
	IsAnonymous bool     `json:"isAnonymous"`
}

// UpdatePostRequest is the author/admin update; nil fields are left unchanged.
type UpdatePostRequest struct {
	PostID      string    `json:"-"`
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Content     *string   `json:"content" validate:"omitempty,min=1"`
	Category    *string   `json:"category" validate:"omitempty,max=50"`
	Tags        *[]string `json:"tags"`
	IsAnonymous *bool     `json:"isAnonymous"`
}

// EditPostRequest is the author's time-limited edit.
type EditPostRequest struct {
	PostID    string `json:"-"`
	AccountID string `json:"accountId"`
	Title     string `json:"title" validate:"required_without=Content,max=200"`
	Content   string `json:"content" validate:"required_without=Title"`
}

// VoteRequest keeps voteType raw so that a missing field and an explicit
// null can be told apart.
type VoteRequest struct {
	AccountID string          `json:"accountId"`
	VoteType  json.RawMessage `json:"voteType"`
}

type CreateCommentRequest struct {
	PostID          string  `json:"-"`
	AccountID       string  `json:"accountId"`
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parentCommentId"`
}

type ModerationRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type CreateCycleRequest struct {
	CustomerID  string   `json:"customerId" validate:"required"`
	PeriodDays  DateList `json:"periodDays"`
	Notes       string   `json:"notes" validate:"omitempty,max=1000"`
	IsPredicted *bool    `json:"isPredicted"`
}

// UpdateCycleRequest replaces periodDays wholesale when present.
type UpdateCycleRequest struct {
	PeriodDays  *DateList `json:"periodDays"`
	Notes       *string   `json:"notes" validate:"omitempty,max=1000"`
	IsPredicted *bool     `json:"isPredicted"`
}

type CreateReminderRequest struct {
	CustomerID string    `json:"customerId" validate:"required"`
	Type       string    `json:"type" validate:"required,max=50"`
	Date       time.Time `json:"date" validate:"required"`
	Message    string    `json:"message" validate:"omitempty,max=500"`
}

type UpdateReminderRequest struct {
	Type    *string    `json:"type" validate:"omitempty,min=1,max=50"`
	Date    *time.Time `json:"date"`
	Message *string    `json:"message" validate:"omitempty,max=500"`
	IsSent  *bool      `json:"isSent"`
}

type CreateCounselorRequest struct {
	AccountID       string `json:"accountId" validate:"required"`
	Specialty       string `json:"specialty" validate:"omitempty,max=100"`
	Bio             string `json:"bio" validate:"omitempty,max=2000"`
	ExperienceYears int    `json:"experienceYears" validate:"gte=0,lte=80"`
}

type CreateScheduleRequest struct {
	CounselorID string    `json:"counselorId" validate:"required"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	Note        string    `json:"note" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"gte=0"`
}

type UpdateScheduleRequest struct {
	Status *string  `json:"status" validate:"omitempty,oneof=available booked completed cancelled"`
	Note   *string  `json:"note" validate:"omitempty,max=500"`
	Price  *float64 `json:"price" validate:"omitempty,gte=0"`
}

type CreateBookingRequest struct {
	CustomerID string `json:"customerId"`
	ScheduleID string `json:"scheduleId" validate:"required"`
	Note       string `json:"note" validate:"omitempty,max=500"`
}

type UpdateBookingRequest struct {
	Status   *string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Note     *string `json:"note" validate:"omitempty,max=500"`
	Result   *string `json:"result" validate:"omitempty,max=2000"`
	Rating   *int    `json:"rating"`
	Feedback *string `json:"feedback" validate:"omitempty,max=2000"`
}
