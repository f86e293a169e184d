package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	RoleCustomer  = "Customer"
	RoleCounselor = "Counselor"
	RoleDoctor    = "Doctor"
	RoleManager   = "Manager"
	RoleAdmin     = "Admin"
)

// Roles lists every account role accepted on registration and role changes.
var Roles = []string{RoleCustomer, RoleCounselor, RoleDoctor, RoleManager, RoleAdmin}

type Account struct {
	AccountID              string     `json:"accountId" db:"account_id"`
	Name                   string     `json:"name" db:"name"`
	Email                  string     `json:"email" db:"email"`
	PasswordHash           string     `json:"-" db:"password_hash"`
	Role                   string     `json:"role" db:"role"`
	Image                  string     `json:"image" db:"image"`
	Gender                 string     `json:"gender" db:"gender"`
	Phone                  string     `json:"phone" db:"phone"`
	IsVerified             bool       `json:"isVerified" db:"is_verified"`
	IsActive               bool       `json:"isActive" db:"is_active"`
	LastLogin              *time.Time `json:"lastLogin,omitempty" db:"last_login"`
	RefreshToken           string     `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time  `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time  `json:"updatedAt" db:"updated_at"`
}

// AccountSummary is the author view embedded in posts and comments.
type AccountSummary struct {
	AccountID string `json:"accountId"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Role      string `json:"role"`
}

type Counselor struct {
	CounselorID     string    `json:"counselorId" db:"counselor_id"`
	AccountID       string    `json:"accountId" db:"account_id"`
	Specialty       string    `json:"specialty" db:"specialty"`
	Bio             string    `json:"bio" db:"bio"`
	ExperienceYears int       `json:"experienceYears" db:"experience_years"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	Account         *Account  `json:"account,omitempty" db:"-"`
}

type Post struct {
	PostID          string         `json:"postId" db:"post_id"`
	AccountID       string         `json:"accountId" db:"account_id"`
	Title           string         `json:"title" db:"title"`
	Content         string         `json:"content" db:"content"`
	Category        string         `json:"category" db:"category"`
	Tags            pq.StringArray `json:"tags" db:"tags"`
	VoteUp          pq.StringArray `json:"voteUp" db:"vote_up"`
	VoteDown        pq.StringArray `json:"voteDown" db:"vote_down"`
	ViewCount       int            `json:"viewCount" db:"view_count"`
	AnswerCount     int            `json:"answerCount" db:"answer_count"`
	HasExpertAnswer bool           `json:"hasExpertAnswer" db:"has_expert_answer"`
	IsAnonymous     bool           `json:"isAnonymous" db:"is_anonymous"`
	Status          string         `json:"status" db:"status"`
	EditedAt        *time.Time     `json:"editedAt,omitempty" db:"edited_at"`
	ModerationStamp
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	AuthorName string `json:"-" db:"author_name"`
	AuthorRole string `json:"-" db:"author_role"`
}

type Comment struct {
	CommentID       string         `json:"commentId" db:"comment_id"`
	PostID          string         `json:"postId" db:"post_id"`
	ParentCommentID *string        `json:"parentCommentId" db:"parent_comment_id"`
	AccountID       string         `json:"accountId" db:"account_id"`
	Content         string         `json:"content" db:"content"`
	VoteUp          pq.StringArray `json:"voteUp" db:"vote_up"`
	VoteDown        pq.StringArray `json:"voteDown" db:"vote_down"`
	Status          string         `json:"status" db:"status"`
	ModerationStamp
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	AuthorName  string `json:"-" db:"author_name"`
	AuthorRole  string `json:"-" db:"author_role"`
	AuthorImage string `json:"-" db:"author_image"`
}

// ModerationStamp records who moved an entity between moderation states.
type ModerationStamp struct {
	ModeratedBy     *string    `json:"moderatedBy,omitempty" db:"moderated_by"`
	ModeratedAt     *time.Time `json:"moderatedAt,omitempty" db:"moderated_at"`
	RejectionReason *string    `json:"rejectionReason,omitempty" db:"rejection_reason"`
	FlaggedBy       *string    `json:"flaggedBy,omitempty" db:"flagged_by"`
	FlaggedAt       *time.Time `json:"flaggedAt,omitempty" db:"flagged_at"`
	FlagReason      *string    `json:"flagReason,omitempty" db:"flag_reason"`
}

type Cycle struct {
	CycleID       string    `json:"cycleId" db:"cycle_id"`
	CustomerID    string    `json:"customerId" db:"customer_id"`
	PeriodDays    DateList  `json:"periodDays" db:"period_days"`
	Notes         string    `json:"notes" db:"notes"`
	FertileWindow DateList  `json:"fertileWindow" db:"fertile_window"`
	OvulationDate time.Time `json:"ovulationDate" db:"ovulation_date"`
	IsPredicted   bool      `json:"isPredicted" db:"is_predicted"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

type Reminder struct {
	ReminderID string    `json:"reminderId" db:"reminder_id"`
	CustomerID string    `json:"customerId" db:"customer_id"`
	Type       string    `json:"type" db:"type"`
	Date       time.Time `json:"date" db:"date"`
	Message    string    `json:"message" db:"message"`
	IsSent     bool      `json:"isSent" db:"is_sent"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

const (
	ScheduleAvailable = "available"
	ScheduleBooked    = "booked"
	ScheduleCompleted = "completed"
	ScheduleCancelled = "cancelled"
)

type ConsultationSchedule struct {
	ScheduleID  string    `json:"scheduleId" db:"schedule_id"`
	CounselorID string    `json:"counselorId" db:"counselor_id"`
	StartTime   time.Time `json:"startTime" db:"start_time"`
	EndTime     time.Time `json:"endTime" db:"end_time"`
	Status      string    `json:"status" db:"status"`
	Note        string    `json:"note" db:"note"`
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// AvailableSlot is a schedule row joined to its counselor and the
// counselor's account.
type AvailableSlot struct {
	ScheduleID       string    `db:"schedule_id"`
	StartTime        time.Time `db:"start_time"`
	CounselorID      string    `db:"counselor_id"`
	Specialty        string    `db:"specialty"`
	Bio              string    `db:"bio"`
	ExperienceYears  int       `db:"experience_years"`
	AccountID        string    `db:"account_id"`
	AccountName      string    `db:"account_name"`
	AccountEmail     string    `db:"account_email"`
	AccountImage     string    `db:"account_image"`
	AccountGender    string    `db:"account_gender"`
	AccountPhone     string    `db:"account_phone"`
	AccountVerified  bool      `db:"account_verified"`
	CounselorCreated time.Time `db:"counselor_created_at"`
}

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

type ConsultationBooking struct {
	BookingID   string    `json:"bookingId" db:"booking_id"`
	CustomerID  string    `json:"customerId" db:"customer_id"`
	ScheduleID  string    `json:"scheduleId" db:"schedule_id"`
	BookingDate time.Time `json:"bookingDate" db:"booking_date"`
	Note        string    `json:"note" db:"note"`
	Status      string    `json:"status" db:"status"`
	Result      string    `json:"result" db:"result"`
	Rating      *int      `json:"rating,omitempty" db:"rating"`
	Feedback    string    `json:"feedback" db:"feedback"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Schedule *ConsultationSchedule `json:"schedule,omitempty" db:"-"`
}

type TrendingTopic struct {
	Name  string `json:"name" db:"name"`
	Posts int    `json:"posts" db:"posts"`
	Trend string `json:"trend" db:"-"`
}

type CommunityStats struct {
	ActiveMembers  int             `json:"activeMembers"`
	Discussions    int             `json:"discussions"`
	ExpertAnswers  int             `json:"expertAnswers"`
	TrendingTopics []TrendingTopic `json:"trendingTopics"`
}

// UserStats summarises the account base for admins.
type UserStats struct {
	TotalUsers          int            `json:"totalUsers"`
	ActiveUsers         int            `json:"activeUsers"`
	InactiveUsers       int            `json:"inactiveUsers"`
	UsersByRole         map[string]int `json:"usersByRole"`
	RecentRegistrations int            `json:"recentRegistrations"`
	GrowthRate          float64        `json:"growthRate"`
}

// StatusCounts maps a moderation status to the number of entities in it.
type StatusCounts map[string]int

type ModerationStats struct {
	Posts    StatusCounts `json:"posts"`
	Comments StatusCounts `json:"comments"`
}

// Identity is the caller extracted from an access token.
type Identity struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// IsAdmin reports whether the caller may act on other accounts' content.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
