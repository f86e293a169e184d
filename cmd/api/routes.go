package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	handlers "healthcommunity/internal/handler"
	"healthcommunity/internal/metrics"
	"healthcommunity/internal/middleware"
	"healthcommunity/internal/models"
)

// newRouter registers every route. Authentication is resolved globally and
// enforced per route; reads stay public.
func newRouter(h *handlers.Handlers, collector *metrics.Collector, registry *prometheus.Registry, corsOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(mux.MiddlewareFunc(middleware.Logging(collector)))
	router.Use(mux.MiddlewareFunc(middleware.Authenticate(h.AuthService)))

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	authed := func(f http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(f)
	}
	role := func(f http.HandlerFunc, roles ...string) http.Handler {
		return middleware.RequireRole(roles...)(f)
	}
	adminOnly := func(f http.HandlerFunc) http.Handler {
		return role(f, models.RoleAdmin)
	}

	// accounts
	api.HandleFunc("/accounts/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/accounts/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/accounts/refresh-token", h.RefreshToken).Methods(http.MethodPost)
	api.HandleFunc("/accounts/check-email", h.CheckEmail).Methods(http.MethodPost)
	api.Handle("/accounts/me", authed(h.GetCurrentAccount)).Methods(http.MethodGet)
	api.Handle("/accounts", adminOnly(h.ListAccounts)).Methods(http.MethodGet)
	api.Handle("/accounts/stats", adminOnly(h.GetUserStats)).Methods(http.MethodGet)
	api.Handle("/accounts/{accountId}", authed(h.GetAccount)).Methods(http.MethodGet)
	api.Handle("/accounts/{accountId}", authed(h.UpdateAccount)).Methods(http.MethodPut)
	api.Handle("/accounts/{accountId}", adminOnly(h.DeleteAccount)).Methods(http.MethodDelete)
	api.Handle("/accounts/{accountId}/activate", adminOnly(h.ActivateAccount)).Methods(http.MethodPatch)
	api.Handle("/accounts/{accountId}/deactivate", adminOnly(h.DeactivateAccount)).Methods(http.MethodPatch)
	api.Handle("/accounts/{accountId}/role", adminOnly(h.UpdateAccountRole)).Methods(http.MethodPatch)
	api.Handle("/accounts/{accountId}/avatar", authed(h.UploadAvatar)).Methods(http.MethodPost)

	// posts
	api.HandleFunc("/posts", h.GetPosts).Methods(http.MethodGet)
	api.Handle("/posts", authed(h.CreatePost)).Methods(http.MethodPost)
	api.HandleFunc("/posts/{postId}", h.GetPost).Methods(http.MethodGet)
	api.Handle("/posts/{postId}", authed(h.UpdatePost)).Methods(http.MethodPut)
	api.Handle("/posts/{postId}", authed(h.DeletePost)).Methods(http.MethodDelete)
	api.Handle("/posts/{postId}/edit", authed(h.EditPost)).Methods(http.MethodPut)
	api.Handle("/posts/{postId}/vote", authed(h.VotePost)).Methods(http.MethodPost)
	api.Handle("/posts/{postId}/view", authed(h.RecordView)).Methods(http.MethodPatch)
	api.HandleFunc("/posts/{postId}/comments", h.GetPostComments).Methods(http.MethodGet)
	api.Handle("/posts/{postId}/comments", authed(h.AddComment)).Methods(http.MethodPost)

	// comments
	api.Handle("/comments/{commentId}/vote", authed(h.VoteComment)).Methods(http.MethodPost)
	api.HandleFunc("/comments/{commentId}/replies", h.GetReplies).Methods(http.MethodGet)
	api.Handle("/comments/{commentId}/replies", authed(h.AddReply)).Methods(http.MethodPost)

	// moderation
	api.Handle("/moderation/stats", adminOnly(h.ModerationStats)).Methods(http.MethodGet)
	api.Handle("/moderation/posts/pending", adminOnly(h.PostsByStatus)).Methods(http.MethodGet)
	api.Handle("/moderation/posts/status/{status}", adminOnly(h.PostsByStatus)).Methods(http.MethodGet)
	api.Handle("/moderation/comments/pending", adminOnly(h.CommentsByStatus)).Methods(http.MethodGet)
	api.Handle("/moderation/comments/status/{status}", adminOnly(h.CommentsByStatus)).Methods(http.MethodGet)
	api.Handle("/moderation/posts/{postId}/{action}", adminOnly(h.ModeratePost)).Methods(http.MethodPost)
	api.Handle("/moderation/comments/{commentId}/{action}", adminOnly(h.ModerateComment)).Methods(http.MethodPost)

	// stats
	api.HandleFunc("/stats/community", h.CommunityStats).Methods(http.MethodGet)

	// cycles and reminders
	api.HandleFunc("/cycles", h.CreateCycle).Methods(http.MethodPost)
	api.HandleFunc("/cycles/by-customer/{customerId}", h.GetCyclesByCustomer).Methods(http.MethodGet)
	api.HandleFunc("/cycles/by-id/{cycleId}", h.GetCycle).Methods(http.MethodGet)
	api.HandleFunc("/cycles/by-id/{cycleId}", h.UpdateCycle).Methods(http.MethodPut)
	api.HandleFunc("/cycles/by-id/{cycleId}", h.DeleteCycle).Methods(http.MethodDelete)
	api.HandleFunc("/reminders", h.CreateReminder).Methods(http.MethodPost)
	api.HandleFunc("/reminders/by-customer/{customerId}", h.GetRemindersByCustomer).Methods(http.MethodGet)
	api.HandleFunc("/reminders/by-id/{reminderId}", h.GetReminder).Methods(http.MethodGet)
	api.HandleFunc("/reminders/by-id/{reminderId}", h.UpdateReminder).Methods(http.MethodPut)
	api.HandleFunc("/reminders/by-id/{reminderId}", h.DeleteReminder).Methods(http.MethodDelete)

	// counselors and schedules
	api.Handle("/counselors", adminOnly(h.CreateCounselor)).Methods(http.MethodPost)
	api.HandleFunc("/counselors", h.GetCounselors).Methods(http.MethodGet)
	api.HandleFunc("/schedules/available-counselors", h.GetAvailableCounselors).Methods(http.MethodGet)
	api.HandleFunc("/schedules/filter", h.FilterSchedules).Methods(http.MethodGet)
	api.HandleFunc("/schedules/by-account/{accountId}", h.GetSchedulesByAccount).Methods(http.MethodGet)
	api.Handle("/schedules", role(h.GetSchedules, models.RoleAdmin, models.RoleCounselor)).Methods(http.MethodGet)
	api.Handle("/schedules", adminOnly(h.CreateSchedule)).Methods(http.MethodPost)
	api.Handle("/schedules/{scheduleId}", role(h.UpdateSchedule, models.RoleAdmin, models.RoleCounselor)).Methods(http.MethodPut)
	api.Handle("/schedules/{scheduleId}", adminOnly(h.DeleteSchedule)).Methods(http.MethodDelete)

	// bookings
	api.Handle("/bookings", role(h.CreateBooking, models.RoleCustomer, models.RoleAdmin)).Methods(http.MethodPost)
	api.Handle("/bookings", adminOnly(h.GetBookings)).Methods(http.MethodGet)
	api.Handle("/bookings/customer/{accountId}", authed(h.GetBookingsByCustomer)).Methods(http.MethodGet)
	api.Handle("/bookings/counselor/{accountId}", authed(h.GetBookingsByCounselor)).Methods(http.MethodGet)
	api.Handle("/bookings/{bookingId}", authed(h.GetBooking)).Methods(http.MethodGet)
	api.Handle("/bookings/{bookingId}", role(h.UpdateBooking, models.RoleAdmin, models.RoleCounselor)).Methods(http.MethodPut)
	api.Handle("/bookings/{bookingId}", adminOnly(h.DeleteBooking)).Methods(http.MethodDelete)

	return middleware.CORS(corsOrigins)(router)
}
