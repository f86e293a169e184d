package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/juju/loggo"
	"github.com/rs/cors"

	handlers "healthcommunity/internal/handler"
	"healthcommunity/internal/metrics"
	"healthcommunity/internal/models"
)

var logger = loggo.GetLogger("healthcommunity.middleware")

type Middleware func(http.Handler) http.Handler

// TokenVerifier resolves a bearer token to the caller it was issued to.
type TokenVerifier interface {
	IdentityFromToken(token string) (*models.Identity, error)
}

// Authenticate attaches the caller to the request context when a bearer
// token is present. Requests without a token pass through anonymously; a
// malformed or invalid token is rejected.
func Authenticate(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			// "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				handlers.WriteError(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			identity, err := verifier.IdentityFromToken(parts[1])
			if err != nil {
				handlers.WriteError(w, err.Error(), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handlers.IdentityFromContext(r.Context()) == nil {
			handlers.WriteError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireRole(allowedRoles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := handlers.IdentityFromContext(r.Context())
			if identity == nil {
				handlers.WriteError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			for _, role := range allowedRoles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			handlers.WriteError(w, "access denied: requires role "+strings.Join(allowedRoles, " or "), http.StatusForbidden)
		})
	}
}

// CORS allows the configured origins; an empty list allows any origin.
func CORS(allowedOrigins []string) Middleware {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         600,
	})
	return c.Handler
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging logs every request and records it on collector. It is meant to
// be installed with mux.Router.Use so the matched route template is known.
func Logging(collector *metrics.Collector) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}

			collector.ObserveRequest(r.Method, route, rec.status, elapsed)
			if rec.status >= http.StatusInternalServerError {
				logger.Errorf("%s %s %d %s", r.Method, r.URL.Path, rec.status, elapsed)
			} else {
				logger.Infof("%s %s %d %s", r.Method, r.URL.Path, rec.status, elapsed)
			}
		})
	}
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
