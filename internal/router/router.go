package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/crewdeck/crewdeck/internal/auth"
	"github.com/crewdeck/crewdeck/internal/employee"
	employeerepo "github.com/crewdeck/crewdeck/internal/employee/repo"
	"github.com/crewdeck/crewdeck/internal/quiz"
	"github.com/crewdeck/crewdeck/internal/technology"
	userrepo "github.com/crewdeck/crewdeck/internal/user/repo"
	"github.com/crewdeck/crewdeck/pkg/utilities"
)

type ctxKey string

const requestIDKey ctxKey = "requestID"

// RequestIDFrom returns the id stamped by RequestIDMiddleware.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestIDMiddleware stamps each request with a snowflake id, exposed in
// the context and the X-Request-Id response header.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := utilities.NewRequestID()
			w.Header().Set("X-Request-Id", id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
		})
	}
}

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
				"request_id", RequestIDFrom(r.Context()),
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			if w.Header().Get("Content-Security-Policy") == "" {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'self';")
			}
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts HTTP handlers using the standard library's
// http.ServeMux. Auth endpoints and health are open; every resource route
// sits behind the auth gate, which must complete before a handler runs.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB, authCfg auth.Config) http.Handler {
	mux := http.NewServeMux()

	codec := auth.NewTokenCodec(authCfg.Secret, authCfg.TokenTTL)
	authSvc := auth.NewService(userrepo.NewUserRepo(db), nil, codec)
	authHandler := auth.NewHandler(authSvc, logger)
	gate := auth.RequireAuth(authSvc, logger)

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/verify", authHandler.Verify)

	employeeHandler := employee.NewHandler(employee.NewService(employeerepo.NewEmployeeRepo(db)), logger)
	mux.Handle("GET /api/employees", gate(http.HandlerFunc(employeeHandler.List)))
	mux.Handle("POST /api/employees", gate(http.HandlerFunc(employeeHandler.Create)))
	mux.Handle("GET /api/employees/{id}", gate(http.HandlerFunc(employeeHandler.Get)))
	mux.Handle("PUT /api/employees/{id}", gate(http.HandlerFunc(employeeHandler.Update)))
	mux.Handle("DELETE /api/employees/{id}", gate(http.HandlerFunc(employeeHandler.Delete)))

	quizHandler := quiz.NewHandler(quiz.NewRepo(db), logger)
	mux.Handle("GET /api/quizzes", gate(http.HandlerFunc(quizHandler.List)))
	mux.Handle("GET /api/quizzes/{id}", gate(http.HandlerFunc(quizHandler.Get)))

	technologyHandler := technology.NewHandler(technology.NewRepo(db), logger)
	mux.Handle("GET /api/technologies", gate(http.HandlerFunc(technologyHandler.List)))
	mux.Handle("GET /api/technologies/{name}", gate(http.HandlerFunc(technologyHandler.Get)))

	// health
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		dbStatus := "connected"
		if err := db.PingContext(r.Context()); err != nil {
			dbStatus = "disconnected"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    "OK",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// JSON 404 for everything unmatched
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "Not Found",
			"message": fmt.Sprintf("Route %s not found", r.URL.Path),
		})
	})

	handler := RequestIDMiddleware()(LoggingMiddleware(logger)(SecurityHeadersMiddleware()(mux)))
	return handler
}
