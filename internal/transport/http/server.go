// Package http provides the HTTP transport layer for the personnel directory.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mvaleed/personnel/internal/auth"
	"github.com/mvaleed/personnel/internal/config"
	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/service"
	"github.com/mvaleed/personnel/internal/transport/payload"
)

const codeUnauthorized = "UNAUTHORIZED"

// Server is the HTTP server for the personnel directory.
type Server struct {
	httpServer       *http.Server
	router           *chi.Mux
	employeeService  *service.EmployeeService
	authService      *service.AuthService
	referenceService *service.ReferenceService
	jwtManager       *auth.JWTManager
	authEnabled      bool
	metricsPath      string
	logger           *slog.Logger
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.Config,
	employeeService *service.EmployeeService,
	authService *service.AuthService,
	referenceService *service.ReferenceService,
	jwtManager *auth.JWTManager,
	logger *slog.Logger,
) *Server {
	s := &Server{
		router:           chi.NewRouter(),
		employeeService:  employeeService,
		authService:      authService,
		referenceService: referenceService,
		jwtManager:       jwtManager,
		authEnabled:      cfg.AuthEnabled,
		metricsPath:      cfg.MetricsPath,
		logger:           logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.metricsMiddleware)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	if s.metricsPath != "" {
		s.router.Handle(s.metricsPath, promhttp.Handler())
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", s.handleLogin)

		// Protected routes
		r.Group(func(r chi.Router) {
			if s.authEnabled {
				r.Use(s.authMiddleware)
			}

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", s.handleSearchEmployees)
				r.Post("/", s.handleCreateEmployee)
				r.Get("/{id}", s.handleGetEmployee)
				r.Put("/{id}", s.handleUpdateEmployee)
				r.Delete("/{id}", s.handleDeleteEmployee)
			})

			r.Get("/departments", s.handleListDepartments)
			r.Get("/certifications", s.handleListCertifications)
		})
	})
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Response helpers

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredential):
		s.logger.WarnContext(r.Context(), "login rejected", slog.String("path", r.URL.Path))
		s.writeJSON(w, http.StatusUnauthorized, payload.ErrorResponse{
			Status:    http.StatusUnauthorized,
			ErrorCode: domain.CodeBadCredentials,
			Params:    []string{},
		})
		return

	case errors.Is(err, domain.ErrUnauthorized):
		s.writeJSON(w, http.StatusUnauthorized, payload.ErrorResponse{
			Status:    http.StatusUnauthorized,
			ErrorCode: codeUnauthorized,
			Params:    []string{},
		})
		return
	}

	de := domain.AsError(err)
	attrs := []any{
		slog.String("kind", de.Kind.String()),
		slog.String("code", de.Code),
		slog.Any("params", de.Params),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	}
	if de.Kind == domain.KindSystem {
		s.logger.ErrorContext(r.Context(), "request failed", append(attrs, slog.String("error", err.Error()))...)
	} else {
		s.logger.WarnContext(r.Context(), "request rejected", attrs...)
	}

	resp := payload.NewErrorResponse(de)
	s.writeJSON(w, resp.Status, resp)
}

func (s *Server) readJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.NewValidationError(domain.CodeMalformedRequest, domain.FieldRequestBody)
	}
	return nil
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.status),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Context helpers

type contextKey string

const (
	employeeClaimsKey contextKey = "employee_claims"
)

func setEmployeeClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, employeeClaimsKey, claims)
}

func getEmployeeClaims(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(employeeClaimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
