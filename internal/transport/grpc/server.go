// Package grpc provides the gRPC transport layer for the personnel directory.
//
// The service is registered from a hand-written descriptor whose messages are
// google.protobuf.Struct values carrying the same JSON shapes as the HTTP API,
// so no code generation step is needed.
package grpc

import (
	"context"
	"log/slog"
	"net"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/mvaleed/personnel/internal/auth"
	"github.com/mvaleed/personnel/internal/config"
	"github.com/mvaleed/personnel/internal/metrics"
	"github.com/mvaleed/personnel/internal/service"
)

// Server wraps the gRPC server with dependencies
type Server struct {
	grpcServer       *grpc.Server
	health           *health.Server
	employeeService  *service.EmployeeService
	authService      *service.AuthService
	referenceService *service.ReferenceService
	jwtManager       *auth.JWTManager
	authEnabled      bool
	logger           *slog.Logger
}

// NewServer creates a new gRPC server with all handlers registered
func NewServer(
	cfg *config.Config,
	employeeService *service.EmployeeService,
	authService *service.AuthService,
	referenceService *service.ReferenceService,
	jwtManager *auth.JWTManager,
	logger *slog.Logger,
) *Server {
	s := &Server{
		health:           health.NewServer(),
		employeeService:  employeeService,
		authService:      authService,
		referenceService: referenceService,
		jwtManager:       jwtManager,
		authEnabled:      cfg.AuthEnabled,
		logger:           logger,
	}

	// Create gRPC server with interceptors
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			s.loggingInterceptor,
			s.recoveryInterceptor,
			s.authInterceptor,
		),
	)

	RegisterDirectoryServer(grpcServer, newDirectoryHandler(s))
	healthpb.RegisterHealthServer(grpcServer, s.health)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	s.grpcServer = grpcServer
	return s
}

// Serve starts the gRPC server on the given listener
func (s *Server) Serve(listener net.Listener) error {
	return s.grpcServer.Serve(listener)
}

// GracefulStop gracefully stops the gRPC server
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

// loggingInterceptor logs and counts every request. Rejections of
// caller input are logged at WARN, server faults at ERROR.
func (s *Server) loggingInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	resp, err := handler(ctx, req)

	code := status.Code(err)
	metrics.ObserveGRPC(info.FullMethod, code.String())

	switch code {
	case codes.OK:
		s.logger.InfoContext(ctx, "gRPC request", "method", info.FullMethod)
	case codes.Internal, codes.Unknown:
		s.logger.ErrorContext(ctx, "gRPC request failed",
			"method", info.FullMethod,
			"error", err,
		)
	default:
		s.logger.WarnContext(ctx, "gRPC request rejected",
			"method", info.FullMethod,
			"code", code.String(),
			"error", err,
		)
	}

	return resp, err
}

// recoveryInterceptor recovers from panics
func (s *Server) recoveryInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("gRPC panic recovered",
				"method", info.FullMethod,
				"panic", r,
			)
			err = status.Error(codes.Internal, "internal server error")
		}
	}()

	return handler(ctx, req)
}

// authInterceptor validates JWT tokens for protected endpoints
func (s *Server) authInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	if !s.authEnabled || isPublicMethod(info.FullMethod) {
		return handler(ctx, req)
	}

	// Extract token from metadata
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing metadata")
	}

	tokens := md.Get("authorization")
	if len(tokens) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}

	token, found := strings.CutPrefix(tokens[0], "Bearer ")
	if !found {
		return nil, status.Error(codes.Unauthenticated, "invalid authorization format")
	}

	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	// Add claims to context
	ctx = context.WithValue(ctx, claimsKey{}, claims)

	return handler(ctx, req)
}

// claimsKey is the context key for JWT claims
type claimsKey struct{}

// ClaimsFromContext extracts JWT claims from the context
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// isPublicMethod returns true if the method doesn't require authentication
func isPublicMethod(method string) bool {
	return method == fullMethod(methodLogin) || strings.HasPrefix(method, "/grpc.health.v1.Health/")
}
