package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/mvaleed/personnel/internal/auth"
	"github.com/mvaleed/personnel/internal/config"
	"github.com/mvaleed/personnel/internal/event"
	"github.com/mvaleed/personnel/internal/service"
	grpcTransport "github.com/mvaleed/personnel/internal/transport/grpc"
	httpTransport "github.com/mvaleed/personnel/internal/transport/http"
	"github.com/mvaleed/personnel/internal/validation"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			if err := run(cmd.Context(), cfg, logger); err != nil {
				logger.Error("application error", "error", err)
				return err
			}
			return nil
		},
	}
}

func run(parent context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.close()

	jwtConfig := auth.DefaultJWTConfig()
	jwtConfig.SecretKey = cfg.JWTSecretKey
	jwtConfig.AccessTokenTTL = cfg.AccessTokenTTL
	jwtManager := auth.NewJWTManager(jwtConfig)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	publisher := event.NewLoggingPublisher(logger)
	defer publisher.Close()

	repos := store.repos
	pipeline := validation.NewPipeline(validation.NewFields(), repos.Employees, repos.Departments, repos.Certifications)
	timeouts := service.Timeouts{Query: cfg.QueryTimeout, Mutation: cfg.MutationTimeout}

	employeeService := service.NewEmployeeService(repos, store.tx, pipeline, hasher, publisher, timeouts)
	authService := service.NewAuthService(repos.Employees, hasher, jwtManager, publisher)
	referenceService := service.NewReferenceService(repos, cfg.QueryTimeout)

	if !cfg.AuthEnabled {
		logger.Warn("authentication disabled")
	}

	errChan := make(chan error, 2)

	httpServer := httpTransport.NewServer(
		cfg,
		employeeService,
		authService,
		referenceService,
		jwtManager,
		logger,
	)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		logger.Info("starting HTTP server", "addr", addr)
		if err := httpServer.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	grpcServer := grpcTransport.NewServer(
		cfg,
		employeeService,
		authService,
		referenceService,
		jwtManager,
		logger,
	)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.GRPCPort)
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			errChan <- fmt.Errorf("gRPC listen: %w", err)
			return
		}
		logger.Info("starting gRPC server", "addr", addr)
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-errChan:
		logger.Error("server error", "error", err)
		return err
	case <-ctx.Done():
	}

	logger.Info("initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	grpcServer.GracefulStop()

	cancel()

	logger.Info("shutdown complete")
	return nil
}
