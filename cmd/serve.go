// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/canonical/tdms-auth/internal/config"
	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring/prometheus"
	"github.com/canonical/tdms-auth/internal/tracing"
	"github.com/canonical/tdms-auth/pkg/authentication"
	"github.com/canonical/tdms-auth/pkg/profile"
	"github.com/canonical/tdms-auth/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func authenticationConfig(specs *config.EnvSpec) authentication.Config {
	return authentication.Config{
		CredentialsPath: specs.FirebaseCredentialsPath,
		ProjectID:       specs.FirebaseProjectID,
		IssuerURL:       specs.FirebaseIssuerURL,
		JWKSURL:         specs.FirebaseJWKSURL,
	}
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("tdms-auth", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	// background context: the JWKS key set refreshes with it for the process lifetime
	initializer := authentication.NewInitializer(authenticationConfig(specs), tracer, monitor, logger)
	verifier, err := initializer.Initialize(context.Background())
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	authenticator := authentication.NewAuthenticator(verifier, tracer, monitor, logger)
	authMiddleware := authentication.NewMiddleware(authenticator, tracer, monitor, logger)

	// Start gRPC server
	lis, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%v", specs.GRPCPort))
	if err != nil {
		logger.Fatalf("failed to listen on grpc port: %v", err)
	}

	grpcServer := grpc.NewServer(
		tracing.NewMiddleware(monitor, logger).GRPCServerOption(),
		grpc.UnaryInterceptor(authMiddleware.GRPCInterceptor),
	)

	healthServer := health.NewServer()
	if !initializer.Initialized() {
		healthServer.SetServingStatus("firebase", healthpb.HealthCheckResponse_NOT_SERVING)
	}
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	profile.RegisterProfileServer(grpcServer, profile.NewGRPCService(tracer, monitor, logger))

	go func() {
		logger.Infof("Starting gRPC server on port %v", specs.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatalf("failed to serve gRPC: %v", err)
		}
	}()

	router := web.NewRouter(
		authMiddleware,
		initializer,
		specs.CORSAllowedOrigins,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	healthServer.Shutdown()
	grpcServer.GracefulStop()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
