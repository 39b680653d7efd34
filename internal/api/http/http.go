package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcSlog "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/jekabolt/grbpwr-analytics/internal/report"
	"github.com/jekabolt/grbpwr-analytics/log"
)

const healthCheckInterval = 30 * time.Second

// Config is the configuration for the http server
type Config struct {
	Port              string        `mapstructure:"port"`
	Address           string        `mapstructure:"address"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
}

// Server serves the analytics JSON API and gRPC health on one port.
type Server struct {
	hs      *http.Server
	gs      *grpc.Server
	hc      *health.Server
	c       *Config
	reports *report.Service
	done    chan struct{}
}

// New creates a new server
func New(config *Config, reports *report.Service) *Server {
	return &Server{
		c:       config,
		reports: reports,
		hc:      health.NewServer(),
		done:    make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// grpcHandler routes gRPC calls to gs and everything else to h.
func grpcHandler(gs *grpc.Server, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ProtoMajor == 2 && strings.Contains(r.Header.Get("Content-Type"), "application/grpc") {
			gs.ServeHTTP(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// Start starts the server
func (s *Server) Start(ctx context.Context) error {
	opts := []grpcSlog.Option{
		grpcSlog.WithLogOnEvents(grpcSlog.StartCall, grpcSlog.FinishCall),
	}

	s.gs = grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpcSlog.UnaryServerInterceptor(log.InterceptorLogger(slog.Default()), opts...),
			grpcRecovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpcSlog.StreamServerInterceptor(log.InterceptorLogger(slog.Default()), opts...),
			grpcRecovery.StreamServerInterceptor(),
		),
	)
	healthpb.RegisterHealthServer(s.gs, s.hc)

	ctx, cancel := context.WithCancel(ctx)
	hsDone := make(chan struct{})

	go func() {
		<-hsDone
		close(s.done)
	}()

	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           h2c.NewHandler(grpcHandler(s.gs, s.Router()), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("grbpwr-analytics new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		cancel()
		close(hsDone)
	}()

	go s.watchHealth(ctx)

	return nil
}

// watchHealth keeps the gRPC serving status in line with the record store.
func (s *Server) watchHealth(ctx context.Context) {
	t := time.NewTicker(healthCheckInterval)
	defer t.Stop()
	for {
		s.hc.SetServingStatus("", s.servingStatus(ctx))
		select {
		case <-ctx.Done():
			s.hc.Shutdown()
			return
		case <-t.C:
		}
	}
}

func (s *Server) servingStatus(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	if err := s.reports.Ping(ctx); err != nil {
		slog.Default().WarnContext(ctx, "record store is not reachable",
			slog.String("err", err.Error()),
		)
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_SERVING
}

// Stop shuts the http server down and waits for in-flight requests up to ctx.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	s.hc.Shutdown()
	if err := s.hs.Shutdown(ctx); err != nil {
		return fmt.Errorf("can't shutdown http server: %w", err)
	}
	s.gs.GracefulStop()
	return nil
}
