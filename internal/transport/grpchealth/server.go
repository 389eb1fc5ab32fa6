// Package grpchealth exposes the standard gRPC health service so
// orchestrators can probe the API and the status worker.
package grpchealth

import (
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"furniture-delivery/internal/logx"
)

// Server is a gRPC server carrying only the health service.
type Server struct {
	addr   string
	srv    *grpc.Server
	health *health.Server
	logger logx.Logger
}

// New returns a Server for the given port; port 0 disables it and New returns nil.
func New(port int, logger logx.Logger) *Server {
	if port <= 0 {
		return nil
	}
	logger = logx.OrNop(logger)
	hs := health.NewServer()
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	return &Server{
		addr:   fmt.Sprintf(":%d", port),
		srv:    srv,
		health: hs,
		logger: logger,
	}
}

// SetServing marks service (empty for the whole server) as serving or not.
func (s *Server) SetServing(service string, serving bool) {
	if s == nil {
		return
	}
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(service, st)
}

// Start listens on the configured port and serves in the background.
func (s *Server) Start() error {
	if s == nil {
		return nil
	}
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("grpc health listen %s: %w", s.addr, err)
	}
	s.Serve(lis)
	return nil
}

// Serve serves on lis in the background.
func (s *Server) Serve(lis net.Listener) {
	if s == nil {
		return
	}
	s.logger.Info("grpc health listening", logx.String("addr", lis.Addr().String()))
	go func() {
		if err := s.srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			s.logger.Error("grpc health serve error", logx.Err(err))
		}
	}()
}

// Stop marks everything not serving and stops the server gracefully.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	s.health.Shutdown()
	s.srv.GracefulStop()
}
