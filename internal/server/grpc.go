package server

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-check service name for the extraction API.
const ServiceName = "ecoscan.Extraction"

// GRPCServer serves grpc.health.v1.Health (plus reflection) next to the
// HTTP API so orchestrators can health-check the process.
type GRPCServer struct {
	addr   string
	server *grpc.Server
	health *health.Server
	logger *slog.Logger
}

func NewGRPCServer(addr string, logger *slog.Logger) *GRPCServer {
	if logger == nil {
		logger = slog.Default()
	}
	grpcServer := grpc.NewServer()

	// Register gRPC health service
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	// empty string means overall server health
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &GRPCServer{addr: addr, server: grpcServer, health: healthServer, logger: logger}
}

// SetServing flips both health entries.
func (g *GRPCServer) SetServing(serving bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	g.health.SetServingStatus("", st)
	g.health.SetServingStatus(ServiceName, st)
}

// Run listens on the configured address and serves until ctx is cancelled.
func (g *GRPCServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", g.addr)
	if err != nil {
		g.logger.Error("failed to listen on address", "addr", g.addr, "error", err)
		return err
	}
	return g.Serve(ctx, lis)
}

// Serve serves on lis until ctx is cancelled, then stops gracefully.
func (g *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		g.health.Shutdown()
		g.server.GracefulStop()
	}()
	g.logger.Info("grpc health listening", "addr", lis.Addr().String())
	if err := g.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}
