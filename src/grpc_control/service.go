package grpc_control

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"sales-report/src/helpers"
	"sales-report/src/interfaces"
	"sales-report/src/logger"
	"sales-report/src/models"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ControlService implements ReportControlServer over the report provider.
type ControlService struct {
	Provider interfaces.IReportProvider
	Logger   *logger.Logger
}

// NewControlService creates a new instance of ControlService
func NewControlService(provider interfaces.IReportProvider, log *logger.Logger) *ControlService {
	return &ControlService{Provider: provider, Logger: log}
}

// -----------------------------------------------------------------------------

func (s *ControlService) GetReport(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	view := s.Provider.Snapshot()
	if view == nil {
		return nil, status.Error(codes.Unavailable, "no report available yet")
	}
	return toStruct(view)
}

// -----------------------------------------------------------------------------

func (s *ControlService) Refresh(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	view, err := s.Provider.Refresh(ctx)
	if err != nil {
		s.Logger.Error("gRPC: refresh failed: %v", err)
		return nil, status.Error(refreshCode(helpers.ErrorKind(err)), err.Error())
	}

	s.Logger.Info("gRPC: refresh produced snapshot %s", view.SnapshotID)
	return toStruct(map[string]any{
		"snapshot_id":        view.SnapshotID,
		"generated_at":       view.GeneratedAt,
		"processing_metrics": view.ProcessingMetrics,
		"load":               view.Load,
	})
}

// -----------------------------------------------------------------------------

func (s *ControlService) Health(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(s.Provider.Status())
}

// -----------------------------------------------------------------------------

// toStruct converts a value through its JSON form so gRPC and HTTP clients
// see the same field names.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "decode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "build struct: %v", err)
	}
	return out, nil
}

func refreshCode(kind string) codes.Code {
	switch kind {
	case "data_load", "database", "network":
		return codes.Unavailable
	case "inconsistent_geo", "reference_not_found", "configuration":
		return codes.FailedPrecondition
	case "":
		return codes.OK
	default:
		return codes.Internal
	}
}

// -----------------------------------------------------------------------------
// Server
// -----------------------------------------------------------------------------

// Server hosts the control service on grpc_host:grpc_port.
type Server struct {
	Config *models.MConfig
	Logger *logger.Logger
	grpc   *grpc.Server
}

func NewServer(cfg *models.MConfig, svc ReportControlServer, log *logger.Logger) *Server {
	gs := grpc.NewServer()
	RegisterReportControlServer(gs, svc)
	return &Server{Config: cfg, Logger: log, grpc: gs}
}

// Start listens and serves until Stop.
func (s *Server) Start() error {
	host := s.Config.GrpcHost
	if host == "" {
		host = s.Config.Host
	}
	addr := fmt.Sprintf("%s:%d", host, s.Config.GrpcPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("grpc listen on %s: %w", addr, err)
	}
	s.Logger.Info("Starting gRPC control server on %s", addr)
	return s.Serve(lis)
}

// Serve runs on an existing listener.
func (s *Server) Serve(lis net.Listener) error {
	if err := s.grpc.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

// Stop drains in-flight calls, forcing the stop when ctx ends first.
func (s *Server) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.grpc.Stop()
	}
	return nil
}
