// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package profile

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
	"github.com/canonical/tdms-auth/pkg/authentication"
)

const (
	ServiceName  = "tdms.auth.v1.ProfileService"
	MeFullMethod = "/" + ServiceName + "/Me"
)

// ProfileServer is the gRPC counterpart of GET /api/v0/me
type ProfileServer interface {
	Me(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc uses well known types only, no generated code is needed on either side
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProfileServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Me",
			Handler:    meHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tdms/auth/v1/profile.proto",
}

func meHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ProfileServer).Me(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: MeFullMethod,
	}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ProfileServer).Me(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}

func RegisterProfileServer(s grpc.ServiceRegistrar, srv ProfileServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type GRPCService struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Me relies on authentication.Middleware.GRPCInterceptor having stored the claims
func (s *GRPCService) Me(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ctx, span := s.tracer.Start(ctx, "profile.GRPCService.Me")
	defer span.End()

	claims, ok := authentication.GetClaims(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "Not authenticated")
	}

	p := newProfile(claims)

	out, err := structpb.NewStruct(map[string]any{
		"uid":            p.UID,
		"email":          p.Email,
		"email_verified": p.EmailVerified,
		"name":           p.Name,
		"picture":        p.Picture,
		"claims":         map[string]any(p.Claims),
	})
	if err != nil {
		s.logger.Errorf("failed to convert profile: %v", err)
		return nil, status.Error(codes.Internal, "failed to convert profile")
	}

	return out, nil
}

func NewGRPCService(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *GRPCService {
	return &GRPCService{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
