package grpc

import (
	"context"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mvaleed/personnel/internal/service"
	"github.com/mvaleed/personnel/internal/transport/payload"
)

func (h *directoryHandler) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	result, err := h.authService.Login(ctx, service.LoginInput{
		Username:  stringField(req, "username"),
		Password:  stringField(req, "password"),
		IPAddress: peerAddress(ctx),
		UserAgent: userAgent(ctx),
	})
	if err != nil {
		return nil, mapDomainError(err)
	}
	return toStruct(payload.NewLoginResponse(result))
}

func peerAddress(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return ""
}

func userAgent(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if ua := md.Get("user-agent"); len(ua) > 0 {
		return ua[0]
	}
	return ""
}
