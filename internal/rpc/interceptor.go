package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type claimsKey struct{}

// ClaimsFromContext retrieves the Claims a server interceptor attached,
// analogous to how the teacher's gate handlers pull uid off gin.Context
// after its auth middleware runs.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}

// AuthUnaryServerInterceptor rejects calls without a valid "authorization"
// metadata entry, attaching the parsed Claims to the handler's context on
// success. methodsExempt lists full method names (e.g.
// "/mahjong.Engine/Health") that skip authentication.
func AuthUnaryServerInterceptor(secret string, methodsExempt ...string) grpc.UnaryServerInterceptor {
	exempt := make(map[string]bool, len(methodsExempt))
	for _, m := range methodsExempt {
		exempt[m] = true
	}

	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if exempt[info.FullMethod] {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}
		tokens := md.Get("authorization")
		if len(tokens) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization token")
		}

		claims, err := ParseToken(tokens[0], secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(context.WithValue(ctx, claimsKey{}, claims), req)
	}
}

// AuthUnaryClientInterceptor attaches token as bearer metadata on every
// outgoing unary call, matching the token-bearing calls the teacher's
// gate makes into its user/game services.
func AuthUnaryClientInterceptor(token string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", token)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
